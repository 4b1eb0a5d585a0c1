// models/card.go - Card catalog entities
package models

import (
	"time"
)

// Rarity is a card's probability bucket, ordered from most to least common.
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
	RarityHolo     Rarity = "holo"
	RarityUltra    Rarity = "ultra"
)

// Rarities returns all tiers in canonical order.
func Rarities() []Rarity {
	return []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityHolo, RarityUltra}
}

func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityHolo, RarityUltra:
		return true
	}
	return false
}

// EnergyType is a card's elemental type.
type EnergyType string

const (
	EnergyWater     EnergyType = "water"
	EnergyFire      EnergyType = "fire"
	EnergyGrass     EnergyType = "grass"
	EnergyElectric  EnergyType = "electric"
	EnergyPsychic   EnergyType = "psychic"
	EnergyFighting  EnergyType = "fighting"
	EnergyDark      EnergyType = "dark"
	EnergySteel     EnergyType = "steel"
	EnergyFairy     EnergyType = "fairy"
	EnergyDragon    EnergyType = "dragon"
	EnergyColorless EnergyType = "colorless"
)

// Card is a catalog entry. The catalog is reference data: the engine only
// reads it, all mutation happens through the importer/seeder.
type Card struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"not null;size:100;index" json:"name"`
	Subtitle      *string    `gorm:"size:100" json:"subtitle"`
	HP            int        `gorm:"default:0" json:"hp"`
	Type          EnergyType `gorm:"not null;size:20;index" json:"type"`
	Stage         string     `gorm:"size:20" json:"stage"`
	PokedexNumber string     `gorm:"size:10;index" json:"pokedex_number"`
	Species       string     `gorm:"size:50" json:"species"`
	Height        string     `gorm:"size:20" json:"height"`
	Weight        string     `gorm:"size:20" json:"weight"`
	ImageURL      string     `gorm:"size:500" json:"image_url"`
	ImageOffsetX  int        `gorm:"default:0" json:"image_offset_x"`
	ImageOffsetY  int        `gorm:"default:0" json:"image_offset_y"`
	ImageScale    float64    `gorm:"default:1" json:"image_scale"`
	Weakness      EnergyType `gorm:"size:20" json:"weakness"`
	RetreatCost   int        `gorm:"default:0" json:"retreat_cost"`
	FlavorText    string     `gorm:"type:text" json:"flavor_text"`
	Illustrator   *string    `gorm:"size:100" json:"illustrator"`
	Rarity        Rarity     `gorm:"not null;size:20;index" json:"rarity"`
	CreatedAt     time.Time  `json:"created_at"`

	Attacks []Attack `gorm:"foreignKey:CardID" json:"attacks,omitempty"`
}

// Attack belongs to a card.
type Attack struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	CardID      uint         `gorm:"not null;index" json:"card_id"`
	Name        string       `gorm:"not null;size:100" json:"name"`
	Damage      int          `gorm:"default:0" json:"damage"`
	EnergyCost  []EnergyType `gorm:"serializer:json" json:"energy_cost"`
	Description string       `gorm:"type:text" json:"description"`
}

func (Card) TableName() string {
	return "cards"
}

func (Attack) TableName() string {
	return "attacks"
}
