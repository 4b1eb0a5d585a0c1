// services/catalog_loader.go - Card catalog seeding from JSON files
//
// Catalog files live under ./cards, one JSON file per set. Existing cards
// (matched by name) are left untouched, so the loader is safe to run on every
// startup.
package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"boosterdex/models"

	"gorm.io/gorm"
)

const CardsDirectory = "./cards"

type CardFile struct {
	Set   string           `json:"set"`
	Cards []CardDefinition `json:"cards"`
}

type CardDefinition struct {
	Name          string             `json:"name"`
	Subtitle      *string            `json:"subtitle"`
	HP            int                `json:"hp"`
	Type          models.EnergyType  `json:"type"`
	Stage         string             `json:"stage"`
	PokedexNumber string             `json:"pokedex_number"`
	Species       string             `json:"species"`
	Height        string             `json:"height"`
	Weight        string             `json:"weight"`
	ImageURL      string             `json:"image_url"`
	Weakness      models.EnergyType  `json:"weakness"`
	RetreatCost   int                `json:"retreat_cost"`
	FlavorText    string             `json:"flavor_text"`
	Illustrator   *string            `json:"illustrator"`
	Rarity        models.Rarity      `json:"rarity"`
	Attacks       []AttackDefinition `json:"attacks"`
}

type AttackDefinition struct {
	Name        string              `json:"name"`
	Damage      int                 `json:"damage"`
	EnergyCost  []models.EnergyType `json:"energy_cost"`
	Description string              `json:"description"`
}

// LoadCardsFromFiles seeds the card catalog from every JSON file in the cards
// directory, creating the directory and a sample set when none exists.
func LoadCardsFromFiles(db *gorm.DB) error {
	dir := cardsDir()

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Println("Cards directory not found, creating it...")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create cards directory: %w", err)
		}
		if err := createSampleCardFile(dir); err != nil {
			return err
		}
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return err
	}

	loaded := 0
	for _, file := range files {
		n, err := loadCardFile(db, file)
		if err != nil {
			log.Printf("Skipping card file %s: %v", file, err)
			continue
		}
		loaded += n
	}

	log.Printf("✅ Card catalog ready (%d new cards loaded)", loaded)
	return nil
}

func cardsDir() string {
	if dir := os.Getenv("CARDS_DIR"); dir != "" {
		return dir
	}
	return CardsDirectory
}

func loadCardFile(db *gorm.DB, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var file CardFile
	if err := json.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("invalid JSON: %w", err)
	}

	created := 0
	for _, def := range file.Cards {
		if strings.TrimSpace(def.Name) == "" || !def.Rarity.Valid() {
			log.Printf("Skipping malformed card %q in %s", def.Name, filepath.Base(path))
			continue
		}

		var count int64
		if err := db.Model(&models.Card{}).Where("name = ?", def.Name).Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}

		card := models.Card{
			Name:          def.Name,
			Subtitle:      def.Subtitle,
			HP:            def.HP,
			Type:          def.Type,
			Stage:         def.Stage,
			PokedexNumber: def.PokedexNumber,
			Species:       def.Species,
			Height:        def.Height,
			Weight:        def.Weight,
			ImageURL:      def.ImageURL,
			ImageScale:    1,
			Weakness:      def.Weakness,
			RetreatCost:   def.RetreatCost,
			FlavorText:    def.FlavorText,
			Illustrator:   def.Illustrator,
			Rarity:        def.Rarity,
		}
		for _, a := range def.Attacks {
			card.Attacks = append(card.Attacks, models.Attack{
				Name:        a.Name,
				Damage:      a.Damage,
				EnergyCost:  a.EnergyCost,
				Description: a.Description,
			})
		}

		if err := db.Create(&card).Error; err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}

// createSampleCardFile writes a small starter set covering every rarity tier
// so a fresh install can open boosters immediately.
func createSampleCardFile(dir string) error {
	sample := CardFile{
		Set: "Starter",
		Cards: []CardDefinition{
			{
				Name: "Bulbizarre", HP: 60, Type: models.EnergyGrass, Stage: "Basic",
				PokedexNumber: "001", Species: "Seed", Height: "0.7 m", Weight: "6.9 kg",
				Weakness: models.EnergyFire, RetreatCost: 1, Rarity: models.RarityCommon,
				FlavorText: "A strange seed was planted on its back at birth.",
				Attacks: []AttackDefinition{
					{Name: "Vine Whip", Damage: 20, EnergyCost: []models.EnergyType{models.EnergyGrass, models.EnergyColorless}},
				},
			},
			{
				Name: "Salameche", HP: 50, Type: models.EnergyFire, Stage: "Basic",
				PokedexNumber: "004", Species: "Lizard", Height: "0.6 m", Weight: "8.5 kg",
				Weakness: models.EnergyWater, RetreatCost: 1, Rarity: models.RarityCommon,
				FlavorText: "The flame on its tail shows the strength of its life force.",
				Attacks: []AttackDefinition{
					{Name: "Ember", Damage: 30, EnergyCost: []models.EnergyType{models.EnergyFire, models.EnergyColorless}, Description: "Discard 1 Fire Energy."},
				},
			},
			{
				Name: "Carapuce", HP: 50, Type: models.EnergyWater, Stage: "Basic",
				PokedexNumber: "007", Species: "Tiny Turtle", Height: "0.5 m", Weight: "9.0 kg",
				Weakness: models.EnergyElectric, RetreatCost: 1, Rarity: models.RarityCommon,
				FlavorText: "Shoots water at prey while in the water.",
				Attacks: []AttackDefinition{
					{Name: "Bubble", Damage: 10, EnergyCost: []models.EnergyType{models.EnergyWater}, Description: "Flip a coin. If heads, the Defending Pokemon is now Paralyzed."},
				},
			},
			{
				Name: "Herbizarre", HP: 80, Type: models.EnergyGrass, Stage: "Stage 1",
				PokedexNumber: "002", Species: "Seed", Height: "1.0 m", Weight: "13.0 kg",
				Weakness: models.EnergyFire, RetreatCost: 1, Rarity: models.RarityUncommon,
				Attacks: []AttackDefinition{
					{Name: "Razor Leaf", Damage: 40, EnergyCost: []models.EnergyType{models.EnergyGrass, models.EnergyGrass}},
				},
			},
			{
				Name: "Reptincel", HP: 80, Type: models.EnergyFire, Stage: "Stage 1",
				PokedexNumber: "005", Species: "Flame", Height: "1.1 m", Weight: "19.0 kg",
				Weakness: models.EnergyWater, RetreatCost: 1, Rarity: models.RarityUncommon,
				Attacks: []AttackDefinition{
					{Name: "Flamethrower", Damage: 50, EnergyCost: []models.EnergyType{models.EnergyFire, models.EnergyFire, models.EnergyColorless}, Description: "Discard 1 Fire Energy."},
				},
			},
			{
				Name: "Florizarre", HP: 120, Type: models.EnergyGrass, Stage: "Stage 2",
				PokedexNumber: "003", Species: "Seed", Height: "2.0 m", Weight: "100.0 kg",
				Weakness: models.EnergyFire, RetreatCost: 2, Rarity: models.RarityRare,
				Attacks: []AttackDefinition{
					{Name: "Solar Beam", Damage: 80, EnergyCost: []models.EnergyType{models.EnergyGrass, models.EnergyGrass, models.EnergyGrass, models.EnergyColorless}},
				},
			},
			{
				Name: "Tortank", HP: 120, Type: models.EnergyWater, Stage: "Stage 2",
				PokedexNumber: "009", Species: "Shellfish", Height: "1.6 m", Weight: "85.5 kg",
				Weakness: models.EnergyElectric, RetreatCost: 3, Rarity: models.RarityHolo,
				Attacks: []AttackDefinition{
					{Name: "Hydro Pump", Damage: 60, EnergyCost: []models.EnergyType{models.EnergyWater, models.EnergyWater, models.EnergyWater}, Description: "Does 60 damage plus 10 more for each extra Water Energy attached."},
				},
			},
			{
				Name: "Dracolosse", HP: 130, Type: models.EnergyDragon, Stage: "Stage 2",
				PokedexNumber: "149", Species: "Dragon", Height: "2.2 m", Weight: "210.0 kg",
				Weakness: models.EnergyFairy, RetreatCost: 3, Rarity: models.RarityUltra,
				FlavorText: "It is said to live in rough seas, rescuing drowning sailors.",
				Attacks: []AttackDefinition{
					{Name: "Hyper Beam", Damage: 100, EnergyCost: []models.EnergyType{models.EnergyColorless, models.EnergyColorless, models.EnergyColorless, models.EnergyColorless}, Description: "Discard an Energy attached to the Defending Pokemon."},
				},
			},
		},
	}

	data, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(dir, "starter.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write sample card file: %w", err)
	}

	log.Printf("Created sample card set at %s", path)
	return nil
}
