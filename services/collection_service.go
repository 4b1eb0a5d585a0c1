// services/collection_service.go - Per-user card collection
package services

import (
	"errors"
	"math"
	"time"

	"boosterdex/models"

	"gorm.io/gorm"
)

type CollectionService struct {
	db *gorm.DB
}

func NewCollectionService(db *gorm.DB) *CollectionService {
	return &CollectionService{db: db}
}

// AcquisitionResult reports the effect of one card acquisition.
type AcquisitionResult struct {
	IsNew    bool
	Quantity int
}

// CollectionEntry is an owned card joined with its catalog fields, the shape
// the collection screen renders.
type CollectionEntry struct {
	ID              uint              `json:"id"`
	UserID          string            `json:"user_id"`
	CardID          uint              `json:"card_id"`
	Quantity        int               `json:"quantity"`
	FirstObtainedAt time.Time         `json:"first_obtained_at"`
	LastObtainedAt  time.Time         `json:"last_obtained_at"`
	Name            string            `json:"name"`
	Subtitle        *string           `json:"subtitle"`
	HP              int               `json:"hp"`
	Type            models.EnergyType `json:"type"`
	Rarity          models.Rarity     `json:"rarity"`
	ImageURL        string            `json:"image_url"`
	PokedexNumber   string            `json:"pokedex_number"`
}

// CollectionStats is derived from the collection and catalog, never stored.
type CollectionStats struct {
	UniqueCards          int `json:"unique_cards"`
	TotalCards           int `json:"total_cards"`
	TotalAvailable       int `json:"total_available"`
	CompletionPercentage int `json:"completion_percentage"`
}

// UpsertAcquisition records one acquired card inside tx: first acquisition
// creates the item, later ones bump quantity and last_obtained_at. Callers
// must already hold the user's quota row lock, which serializes all writes to
// one user's collection.
func (s *CollectionService) UpsertAcquisition(tx *gorm.DB, userID string, cardID uint, now time.Time) (AcquisitionResult, error) {
	var item models.CollectionItem
	err := tx.Where("user_id = ? AND card_id = ?", userID, cardID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CollectionItem{
			UserID:          userID,
			CardID:          cardID,
			Quantity:        1,
			FirstObtainedAt: now,
			LastObtainedAt:  now,
		}
		if err := tx.Create(&item).Error; err != nil {
			return AcquisitionResult{}, err
		}
		return AcquisitionResult{IsNew: true, Quantity: 1}, nil
	}
	if err != nil {
		return AcquisitionResult{}, err
	}

	res := tx.Model(&item).Updates(map[string]interface{}{
		"quantity":         gorm.Expr("quantity + 1"),
		"last_obtained_at": now,
	})
	if res.Error != nil {
		return AcquisitionResult{}, res.Error
	}
	return AcquisitionResult{IsNew: false, Quantity: item.Quantity + 1}, nil
}

// ListCollection returns the user's owned cards joined with catalog data,
// most recently obtained first.
func (s *CollectionService) ListCollection(userID string) ([]CollectionEntry, error) {
	var entries []CollectionEntry
	err := s.db.Table("user_inventory").
		Select("user_inventory.id, user_inventory.user_id, user_inventory.card_id, user_inventory.quantity, "+
			"user_inventory.first_obtained_at, user_inventory.last_obtained_at, "+
			"cards.name, cards.subtitle, cards.hp, cards.type, cards.rarity, cards.image_url, cards.pokedex_number").
		Joins("JOIN cards ON cards.id = user_inventory.card_id").
		Where("user_inventory.user_id = ?", userID).
		Order("user_inventory.last_obtained_at DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []CollectionEntry{}
	}
	return entries, nil
}

// Stats computes the user's collection stats in one transaction so the counts
// come from a single snapshot.
func (s *CollectionService) Stats(userID string) (*CollectionStats, error) {
	var stats CollectionStats

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var unique int64
		if err := tx.Model(&models.CollectionItem{}).Where("user_id = ?", userID).Count(&unique).Error; err != nil {
			return err
		}

		var total int64
		if err := tx.Model(&models.CollectionItem{}).Where("user_id = ?", userID).
			Select("COALESCE(SUM(quantity), 0)").Scan(&total).Error; err != nil {
			return err
		}

		var available int64
		if err := tx.Model(&models.Card{}).Count(&available).Error; err != nil {
			return err
		}

		stats = CollectionStats{
			UniqueCards:    int(unique),
			TotalCards:     int(total),
			TotalAvailable: int(available),
		}
		if available > 0 {
			stats.CompletionPercentage = int(math.Round(float64(unique) / float64(available) * 100))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
