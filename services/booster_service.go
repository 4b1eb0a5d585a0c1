// services/booster_service.go - The booster-opening engine
//
// One open is one database transaction: spend quota, resolve rarities, pick
// cards, upsert the collection, write history. Either all of it commits or
// none of it does, so a caller that sees an error can retry freely without
// double-spending quota.
package services

import (
	"math/rand"
	"time"

	"boosterdex/models"

	"gorm.io/gorm"
)

type BoosterService struct {
	db              *gorm.DB
	quota           *QuotaService
	collection      *CollectionService
	table           RarityTable
	cardsPerBooster int

	// Injection points for deterministic tests.
	draw func() float64 // uniform in [0,1)
	pick func(n int) int
	now  func() time.Time
}

func NewBoosterService(db *gorm.DB, quota *QuotaService, collection *CollectionService, table RarityTable, cardsPerBooster int) (*BoosterService, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if cardsPerBooster <= 0 {
		cardsPerBooster = DefaultCardsPerBooster
	}
	return &BoosterService{
		db:              db,
		quota:           quota,
		collection:      collection,
		table:           table,
		cardsPerBooster: cardsPerBooster,
		draw:            rand.Float64,
		pick:            rand.Intn,
		now:             time.Now,
	}, nil
}

// DrawnCard is a full catalog card tagged with whether this open added it to
// the collection for the first time.
type DrawnCard struct {
	models.Card
	IsNew bool `json:"is_new"`
}

// BoosterResult is what one successful open returns.
type BoosterResult struct {
	Cards     []DrawnCard `json:"cards"`
	Remaining int         `json:"boosters_remaining"`
}

// OpenBooster runs one open for the user and returns the drawn cards in draw
// order. Fails with ErrDailyLimitReached when the quota is spent and
// ErrEmptyRarityPool when the catalog has no card for a resolved tier; on any
// failure nothing is committed.
func (s *BoosterService) OpenBooster(userID string) (*BoosterResult, error) {
	var result BoosterResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := s.now().UTC()

		opened, err := s.quota.ConsumeOne(tx, userID, now)
		if err != nil {
			return err
		}
		result.Remaining = s.quota.MaxDaily() - opened
		if result.Remaining < 0 {
			result.Remaining = 0
		}

		cardIDs := make([]uint, 0, s.cardsPerBooster)
		for i := 0; i < s.cardsPerBooster; i++ {
			card, err := s.drawCard(tx)
			if err != nil {
				return err
			}

			acq, err := s.collection.UpsertAcquisition(tx, userID, card.ID, now)
			if err != nil {
				return err
			}

			result.Cards = append(result.Cards, DrawnCard{Card: card, IsNew: acq.IsNew})
			cardIDs = append(cardIDs, card.ID)
		}

		return tx.Create(&models.BoosterOpening{
			UserID:   userID,
			OpenedAt: now,
			CardIDs:  cardIDs,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// drawCard resolves one rarity and picks a card of that rarity uniformly at
// random, loading it with its attacks inside the open transaction so the
// response is one consistent snapshot.
func (s *BoosterService) drawCard(tx *gorm.DB) (models.Card, error) {
	rarity := s.table.Resolve(s.draw())

	var ids []uint
	if err := tx.Model(&models.Card{}).Where("rarity = ?", rarity).Pluck("id", &ids).Error; err != nil {
		return models.Card{}, err
	}
	if len(ids) == 0 {
		return models.Card{}, ErrEmptyRarityPool
	}

	var card models.Card
	if err := tx.Preload("Attacks").First(&card, ids[s.pick(len(ids))]).Error; err != nil {
		return models.Card{}, err
	}
	return card, nil
}
