// services/quota_service.go - Daily booster quota ledger
//
// One row per (user, UTC day). The day rolls over at UTC midnight: a new day
// simply reads as an absent row, so yesterday's count can never leak into
// today.
package services

import (
	"errors"
	"fmt"
	"time"

	"boosterdex/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultMaxDailyBoosters = 5
	DefaultCardsPerBooster  = 3
)

// Retries of the guarded quota update before giving up with ErrQuotaConflict.
const quotaConsumeAttempts = 3

type QuotaService struct {
	db       *gorm.DB
	maxDaily int
	now      func() time.Time
}

func NewQuotaService(db *gorm.DB, maxDaily int) *QuotaService {
	if maxDaily <= 0 {
		maxDaily = DefaultMaxDailyBoosters
	}
	return &QuotaService{db: db, maxDaily: maxDaily, now: time.Now}
}

func (s *QuotaService) MaxDaily() int {
	return s.maxDaily
}

// BoosterStatus is the quota view exposed to callers.
type BoosterStatus struct {
	OpenedToday    int        `json:"boosters_opened_today"`
	Remaining      int        `json:"boosters_remaining"`
	LastOpenedAt   *time.Time `json:"last_opened_at"`
	TimeUntilReset string     `json:"time_until_reset"`
}

// Status reports today's quota for the user. An absent row means nothing was
// opened yet today.
func (s *QuotaService) Status(userID string) (*BoosterStatus, error) {
	now := s.now().UTC()

	var q models.QuotaRecord
	err := s.db.Where("user_id = ? AND day = ?", userID, dayKey(now)).First(&q).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	remaining := s.maxDaily - q.BoostersOpened
	if remaining < 0 {
		remaining = 0
	}

	return &BoosterStatus{
		OpenedToday:    q.BoostersOpened,
		Remaining:      remaining,
		LastOpenedAt:   q.LastOpenedAt,
		TimeUntilReset: TimeUntilReset(now),
	}, nil
}

// ConsumeOne atomically spends one booster of today's quota inside tx.
// Returns the count opened today after the spend. The update is guarded on
// the previously read count, so two concurrent opens can never both spend the
// last booster: the loser re-reads and either sees the limit or retries.
func (s *QuotaService) ConsumeOne(tx *gorm.DB, userID string, now time.Time) (int, error) {
	day := dayKey(now.UTC())

	for attempt := 0; attempt < quotaConsumeAttempts; attempt++ {
		var q models.QuotaRecord
		err := lockForUpdate(tx).Where("user_id = ? AND day = ?", userID, day).First(&q).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			q = models.QuotaRecord{UserID: userID, Day: day}
			if err := tx.Create(&q).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					continue
				}
				return 0, err
			}
		} else if err != nil {
			return 0, err
		}

		if q.BoostersOpened >= s.maxDaily {
			return 0, ErrDailyLimitReached
		}

		res := tx.Model(&models.QuotaRecord{}).
			Where("id = ? AND boosters_opened = ?", q.ID, q.BoostersOpened).
			Updates(map[string]interface{}{
				"boosters_opened": q.BoostersOpened + 1,
				"last_opened_at":  now,
			})
		if res.Error != nil {
			return 0, res.Error
		}
		if res.RowsAffected == 1 {
			return q.BoostersOpened + 1, nil
		}
		// Lost a race with another open for the same user; re-read and retry.
	}

	return 0, ErrQuotaConflict
}

// lockForUpdate takes a row lock where the engine supports it. SQLite has no
// FOR UPDATE; its single-writer model already serializes writers.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// dayKey is the UTC calendar day a quota row is keyed by.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// TimeUntilReset formats the duration from now to the next UTC midnight,
// e.g. "3h 41m" or "12m".
func TimeUntilReset(now time.Time) string {
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)

	diff := midnight.Sub(now)
	hours := int(diff.Hours())
	minutes := int(diff.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
