// services/errors.go - Business errors surfaced by the booster core
package services

import "errors"

var (
	// ErrDailyLimitReached rejects an open once today's quota is spent.
	// Not retryable until the next UTC day.
	ErrDailyLimitReached = errors.New("daily booster limit reached")

	// ErrEmptyRarityPool means the catalog has no card for a resolved rarity.
	// Data-integrity failure: the whole open aborts, never substitutes a tier.
	ErrEmptyRarityPool = errors.New("no cards available for resolved rarity")

	// ErrQuotaConflict means the guarded quota update kept losing to concurrent
	// opens. Transient; the caller may retry the whole open.
	ErrQuotaConflict = errors.New("quota update conflict")

	// ErrInvalidRarityTable rejects a probability table that is negative or
	// does not sum to 1.
	ErrInvalidRarityTable = errors.New("invalid rarity probability table")
)
