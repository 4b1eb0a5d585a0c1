// services/rarity.go - Rarity resolution
package services

import (
	"math"

	"boosterdex/models"
)

const probabilityTolerance = 1e-9

// RarityWeight pairs a tier with its draw probability.
type RarityWeight struct {
	Rarity      models.Rarity `json:"rarity"`
	Probability float64       `json:"probability"`
}

// RarityTable is an ordered probability table over the rarity tiers.
// Order matters: Resolve walks it with cumulative bounds, so the same table
// and draw always yield the same tier.
type RarityTable []RarityWeight

// DefaultRarityTable returns the stock distribution.
func DefaultRarityTable() RarityTable {
	return RarityTable{
		{Rarity: models.RarityCommon, Probability: 0.50},
		{Rarity: models.RarityUncommon, Probability: 0.30},
		{Rarity: models.RarityRare, Probability: 0.12},
		{Rarity: models.RarityHolo, Probability: 0.06},
		{Rarity: models.RarityUltra, Probability: 0.02},
	}
}

// Validate checks that the table is non-empty, every tier is known, no
// probability is negative and the total is 1 within tolerance.
func (t RarityTable) Validate() error {
	if len(t) == 0 {
		return ErrInvalidRarityTable
	}

	sum := 0.0
	for _, w := range t {
		if !w.Rarity.Valid() || w.Probability < 0 {
			return ErrInvalidRarityTable
		}
		sum += w.Probability
	}

	if math.Abs(sum-1.0) > probabilityTolerance {
		return ErrInvalidRarityTable
	}
	return nil
}

// Resolve maps a uniform draw in [0,1) to a rarity tier by cumulative
// probability. Pure: no I/O, no mutation, same draw in gives the same tier
// out. If floating-point drift leaves the draw past the final bound, the last
// tier absorbs it rather than failing.
func (t RarityTable) Resolve(draw float64) models.Rarity {
	cumulative := 0.0
	for _, w := range t {
		cumulative += w.Probability
		if draw < cumulative {
			return w.Rarity
		}
	}
	return t[len(t)-1].Rarity
}
