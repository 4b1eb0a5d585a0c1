// models/booster.go - Quota ledger, collection store and opening history
package models

import (
	"time"
)

// QuotaRecord counts booster opens for one user on one UTC calendar day.
// Day is the "2006-01-02" form of the UTC date; rows for past days are kept
// but never read, so a fresh day starts at zero without any physical reset.
type QuotaRecord struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         string     `gorm:"size:36;not null;uniqueIndex:idx_quota_user_day" json:"user_id"`
	Day            string     `gorm:"size:10;not null;uniqueIndex:idx_quota_user_day" json:"day"`
	BoostersOpened int        `gorm:"not null;default:0" json:"boosters_opened"`
	LastOpenedAt   *time.Time `json:"last_opened_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CollectionItem is one owned card in a user's collection. Quantity only ever
// grows; rows are never deleted by normal operation.
type CollectionItem struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          string    `gorm:"size:36;not null;uniqueIndex:idx_inventory_user_card" json:"user_id"`
	CardID          uint      `gorm:"not null;uniqueIndex:idx_inventory_user_card" json:"card_id"`
	Quantity        int       `gorm:"not null;default:1" json:"quantity"`
	FirstObtainedAt time.Time `json:"first_obtained_at"`
	LastObtainedAt  time.Time `gorm:"index" json:"last_obtained_at"`

	Card *Card `gorm:"foreignKey:CardID" json:"card,omitempty"`
}

// BoosterOpening records one completed open with the card ids drawn, in draw
// order.
type BoosterOpening struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   string    `gorm:"size:36;not null;index" json:"user_id"`
	OpenedAt time.Time `json:"opened_at"`
	CardIDs  []uint    `gorm:"serializer:json" json:"card_ids"`
}

func (QuotaRecord) TableName() string {
	return "user_daily_boosters"
}

func (CollectionItem) TableName() string {
	return "user_inventory"
}

func (BoosterOpening) TableName() string {
	return "booster_history"
}
