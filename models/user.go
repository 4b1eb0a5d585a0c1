// models/user.go
package models

import (
	"time"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null;size:50" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastLogin    time.Time `json:"last_login"`
	LastSeen     time.Time `json:"last_seen"`

	// Relationships
	Inventory []CollectionItem `gorm:"foreignKey:UserID" json:"inventory,omitempty"`
}

func (User) TableName() string {
	return "users"
}
