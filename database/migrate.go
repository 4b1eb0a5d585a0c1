// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"boosterdex/models"

	"gorm.io/gorm"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	if err := Migrate(GetDB()); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}
	log.Println("✅ All migrations completed successfully")
}

// Migrate applies the schema to the given database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Card{},
		&models.Attack{},
		&models.QuotaRecord{},
		&models.CollectionItem{},
		&models.BoosterOpening{},
	); err != nil {
		return err
	}

	createIndexes(db)
	return nil
}

// createIndexes creates indexes AutoMigrate doesn't cover
func createIndexes(db *gorm.DB) {
	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)")

	// Catalog indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_cards_rarity ON cards(rarity)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_cards_type ON cards(type)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_attacks_card ON attacks(card_id)")

	// Collection indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_inventory_user ON user_inventory(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_inventory_last_obtained ON user_inventory(last_obtained_at DESC)")

	// History indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_history_user ON booster_history(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_history_opened ON booster_history(opened_at DESC)")
}
