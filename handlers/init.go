// handlers/init.go - Service wiring for the handler package
package handlers

import (
	"log"
	"os"
	"strconv"

	"boosterdex/database"
	"boosterdex/services"
)

var (
	quotaService      *services.QuotaService
	collectionService *services.CollectionService
	boosterService    *services.BoosterService
)

// InitServices builds the booster services against the live database.
// Must be called after database.InitDB.
func InitServices() {
	db := database.GetDB()

	quotaService = services.NewQuotaService(db, envInt("MAX_DAILY_BOOSTERS", services.DefaultMaxDailyBoosters))
	collectionService = services.NewCollectionService(db)

	var err error
	boosterService, err = services.NewBoosterService(
		db,
		quotaService,
		collectionService,
		services.DefaultRarityTable(),
		envInt("CARDS_PER_BOOSTER", services.DefaultCardsPerBooster),
	)
	if err != nil {
		log.Fatalf("Failed to initialize booster engine: %v", err)
	}
}

func envInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return def
}
