package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"boosterdex/database"
	"boosterdex/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database with the full schema applied.
// One connection only, so transactions serialize the same way Postgres row
// locks do.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// seedCatalog inserts count cards per rarity and returns the ids per tier.
func seedCatalog(t *testing.T, db *gorm.DB, count int, rarities ...models.Rarity) map[models.Rarity][]uint {
	t.Helper()

	if len(rarities) == 0 {
		rarities = models.Rarities()
	}

	ids := make(map[models.Rarity][]uint)
	for _, rarity := range rarities {
		for i := 0; i < count; i++ {
			card := models.Card{
				Name:          fmt.Sprintf("%s-card-%d", rarity, i),
				Type:          models.EnergyWater,
				Stage:         "Basic",
				PokedexNumber: fmt.Sprintf("%03d", len(ids[rarity])+1),
				Rarity:        rarity,
				Attacks: []models.Attack{
					{Name: "Splash", Damage: 10, EnergyCost: []models.EnergyType{models.EnergyWater}},
				},
			}
			if err := db.Create(&card).Error; err != nil {
				t.Fatalf("seed card: %v", err)
			}
			ids[rarity] = append(ids[rarity], card.ID)
		}
	}
	return ids
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: "x",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// newTestEngine builds the full service stack over db with deterministic
// draws: every slot resolves via the given draw values (cycled) and picks the
// first card of the pool.
func newTestEngine(t *testing.T, db *gorm.DB, maxDaily, cardsPerBooster int, draws ...float64) (*BoosterService, *QuotaService, *CollectionService) {
	t.Helper()

	quota := NewQuotaService(db, maxDaily)
	collection := NewCollectionService(db)

	engine, err := NewBoosterService(db, quota, collection, DefaultRarityTable(), cardsPerBooster)
	if err != nil {
		t.Fatalf("new booster service: %v", err)
	}

	if len(draws) > 0 {
		var i atomic.Int64
		engine.draw = func() float64 {
			n := i.Add(1) - 1
			return draws[int(n)%len(draws)]
		}
	}
	engine.pick = func(n int) int { return 0 }

	return engine, quota, collection
}
