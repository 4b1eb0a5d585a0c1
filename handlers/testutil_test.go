package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"boosterdex/database"
	"boosterdex/middleware"
	"boosterdex/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestApp points the handler package at a fresh in-memory database and
// returns a Fiber app with the API routes mounted.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	t.Setenv("ACCESS_TOKEN_SECRET", "test-access-secret-that-is-long-enough!!")
	t.Setenv("REFRESH_TOKEN_SECRET", "test-refresh-secret-that-is-long-enough!")

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

	database.SetDB(db)
	InitServices()

	app := fiber.New()

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", Register)
	authGroup.Post("/login", Login)
	authGroup.Post("/logout", Logout)
	authGroup.Post("/refresh", Refresh)
	authGroup.Get("/me", middleware.AuthMiddleware, Me)

	boosterGroup := api.Group("/booster")
	boosterGroup.Use(middleware.AuthMiddleware)
	boosterGroup.Post("/open", OpenBooster)
	boosterGroup.Get("/status", GetBoosterStatus)

	collectionGroup := api.Group("/collection")
	collectionGroup.Use(middleware.AuthMiddleware)
	collectionGroup.Get("/", GetCollection)
	collectionGroup.Get("/stats", GetCollectionStats)

	api.Get("/cards", GetCards)

	return app
}

func seedTestCatalog(t *testing.T, count int) {
	t.Helper()

	db := database.GetDB()
	for _, rarity := range models.Rarities() {
		for i := 0; i < count; i++ {
			card := models.Card{
				Name:          fmt.Sprintf("%s-card-%d", rarity, i),
				Type:          models.EnergyFire,
				Stage:         "Basic",
				PokedexNumber: fmt.Sprintf("%03d", i+1),
				Rarity:        rarity,
			}
			if err := db.Create(&card).Error; err != nil {
				t.Fatalf("seed card: %v", err)
			}
		}
	}
}

func jsonRequest(t *testing.T, method, target string, body interface{}, cookies []*http.Cookie) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// register creates an account through the API and returns its session cookies.
func register(t *testing.T, app *fiber.App, username, password string) []*http.Cookie {
	t.Helper()

	req := jsonRequest(t, "POST", "/api/auth/register", fiber.Map{
		"username": username,
		"password": password,
	}, nil)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("register request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("register status = %d, want 201", resp.StatusCode)
	}
	resp.Body.Close()

	return resp.Cookies()
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}
