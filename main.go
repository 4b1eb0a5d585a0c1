// main.go
package main

import (
	"log"
	"os"
	"time"

	"boosterdex/database"
	"boosterdex/handlers"
	"boosterdex/middleware"
	"boosterdex/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	validateEnvironment()

	// Initialize database
	database.InitDB()

	// Seed the card catalog
	log.Println("Loading card catalog...")
	if err := services.LoadCardsFromFiles(database.GetDB()); err != nil {
		log.Fatalf("Failed to load card catalog: %v", err)
	}

	// Wire handler services
	handlers.InitServices()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/logout", handlers.Logout)
	authGroup.Post("/refresh", handlers.Refresh)
	authGroup.Get("/me", middleware.AuthMiddleware, handlers.Me)

	// Booster routes (require authentication)
	boosterGroup := api.Group("/booster")
	boosterGroup.Use(middleware.AuthMiddleware)
	boosterGroup.Post("/open", handlers.OpenBooster)
	boosterGroup.Get("/status", handlers.GetBoosterStatus)

	// Collection routes (require authentication)
	collectionGroup := api.Group("/collection")
	collectionGroup.Use(middleware.AuthMiddleware)
	collectionGroup.Get("/", handlers.GetCollection)
	collectionGroup.Get("/stats", handlers.GetCollectionStats)

	// Catalog browse (public read)
	api.Get("/cards", handlers.GetCards)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🎴 Max daily boosters: %s", getEnv("MAX_DAILY_BOOSTERS", "5"))

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	for _, key := range []string{"ACCESS_TOKEN_SECRET", "REFRESH_TOKEN_SECRET"} {
		secret := os.Getenv(key)
		if secret == "" {
			log.Fatalf("FATAL: %s environment variable must be set. Generate one with: openssl rand -base64 64", key)
		}
		if len(secret) < 32 {
			log.Fatalf("FATAL: %s must be at least 32 characters long", key)
		}
	}

	if os.Getenv("APP_ENV") == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
