// handlers/collection.go - Collection browsing endpoints
package handlers

import (
	"log"

	"boosterdex/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetCollection returns the user's owned cards, newest acquisition first
func GetCollection(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Not authenticated"})
	}

	collection, err := collectionService.ListCollection(userID)
	if err != nil {
		log.Printf("Collection listing failed for user %s: %v", userID, err)
		return c.Status(503).JSON(fiber.Map{"success": false, "error": "Collection unavailable, please retry"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"collection": collection,
	})
}

// GetCollectionStats returns derived collection stats
func GetCollectionStats(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Not authenticated"})
	}

	stats, err := collectionService.Stats(userID)
	if err != nil {
		log.Printf("Collection stats failed for user %s: %v", userID, err)
		return c.Status(503).JSON(fiber.Map{"success": false, "error": "Stats unavailable, please retry"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats,
	})
}
