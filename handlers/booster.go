// handlers/booster.go - Booster opening endpoints
package handlers

import (
	"errors"
	"log"

	"boosterdex/middleware"
	"boosterdex/services"

	"github.com/gofiber/fiber/v2"
)

// OpenBooster opens one booster for the authenticated user
func OpenBooster(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Not authenticated"})
	}

	result, err := boosterService.OpenBooster(userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDailyLimitReached):
			return c.Status(403).JSON(fiber.Map{
				"success":            false,
				"error":              "Daily booster limit reached",
				"boosters_remaining": 0,
			})
		case errors.Is(err, services.ErrEmptyRarityPool):
			log.Printf("Booster integrity failure for user %s: %v", userID, err)
			return c.Status(500).JSON(fiber.Map{
				"success": false,
				"error":   "Booster could not be opened",
			})
		default:
			// Transient storage failure. The open is atomic, so retrying is safe.
			log.Printf("Booster open failed for user %s: %v", userID, err)
			return c.Status(503).JSON(fiber.Map{
				"success": false,
				"error":   "Booster could not be opened, please retry",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success":            true,
		"cards":              result.Cards,
		"boosters_remaining": result.Remaining,
	})
}

// GetBoosterStatus reports today's quota for the authenticated user
func GetBoosterStatus(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Not authenticated"})
	}

	status, err := quotaService.Status(userID)
	if err != nil {
		log.Printf("Booster status failed for user %s: %v", userID, err)
		return c.Status(503).JSON(fiber.Map{"success": false, "error": "Status unavailable, please retry"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"status":  status,
	})
}
