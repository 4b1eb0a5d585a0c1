// handlers/cards.go - Card catalog browsing
package handlers

import (
	"log"

	"boosterdex/database"
	"boosterdex/models"

	"github.com/gofiber/fiber/v2"
)

// GetCards lists the card catalog with optional filters:
// ?rarity=holo&type=water&q=tort
func GetCards(c *fiber.Ctx) error {
	query := database.GetDB().Model(&models.Card{}).Preload("Attacks")

	if rarity := c.Query("rarity"); rarity != "" {
		if !models.Rarity(rarity).Valid() {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Unknown rarity"})
		}
		query = query.Where("rarity = ?", rarity)
	}

	if energyType := c.Query("type"); energyType != "" {
		query = query.Where("type = ?", energyType)
	}

	if q := c.Query("q"); q != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+q+"%")
	}

	var cards []models.Card
	if err := query.Order("pokedex_number ASC").Find(&cards).Error; err != nil {
		log.Printf("Card listing failed: %v", err)
		return c.Status(503).JSON(fiber.Map{"success": false, "error": "Catalog unavailable, please retry"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"cards":   cards,
	})
}
