// middleware/auth.go
package middleware

import (
	"strings"
	"time"

	"boosterdex/database"
	"boosterdex/models"
	"boosterdex/services"

	"github.com/gofiber/fiber/v2"
)

const AccessTokenCookie = "access_token"

// AuthMiddleware gates a route on a valid access token. The token is read
// from the access_token cookie, falling back to a Bearer header for non-browser
// clients. Every verification failure is treated exactly like an absent token.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := extractToken(c)
	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Not authenticated"})
	}

	claims, err := services.VerifyAccessToken(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid or expired token"})
	}

	c.Locals("userId", claims.UserID)
	c.Locals("username", claims.Username)

	updateUserActivity(claims.UserID)

	return c.Next()
}

func extractToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(AccessTokenCookie); cookie != "" {
		return cookie
	}

	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return ""
}

func GetUserID(c *fiber.Ctx) (string, error) {
	userID := c.Locals("userId")
	if userID == nil {
		return "", fiber.NewError(401, "User not authenticated")
	}

	if id, ok := userID.(string); ok && id != "" {
		return id, nil
	}

	return "", fiber.NewError(401, "Invalid user ID format")
}

func GetUsername(c *fiber.Ctx) (string, error) {
	username := c.Locals("username")
	if username == nil {
		return "", fiber.NewError(401, "User not authenticated")
	}

	if name, ok := username.(string); ok {
		return name, nil
	}

	return "", fiber.NewError(401, "Invalid username format")
}

// updateUserActivity updates the user's last activity timestamp
func updateUserActivity(userID string) {
	if userID == "" {
		return
	}

	db := database.GetDB()
	if db == nil {
		return
	}

	db.Model(&models.User{}).Where("id = ?", userID).Update("last_seen", time.Now().UTC())
}
