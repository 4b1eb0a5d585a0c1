// handlers/auth.go - Registration, login and the token cookie lifecycle
package handlers

import (
	"errors"
	"os"
	"time"

	"boosterdex/database"
	"boosterdex/middleware"
	"boosterdex/models"
	"boosterdex/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const RefreshTokenCookie = "refresh_token"

const bcryptCost = 12

// Compared against when the username doesn't exist, so unknown-user and
// wrong-password take the same time and return the same error.
const dummyPasswordHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success bool      `json:"success"`
	User    *UserInfo `json:"user,omitempty"`
	Error   string    `json:"error,omitempty"`
}

type UserInfo struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Register creates a new user account and opens a session
func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Username and password required",
		})
	}

	if len(req.Username) < 3 {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Username must be at least 3 characters",
		})
	}

	if len(req.Password) < 6 {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Password must be at least 6 characters",
		})
	}

	db := database.GetDB()

	var existing models.User
	if err := db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return c.Status(409).JSON(AuthResponse{
			Success: false,
			Error:   "Username already taken",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Error:   "Failed to create account",
		})
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now().UTC(),
	}

	if err := db.Create(&user).Error; err != nil {
		// Unique index on username catches registration races.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(409).JSON(AuthResponse{
				Success: false,
				Error:   "Username already taken",
			})
		}
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Error:   "Failed to create account",
		})
	}

	if err := issueSession(c, user); err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Error:   "Failed to generate token",
		})
	}

	return c.Status(201).JSON(AuthResponse{
		Success: true,
		User:    userInfo(user),
	})
}

// Login authenticates a registered user
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Error:   "Username and password required",
		})
	}

	db := database.GetDB()

	var user models.User
	storedHash := dummyPasswordHash
	lookupErr := db.Where("username = ?", req.Username).First(&user).Error
	if lookupErr == nil {
		storedHash = user.PasswordHash
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)); err != nil || lookupErr != nil {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Error:   "Invalid credentials",
		})
	}

	db.Model(&user).Update("last_login", time.Now().UTC())

	if err := issueSession(c, user); err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Error:   "Failed to generate token",
		})
	}

	return c.JSON(AuthResponse{
		Success: true,
		User:    userInfo(user),
	})
}

// Logout clears both session cookies
func Logout(c *fiber.Ctx) error {
	clearAuthCookies(c)
	return c.JSON(fiber.Map{"success": true, "message": "Logged out successfully"})
}

// Me returns the authenticated user
func Me(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Error:   "Not authenticated",
		})
	}

	var user models.User
	if err := database.GetDB().First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Error:   "Not authenticated",
		})
	}

	return c.JSON(AuthResponse{
		Success: true,
		User:    userInfo(user),
	})
}

// Refresh rotates both tokens from a valid refresh-token cookie
func Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(RefreshTokenCookie)
	if refreshToken == "" {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Error:   "Refresh token not found",
		})
	}

	claims, err := services.VerifyRefreshToken(refreshToken)
	if err != nil {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Error:   "Invalid refresh token",
		})
	}

	// The user must still exist in the system of record.
	var user models.User
	if err := database.GetDB().First(&user, "id = ?", claims.UserID).Error; err != nil {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Error:   "Invalid refresh token",
		})
	}

	if err := issueSession(c, user); err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Error:   "Failed to generate token",
		})
	}

	return c.JSON(AuthResponse{
		Success: true,
		User:    userInfo(user),
	})
}

// Helper functions

func userInfo(user models.User) *UserInfo {
	return &UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}

// issueSession signs a fresh access/refresh pair and sets both cookies.
func issueSession(c *fiber.Ctx, user models.User) error {
	accessToken, err := services.GenerateAccessToken(user)
	if err != nil {
		return err
	}
	refreshToken, err := services.GenerateRefreshToken(user)
	if err != nil {
		return err
	}

	setAuthCookie(c, middleware.AccessTokenCookie, accessToken, services.AccessTokenTTL)
	setAuthCookie(c, RefreshTokenCookie, refreshToken, services.RefreshTokenTTL)
	return nil
}

func setAuthCookie(c *fiber.Ctx, name, value string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   os.Getenv("APP_ENV") == "production",
		SameSite: "Lax",
		Path:     "/",
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	for _, name := range []string{middleware.AccessTokenCookie, RefreshTokenCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			MaxAge:   -1,
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Secure:   os.Getenv("APP_ENV") == "production",
			SameSite: "Lax",
			Path:     "/",
		})
	}
}
