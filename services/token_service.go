// services/token_service.go - Stateless session tokens
//
// Identity lives entirely in two signed HS256 tokens: a short-lived access
// token and a long-lived refresh token, each with its own secret. There is no
// server-side session table; validity is the signature plus the embedded
// expiry.
package services

import (
	"errors"
	"os"
	"time"

	"boosterdex/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenClaims is the payload embedded in both token kinds.
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func accessSecret() []byte {
	secret := os.Getenv("ACCESS_TOKEN_SECRET")
	if secret == "" {
		secret = "boosterdex-access-secret-change-in-production"
	}
	return []byte(secret)
}

func refreshSecret() []byte {
	secret := os.Getenv("REFRESH_TOKEN_SECRET")
	if secret == "" {
		secret = "boosterdex-refresh-secret-change-in-production"
	}
	return []byte(secret)
}

// GenerateAccessToken signs a short-lived token for the user.
func GenerateAccessToken(user models.User) (string, error) {
	return signToken(user, AccessTokenTTL, accessSecret())
}

// GenerateRefreshToken signs a long-lived token for the user.
func GenerateRefreshToken(user models.User) (string, error) {
	return signToken(user, RefreshTokenTTL, refreshSecret())
}

func signToken(user models.User, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "boosterdex",
			Subject:   user.Username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyAccessToken validates an access token and returns its claims.
// Any failure (bad signature, expired, malformed) is one undifferentiated
// error; callers must treat it exactly like an absent token.
func VerifyAccessToken(tokenString string) (*TokenClaims, error) {
	return verifyToken(tokenString, accessSecret())
}

// VerifyRefreshToken validates a refresh token and returns its claims.
func VerifyRefreshToken(tokenString string) (*TokenClaims, error) {
	return verifyToken(tokenString, refreshSecret())
}

func verifyToken(tokenString string, secret []byte) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
