package server

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nattapong/sarakham-jobs/internal/config"
	"github.com/nattapong/sarakham-jobs/internal/db"
	"github.com/nattapong/sarakham-jobs/internal/server/middleware"
)

// Claims is the JWT payload for a signed-in user.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   db.Role   `json:"role"`
	jwt.RegisteredClaims
}

// GetUserID implements middleware.TokenClaims.
func (c *Claims) GetUserID() uuid.UUID {
	return c.UserID
}

// GetRole implements middleware.TokenClaims.
func (c *Claims) GetRole() string {
	return string(c.Role)
}

// TokenManager signs and validates session tokens with HMAC-SHA256.
type TokenManager struct {
	cfg *config.JWTConfig
}

// NewTokenManager creates a token manager from JWT configuration.
func NewTokenManager(cfg *config.JWTConfig) *TokenManager {
	return &TokenManager{cfg: cfg}
}

// GenerateToken signs a token for the given user.
func (tm *TokenManager) GenerateToken(userID uuid.UUID, role db.Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tm.cfg.Issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(tm.cfg.ExpirationHours) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(tm.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token string.
func (tm *TokenManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(tm.cfg.Secret), nil
	}, jwt.WithIssuer(tm.cfg.Issuer))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// AsTokenValidator adapts the manager to the middleware's validator contract.
func (tm *TokenManager) AsTokenValidator() middleware.TokenValidator {
	return middleware.TokenValidatorFunc(func(tokenString string) (middleware.TokenClaims, error) {
		return tm.ValidateToken(tokenString)
	})
}
