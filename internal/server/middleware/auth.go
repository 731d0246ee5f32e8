// Package middleware carries the authentication and authorization layers of
// the HTTP server.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// TokenClaims is what the middleware needs from a validated token.
type TokenClaims interface {
	GetUserID() uuid.UUID
	GetRole() string
}

// TokenValidator verifies a bearer token and returns its claims.
type TokenValidator interface {
	Validate(tokenString string) (TokenClaims, error)
}

// TokenValidatorFunc adapts a function to TokenValidator.
type TokenValidatorFunc func(tokenString string) (TokenClaims, error)

func (f TokenValidatorFunc) Validate(tokenString string) (TokenClaims, error) {
	return f(tokenString)
}

type contextKey string

const (
	userIDKey contextKey = "user_id"
	roleKey   contextKey = "role"
)

// RequireAuth rejects requests without a valid bearer token and stores the
// token's identity in the request context.
func RequireAuth(validator TokenValidator, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			unauthorized(w, "missing authorization header")
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			unauthorized(w, "invalid authorization header")
			return
		}

		claims, err := validator.Validate(tokenString)
		if err != nil {
			unauthorized(w, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.GetUserID())
		ctx = context.WithValue(ctx, roleKey, claims.GetRole())
		next(w, r.WithContext(ctx))
	}
}

// RequireRole rejects authenticated requests whose role is not in allowed.
// It must run inside RequireAuth.
func RequireRole(next http.HandlerFunc, allowed ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, ok := GetRole(r)
		if !ok {
			unauthorized(w, "missing authentication")
			return
		}
		for _, a := range allowed {
			if role == a {
				next(w, r)
				return
			}
		}
		forbidden(w, "insufficient role")
	}
}

// GetUserID returns the authenticated user ID from the request context.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	id, ok := r.Context().Value(userIDKey).(uuid.UUID)
	return id, ok
}

// GetRole returns the authenticated role from the request context.
func GetRole(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(roleKey).(string)
	return role, ok
}

// WithIdentity stores an identity in the context directly. Handler tests use
// it to skip token minting.
func WithIdentity(ctx context.Context, userID uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

func unauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, message)
}

func forbidden(w http.ResponseWriter, message string) {
	writeError(w, http.StatusForbidden, message)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message}) //nolint:errcheck
}
