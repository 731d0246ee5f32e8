package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClaims struct {
	userID uuid.UUID
	role   string
}

func (c fakeClaims) GetUserID() uuid.UUID { return c.userID }
func (c fakeClaims) GetRole() string      { return c.role }

func staticValidator(claims TokenClaims, err error) TokenValidator {
	return TokenValidatorFunc(func(string) (TokenClaims, error) {
		return claims, err
	})
}

func TestRequireAuthMissingHeader(t *testing.T) {
	handler := RequireAuth(staticValidator(nil, nil), func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing authorization header")
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	handler := RequireAuth(staticValidator(nil, nil), func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	handler := RequireAuth(staticValidator(nil, errors.New("expired")), func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or expired token")
}

func TestRequireAuthStoresIdentity(t *testing.T) {
	userID := uuid.New()
	claims := fakeClaims{userID: userID, role: "employer"}

	var gotID uuid.UUID
	var gotRole string
	handler := RequireAuth(staticValidator(claims, nil), func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserID(r)
		gotRole, _ = GetRole(r)
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "employer", gotRole)
}

func TestRequireRole(t *testing.T) {
	ok := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}

	tests := []struct {
		name    string
		role    string
		allowed []string
		want    int
	}{
		{"exact match", "admin", []string{"admin"}, http.StatusNoContent},
		{"one of several", "employer", []string{"admin", "employer"}, http.StatusNoContent},
		{"wrong role", "applicant", []string{"admin"}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireRole(ok, tt.allowed...)
			req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
			req = req.WithContext(WithIdentity(req.Context(), uuid.New(), tt.role))
			rec := httptest.NewRecorder()
			handler(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	handler := RequireRole(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}, "admin")

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
