package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nattapong/sarakham-jobs/internal/db"
)

func TestLoginSendsCredentialsAndDecodesSession(t *testing.T) {
	profileID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "somchai@example.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"token":   "signed-token",
			"profile": db.Profile{ID: profileID, Role: db.RoleApplicant},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Login(context.Background(), "somchai@example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", resp.Token)
	assert.Equal(t, profileID, resp.Profile.ID)
}

func TestMeSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer my-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(db.Profile{Name: "สมชาย"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("my-token")

	profile, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "สมชาย", profile.Name)
}

func TestAPIErrorDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid email or password"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Login(context.Background(), "a@b.co", "bad")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid email or password", apiErr.Message)
}

func TestJobsBuildsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jobs", r.URL.Path)
		assert.Equal(t, "กาแฟ", r.URL.Query().Get("search"))
		assert.Equal(t, "บรบือ", r.URL.Query().Get("district"))
		assert.Equal(t, "salary_high", r.URL.Query().Get("sort"))
		json.NewEncoder(w).Encode([]db.Job{{Title: "บาริสต้า"}})
	}))
	defer srv.Close()

	jobs, err := New(srv.URL).Jobs(context.Background(), JobQuery{
		Search:   "กาแฟ",
		District: "บรบือ",
		Sort:     "salary_high",
	})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "บาริสต้า", jobs[0].Title)
}
