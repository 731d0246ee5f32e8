// Package client is a small HTTP client for the job board API, used by the
// bundled CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nattapong/sarakham-jobs/internal/db"
	"github.com/nattapong/sarakham-jobs/internal/types"
)

// APIError is a non-2xx response decoded from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// Client talks to one API server, optionally with a bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken attaches a bearer token to subsequent requests. An empty string
// clears it.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	}
	return apiErr
}

// Register creates an account and returns the session.
func (c *Client) Register(ctx context.Context, req *types.RegisterRequest) (*types.LoginResponse, error) {
	var resp types.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login signs in and returns the session.
func (c *Client) Login(ctx context.Context, email, password string) (*types.LoginResponse, error) {
	var resp types.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login",
		&types.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout tells the server the session ended.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Me fetches the signed-in profile.
func (c *Client) Me(ctx context.Context) (*db.Profile, error) {
	var profile db.Profile
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateMe updates the signed-in profile.
func (c *Client) UpdateMe(ctx context.Context, req *types.UpdateProfileRequest) (*db.Profile, error) {
	var profile db.Profile
	if err := c.do(ctx, http.MethodPut, "/auth/me", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// JobQuery is the board query passed to Jobs.
type JobQuery struct {
	Search   string
	District string
	Sort     string
}

// Jobs fetches the public board.
func (c *Client) Jobs(ctx context.Context, q JobQuery) ([]db.Job, error) {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.District != "" {
		values.Set("district", q.District)
	}
	if q.Sort != "" {
		values.Set("sort", q.Sort)
	}
	path := "/jobs"
	if len(values) > 0 {
		path += "?" + values.Encode()
	}

	var jobs []db.Job
	if err := c.do(ctx, http.MethodGet, path, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// Districts fetches the district filter options.
func (c *Client) Districts(ctx context.Context) ([]string, error) {
	var districts []string
	if err := c.do(ctx, http.MethodGet, "/districts", nil, &districts); err != nil {
		return nil, err
	}
	return districts, nil
}
