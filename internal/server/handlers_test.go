package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nattapong/sarakham-jobs/internal/cache/memory"
	"github.com/nattapong/sarakham-jobs/internal/config"
	"github.com/nattapong/sarakham-jobs/internal/db"
	"github.com/nattapong/sarakham-jobs/internal/server/middleware"
	"github.com/nattapong/sarakham-jobs/internal/storage"
)

type testEnv struct {
	server *Server
	store  *fakeApplicationStore
	auth   *fakeAuthStore
}

func newTestServer(t *testing.T) *testEnv {
	t.Helper()

	store := newFakeApplicationStore()
	authStore := newFakeAuthStore()
	logger := zap.NewNop()
	notifier := &fakeNotifier{}

	uploads, err := storage.New(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	tokens := NewTokenManager(&config.JWTConfig{
		Secret:          "test-secret-test-secret-test-1234",
		Issuer:          "sarakham-jobs",
		ExpirationHours: 1,
	})

	s := &Server{
		uploads: uploads,
		tokens:  tokens,
		logger:  logger,
	}
	s.auth = NewAuthService(authStore, &config.PasswordConfig{BcryptCost: 10}, tokens, logger)
	s.companies = NewCompanyService(store.fakeBoardStore, notifier, logger)
	s.jobs = NewJobService(store.fakeBoardStore, memory.New(), notifier, logger)
	s.applications = NewApplicationService(store, memory.New(), notifier, logger)

	return &testEnv{server: s, store: store, auth: authStore}
}

func identified(req *http.Request, userID uuid.UUID, role db.Role) *http.Request {
	return req.WithContext(middleware.WithIdentity(req.Context(), userID, string(role)))
}

func TestHandleHealth(t *testing.T) {
	env := newTestServer(t)

	rec := httptest.NewRecorder()
	env.server.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleRegister(t *testing.T) {
	env := newTestServer(t)

	body := `{"name":"สมชาย","email":"somchai@example.com","password":"secret-password","role":"applicant"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.server.handleRegister(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Token   string      `json:"token"`
		Profile *db.Profile `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, db.RoleApplicant, resp.Profile.Role)
}

func TestHandleRegisterInvalidBody(t *testing.T) {
	env := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	env.server.handleRegister(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleLoginWrongPassword(t *testing.T) {
	env := newTestServer(t)
	ctx := context.Background()

	_, err := env.server.auth.Register(ctx, registerReq())
	require.NoError(t, err)

	body := `{"email":"somchai@example.com","password":"wrong-password"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.server.handleLogin(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid email or password")
}

func TestHandleListJobsRejectsUnknownSort(t *testing.T) {
	env := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/jobs?sort=bogus", nil)
	rec := httptest.NewRecorder()
	env.server.handleListJobs(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleListJobsFilters(t *testing.T) {
	env := newTestServer(t)
	company := env.store.addCompany(uuid.New(), true)
	env.store.addOpenJob(company.ID)

	req := httptest.NewRequest(http.MethodGet, "/jobs?search=เสิร์ฟ", nil)
	rec := httptest.NewRecorder()
	env.server.handleListJobs(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var jobs []db.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jobs))
	assert.Len(t, jobs, 1)
}

func TestHandleGetJobInvalidID(t *testing.T) {
	env := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/jobs/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	rec := httptest.NewRecorder()
	env.server.handleGetJob(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetJobUnknownID(t *testing.T) {
	env := newTestServer(t)

	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/jobs/"+id, nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	env.server.handleGetJob(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleListDistricts(t *testing.T) {
	env := newTestServer(t)

	rec := httptest.NewRecorder()
	env.server.handleListDistricts(rec, httptest.NewRequest(http.MethodGet, "/districts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var districts []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &districts))
	assert.Len(t, districts, 13)
}

func TestHandleCreateJobWithoutCompany(t *testing.T) {
	env := newTestServer(t)

	body, err := json.Marshal(createJobReq(uuid.New()))
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/jobs", bytes.NewReader(body))
	req = identified(req, uuid.New(), db.RoleEmployer)
	rec := httptest.NewRecorder()
	env.server.handleCreateJob(rec, req)

	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	assert.Contains(t, rec.Body.String(), "no company registered")
}

func TestHandleApply(t *testing.T) {
	env := newTestServer(t)
	company := env.store.addCompany(uuid.New(), true)
	job := env.store.addOpenJob(company.ID)
	applicant := env.store.addProfile(db.RoleApplicant)

	body := `{"cover_letter":"สนใจงานนี้มากค่ะ"}`
	req := httptest.NewRequest(http.MethodPost, "/jobs/"+job.ID.String()+"/apply", strings.NewReader(body))
	req.SetPathValue("id", job.ID.String())
	req = identified(req, applicant.ID, db.RoleApplicant)
	rec := httptest.NewRecorder()
	env.server.handleApply(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var app db.JobApplication
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &app))
	assert.Equal(t, db.StatusPending, app.Status)
	assert.Equal(t, job.Title, app.JobTitle)
}

func TestHandleApplyClosedJob(t *testing.T) {
	env := newTestServer(t)
	company := env.store.addCompany(uuid.New(), true)
	job := env.store.addOpenJob(company.ID)
	job.IsActive = false
	applicant := env.store.addProfile(db.RoleApplicant)

	body := `{"cover_letter":"สนใจค่ะ"}`
	req := httptest.NewRequest(http.MethodPost, "/jobs/"+job.ID.String()+"/apply", strings.NewReader(body))
	req.SetPathValue("id", job.ID.String())
	req = identified(req, applicant.ID, db.RoleApplicant)
	rec := httptest.NewRecorder()
	env.server.handleApply(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleUpdateApplicationStatus(t *testing.T) {
	env := newTestServer(t)
	owner := uuid.New()
	company := env.store.addCompany(owner, true)
	job := env.store.addOpenJob(company.ID)
	applicant := env.store.addProfile(db.RoleApplicant)

	app, err := env.server.applications.Apply(context.Background(), applicant.ID, job.ID, applyReq())
	require.NoError(t, err)

	body := `{"status":"approved"}`
	req := httptest.NewRequest(http.MethodPut, "/applications/"+app.ID.String()+"/status", strings.NewReader(body))
	req.SetPathValue("id", app.ID.String())
	req = identified(req, owner, db.RoleEmployer)
	rec := httptest.NewRecorder()
	env.server.handleUpdateApplicationStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var decided db.JobApplication
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decided))
	assert.Equal(t, db.StatusApproved, decided.Status)
}

func TestHandleUploadUnknownBucket(t *testing.T) {
	env := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/uploads/secrets", nil)
	req.SetPathValue("bucket", "secrets")
	req = identified(req, uuid.New(), db.RoleEmployer)
	rec := httptest.NewRecorder()
	env.server.handleUpload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleUpload(t *testing.T) {
	env := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "logo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("image-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads/logos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.SetPathValue("bucket", "logos")
	req = identified(req, uuid.New(), db.RoleEmployer)
	rec := httptest.NewRecorder()
	env.server.handleUpload(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["url"], "/uploads/logos/")
}
