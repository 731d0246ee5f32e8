// Package server provides the HTTP REST API for the job board.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nattapong/sarakham-jobs/internal/cache"
	"github.com/nattapong/sarakham-jobs/internal/cache/memory"
	cacheredis "github.com/nattapong/sarakham-jobs/internal/cache/redis"
	"github.com/nattapong/sarakham-jobs/internal/config"
	"github.com/nattapong/sarakham-jobs/internal/db"
	"github.com/nattapong/sarakham-jobs/internal/db/schema"
	"github.com/nattapong/sarakham-jobs/internal/server/middleware"
	"github.com/nattapong/sarakham-jobs/internal/server/ratelimit"
	"github.com/nattapong/sarakham-jobs/internal/storage"
)

// Server is the HTTP server with its services wired together.
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	cache       cache.Cache
	uploads     *storage.Store
	rateLimiter *ratelimit.Limiter
	tokens      *TokenManager
	logger      *zap.Logger

	auth          *AuthService
	companies     *CompanyService
	jobs          *JobService
	applications  *ApplicationService
	notifications *NotificationService
	ads           *AdService
	stats         *StatsService
}

// New connects the backing services and builds the route table.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := schema.NewMigrator(database.Pool(), logger).Apply(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	var c cache.Cache
	if cfg.RedisURL != "" {
		c, err = cacheredis.New(context.Background(), cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info("using redis cache", zap.String("addr", cfg.RedisURL))
	} else {
		c = memory.New()
		logger.Info("using in-memory cache")
	}

	uploads, err := storage.New(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		return nil, err
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	s := &Server{
		db:          database,
		cache:       c,
		uploads:     uploads,
		rateLimiter: ratelimit.New(ratelimit.ConfigFromEnv()),
		tokens:      NewTokenManager(jwtConfig),
		logger:      logger,
	}

	s.notifications = NewNotificationService(database, NewEventHub(), logger)
	s.auth = NewAuthService(database, passwordConfig, s.tokens, logger)
	s.companies = NewCompanyService(database, s.notifications, logger)
	s.jobs = NewJobService(database, c, s.notifications, logger)
	s.applications = NewApplicationService(database, c, s.notifications, logger)
	s.ads = NewAdService(database)
	s.stats = NewStatsService(database)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // SSE streams stay open indefinitely
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() *http.ServeMux {
	validator := s.tokens.AsTokenValidator()
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAuth(validator, h)
	}
	role := func(h http.HandlerFunc, roles ...string) http.HandlerFunc {
		return middleware.RequireAuth(validator, middleware.RequireRole(h, roles...))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return role(h, string(db.RoleAdmin))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Session
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/logout", authed(s.handleLogout))
	mux.HandleFunc("GET /auth/me", authed(s.handleMe))
	mux.HandleFunc("PUT /auth/me", authed(s.handleUpdateMe))
	mux.HandleFunc("PUT /auth/password", authed(s.handleUpdatePassword))

	// Public board
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.HandleFunc("GET /districts", s.handleListDistricts)
	mux.HandleFunc("GET /companies", s.handleListCompanies)
	mux.HandleFunc("GET /advertisements", s.handleListAdvertisements)

	// Employer
	mux.HandleFunc("POST /companies", role(s.handleCreateCompany, string(db.RoleEmployer), string(db.RoleAdmin)))
	mux.HandleFunc("PUT /companies/{id}", role(s.handleUpdateCompany, string(db.RoleEmployer), string(db.RoleAdmin)))
	mux.HandleFunc("GET /companies/mine", role(s.handleMyCompanies, string(db.RoleEmployer), string(db.RoleAdmin)))
	mux.HandleFunc("POST /jobs", role(s.handleCreateJob, string(db.RoleEmployer), string(db.RoleAdmin)))
	mux.HandleFunc("PUT /jobs/{id}", role(s.handleUpdateJob, string(db.RoleEmployer), string(db.RoleAdmin)))
	mux.HandleFunc("GET /jobs/mine", role(s.handleMyJobs, string(db.RoleEmployer), string(db.RoleAdmin)))
	mux.HandleFunc("GET /applications/received", role(s.handleReceivedApplications, string(db.RoleEmployer), string(db.RoleAdmin)))
	mux.HandleFunc("PUT /applications/{id}/status", role(s.handleUpdateApplicationStatus, string(db.RoleEmployer), string(db.RoleAdmin)))

	// Applicant
	mux.HandleFunc("POST /jobs/{id}/apply", role(s.handleApply, string(db.RoleApplicant)))
	mux.HandleFunc("GET /applications/mine", role(s.handleMyApplications, string(db.RoleApplicant)))

	// Notifications
	mux.HandleFunc("GET /notifications", authed(s.handleListNotifications))
	mux.HandleFunc("PUT /notifications/{id}/read", authed(s.handleMarkNotificationRead))
	mux.HandleFunc("GET /notifications/stream", authed(s.handleNotificationStream))

	// Admin
	mux.HandleFunc("GET /admin/profiles", admin(s.handleListProfiles))
	mux.HandleFunc("PUT /admin/profiles/{id}/role", admin(s.handleUpdateRole))
	mux.HandleFunc("GET /admin/companies", admin(s.handleAdminListCompanies))
	mux.HandleFunc("POST /admin/companies/{id}/approve", admin(s.handleApproveCompany))
	mux.HandleFunc("GET /admin/jobs", admin(s.handleAdminListJobs))
	mux.HandleFunc("POST /admin/jobs/{id}/approve", admin(s.handleApproveJob))
	mux.HandleFunc("GET /admin/stats", admin(s.handleStats))
	mux.HandleFunc("POST /admin/advertisements", admin(s.handleCreateAdvertisement))
	mux.HandleFunc("PUT /admin/advertisements/{id}/active", admin(s.handleSetAdvertisementActive))

	// Uploads
	mux.HandleFunc("POST /uploads/{bucket}", authed(s.handleUpload))
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(s.uploads.Root()))))

	return mux
}

// Start listens until an interrupt, then drains connections.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := s.cache.Close(); err != nil {
		s.logger.Warn("cache close failed", zap.Error(err))
	}
	s.db.Close()
	s.logger.Info("server stopped")
	return nil
}

// withCORS allows the browser frontend to call the API from another origin.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit throttles by client IP, with the tier picked from the route.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tier, limited := routeTier(r)
		if limited && !s.rateLimiter.Allow(tier, ratelimit.ClientIP(r)) {
			w.Header().Set("Retry-After", "60")
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// routeTier classifies a request for rate limiting. Health checks are exempt.
func routeTier(r *http.Request) (ratelimit.Tier, bool) {
	switch {
	case r.URL.Path == "/health":
		return "", false
	case strings.HasPrefix(r.URL.Path, "/auth/") && r.Method != http.MethodGet:
		return ratelimit.TierAuth, true
	case r.Method == http.MethodGet:
		return ratelimit.TierPublic, true
	default:
		return ratelimit.TierWrite, true
	}
}

// withLogging logs each request with its duration and status.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps SSE working through the logging wrapper.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps a service error onto the response. Internal errors are
// logged and masked.
func (s *Server) serviceError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("internal error", zap.Error(err))
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}
