package server

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/nattapong/sarakham-jobs/internal/db"
	"github.com/nattapong/sarakham-jobs/internal/types"
)

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.db.ListProfiles(r.Context())
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, profiles)
}

// handleUpdateRole changes a user's role. The target is told about the change
// so an unexpected escalation does not go unnoticed.
func (s *Server) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req types.UpdateRoleRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.serviceError(w, &ValidationError{Err: err})
		return
	}

	profile, err := s.db.GetProfile(r.Context(), id)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if profile == nil {
		s.serviceError(w, ErrUserNotFound)
		return
	}

	if err := s.db.UpdateProfileRole(r.Context(), id, db.Role(req.Role)); err != nil {
		s.serviceError(w, err)
		return
	}

	if err := s.notifications.Notify(r.Context(), id,
		"สิทธิ์การใช้งานเปลี่ยนแปลง",
		fmt.Sprintf("บัญชีของคุณถูกเปลี่ยนเป็น %s", req.Role),
		db.NotifyInfo); err != nil {
		s.logger.Warn("failed to notify role change", zap.Error(err))
	}

	profile.Role = db.Role(req.Role)
	s.jsonResponse(w, http.StatusOK, profile)
}

func (s *Server) handleAdminListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.companies.All(r.Context())
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, companies)
}

func (s *Server) handleApproveCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.companies.Approve(r.Context(), id); err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "approved"})
}

func (s *Server) handleAdminListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.jobs.All(r.Context())
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, jobs)
}

func (s *Server) handleApproveJob(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.jobs.Approve(r.Context(), id); err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "approved"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.Summary(r.Context())
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}

func (s *Server) handleCreateAdvertisement(w http.ResponseWriter, r *http.Request) {
	var req types.CreateAdvertisementRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	ad, err := s.ads.Create(r.Context(), &req)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, ad)
}

func (s *Server) handleSetAdvertisementActive(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}

	ad, err := s.ads.SetActive(r.Context(), id, req.IsActive)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ad)
}
