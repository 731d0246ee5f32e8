package server

import (
	"encoding/json"
	"net/http"

	"github.com/nattapong/sarakham-jobs/internal/server/middleware"
	"github.com/nattapong/sarakham-jobs/internal/types"
)

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.auth.Register(r.Context(), &req)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.auth.Login(r.Context(), &req)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleLogout acknowledges the logout. Tokens are stateless, so the client
// dropping its copy is what actually ends the session.
func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	profile, err := s.auth.Me(r.Context(), userID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req types.UpdateProfileRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	profile, err := s.auth.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req types.UpdatePasswordRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if err := s.auth.UpdatePassword(r.Context(), userID, &req); err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "password updated"})
}
