package server

import (
	"net/http"

	"github.com/nattapong/sarakham-jobs/internal/types"
)

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.callerIdentity(w, r)
	if !ok {
		return
	}
	jobID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req types.ApplyRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	application, err := s.applications.Apply(r.Context(), userID, jobID, &req)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, application)
}

func (s *Server) handleMyApplications(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.callerIdentity(w, r)
	if !ok {
		return
	}

	applications, err := s.applications.Mine(r.Context(), userID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, applications)
}

func (s *Server) handleReceivedApplications(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.callerIdentity(w, r)
	if !ok {
		return
	}

	applications, err := s.applications.Received(r.Context(), userID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, applications)
}

func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := s.callerIdentity(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req types.UpdateApplicationStatusRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	application, err := s.applications.UpdateStatus(r.Context(), userID, role, id, &req)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, application)
}
