package server

import (
	"net/http"

	"github.com/nattapong/sarakham-jobs/internal/types"
)

// handleListCompanies serves the approved companies shown on the public site.
func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.companies.Approved(r.Context())
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, companies)
}

func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.callerIdentity(w, r)
	if !ok {
		return
	}

	var req types.CreateCompanyRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	company, err := s.companies.Create(r.Context(), userID, &req)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, company)
}

func (s *Server) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := s.callerIdentity(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req types.UpdateCompanyRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	company, err := s.companies.Update(r.Context(), userID, role, id, &req)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, company)
}

func (s *Server) handleMyCompanies(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.callerIdentity(w, r)
	if !ok {
		return
	}

	companies, err := s.companies.Mine(r.Context(), userID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, companies)
}
