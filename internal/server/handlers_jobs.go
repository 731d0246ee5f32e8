package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/nattapong/sarakham-jobs/internal/db"
	"github.com/nattapong/sarakham-jobs/internal/listing"
	"github.com/nattapong/sarakham-jobs/internal/server/middleware"
	"github.com/nattapong/sarakham-jobs/internal/types"
)

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) callerIdentity(w http.ResponseWriter, r *http.Request) (uuid.UUID, db.Role, bool) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "missing authentication")
		return uuid.Nil, "", false
	}
	role, _ := middleware.GetRole(r)
	return userID, db.Role(role), true
}

// handleListJobs serves the public board with search, district and sort from
// the query string.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sort := listing.Sort(q.Get("sort"))
	if sort != "" && !sort.Valid() {
		s.errorResponse(w, http.StatusBadRequest, "unknown sort order")
		return
	}

	jobs, err := s.jobs.PublicList(r.Context(), listing.Criteria{
		Search:   q.Get("search"),
		District: q.Get("district"),
		Sort:     sort,
	})
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, jobs)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	job, err := s.jobs.Get(r.Context(), id)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleListDistricts(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, listing.Districts)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.callerIdentity(w, r)
	if !ok {
		return
	}

	var req types.CreateJobRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	job, err := s.jobs.Create(r.Context(), userID, &req)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, job)
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := s.callerIdentity(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req types.UpdateJobRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	job, err := s.jobs.Update(r.Context(), userID, role, id, &req)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleMyJobs(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.callerIdentity(w, r)
	if !ok {
		return
	}

	jobs, err := s.jobs.Mine(r.Context(), userID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, jobs)
}
