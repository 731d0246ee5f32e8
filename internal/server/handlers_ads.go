package server

import (
	"net/http"

	"github.com/nattapong/sarakham-jobs/internal/db"
)

// handleListAdvertisements serves the active ads for one display position.
// The client rotates through them on a timer.
func (s *Server) handleListAdvertisements(w http.ResponseWriter, r *http.Request) {
	position := db.AdPosition(r.URL.Query().Get("position"))
	if position == "" {
		position = db.AdBanner
	}

	ads, err := s.ads.Active(r.Context(), position)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ads)
}
