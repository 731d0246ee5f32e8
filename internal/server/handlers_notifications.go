package server

import (
	"net/http"
	"time"
)

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.callerIdentity(w, r)
	if !ok {
		return
	}

	notifications, err := s.notifications.List(r.Context(), userID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, notifications)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.callerIdentity(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.notifications.MarkRead(r.Context(), id, userID); err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "read"})
}

// handleNotificationStream pushes the caller's notifications over SSE until
// the client disconnects.
func (s *Server) handleNotificationStream(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.callerIdentity(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	events, cancel := s.notifications.Subscribe(userID)
	defer cancel()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case n := <-events:
			if err := sse.SendEvent("notification", n); err != nil {
				return
			}
		case <-keepalive.C:
			if err := sse.SendComment("keepalive"); err != nil {
				return
			}
		}
	}
}
