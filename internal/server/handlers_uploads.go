package server

import (
	"errors"
	"net/http"

	"github.com/nattapong/sarakham-jobs/internal/storage"
)

// handleUpload accepts one multipart file and returns its public URL.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	bucket := r.PathValue("bucket")
	if !storage.ValidBucket(bucket) {
		s.errorResponse(w, http.StatusBadRequest, "unknown bucket")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	url, err := s.uploads.Save(bucket, header.Filename, file)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]string{"url": url})
}
