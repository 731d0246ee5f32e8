// Package storage persists uploaded files on local disk and serves them
// under stable public URLs.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Buckets the API accepts uploads into. Anything else is rejected.
var allowedBuckets = map[string]bool{
	"logos":      true,
	"job-images": true,
	"avatars":    true,
	"resumes":    true,
}

// maxUploadSize caps a single upload at 5 MiB.
const maxUploadSize = 5 << 20

// ErrUnknownBucket is returned for a bucket outside the whitelist.
var ErrUnknownBucket = fmt.Errorf("storage: unknown bucket")

// ErrTooLarge is returned when an upload exceeds the size cap.
var ErrTooLarge = fmt.Errorf("storage: file exceeds %d bytes", maxUploadSize)

// Store writes uploads under root and derives public URLs from baseURL.
type Store struct {
	root    string
	baseURL string
}

// New creates a store rooted at dir. The directory is created if absent.
func New(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{root: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Root returns the directory uploads are written to.
func (s *Store) Root() string {
	return s.root
}

// ValidBucket reports whether bucket is accepted for uploads.
func ValidBucket(bucket string) bool {
	return allowedBuckets[bucket]
}

// Save writes r into the bucket under a random name derived from the original
// filename's extension, and returns the public URL.
func (s *Store) Save(bucket, filename string, r io.Reader) (string, error) {
	if !ValidBucket(bucket) {
		return "", ErrUnknownBucket
	}

	if err := os.MkdirAll(filepath.Join(s.root, bucket), 0o755); err != nil {
		return "", fmt.Errorf("failed to create bucket dir: %w", err)
	}

	// Only the extension of the caller's filename survives. This keeps path
	// traversal out of the stored name entirely.
	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.New().String() + ext
	path := filepath.Join(s.root, bucket, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(r, maxUploadSize+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > maxUploadSize {
		err = ErrTooLarge
	}
	if err != nil {
		os.Remove(path)
		if err == ErrTooLarge {
			return "", err
		}
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, bucket, name), nil
}
