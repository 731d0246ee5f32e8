package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nattapong/sarakham-jobs/internal/db"
	"github.com/nattapong/sarakham-jobs/internal/types"
)

// AdStore is the slice of the database the advertisement service needs.
type AdStore interface {
	ListActiveAdvertisements(ctx context.Context, position db.AdPosition) ([]db.Advertisement, error)
	CreateAdvertisement(ctx context.Context, a *db.Advertisement) (uuid.UUID, error)
	GetAdvertisement(ctx context.Context, id uuid.UUID) (*db.Advertisement, error)
	UpdateAdvertisement(ctx context.Context, a *db.Advertisement) error
}

// AdService manages the promotional slots shown around the board.
type AdService struct {
	store AdStore
}

// NewAdService creates an advertisement service.
func NewAdService(store AdStore) *AdService {
	return &AdService{store: store}
}

// Active lists the active ads for a display position, in rotation order.
func (s *AdService) Active(ctx context.Context, position db.AdPosition) ([]db.Advertisement, error) {
	if !position.Valid() {
		return nil, &ValidationError{Err: fmt.Errorf("unknown position %q", position)}
	}
	return s.store.ListActiveAdvertisements(ctx, position)
}

// Create adds an advertisement. New ads default to active unless the request
// says otherwise.
func (s *AdService) Create(ctx context.Context, req *types.CreateAdvertisementRequest) (*db.Advertisement, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	ad := &db.Advertisement{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		LinkURL:     req.LinkURL,
		Position:    db.AdPosition(req.Position),
		IsActive:    active,
	}
	id, err := s.store.CreateAdvertisement(ctx, ad)
	if err != nil {
		return nil, fmt.Errorf("failed to create advertisement: %w", err)
	}
	return s.store.GetAdvertisement(ctx, id)
}

// SetActive toggles an advertisement in or out of rotation.
func (s *AdService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*db.Advertisement, error) {
	ad, err := s.store.GetAdvertisement(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load advertisement: %w", err)
	}
	if ad == nil {
		return nil, ErrAdNotFound
	}

	ad.IsActive = active
	if err := s.store.UpdateAdvertisement(ctx, ad); err != nil {
		return nil, fmt.Errorf("failed to update advertisement: %w", err)
	}
	return ad, nil
}
