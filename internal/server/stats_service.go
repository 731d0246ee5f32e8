package server

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Stats is the admin dashboard summary. OpenJobs counts only postings that
// satisfy the open invariant right now, so an expired or full job drops out
// of the count even while it stays in the totals.
type Stats struct {
	Users            int `json:"users"`
	Companies        int `json:"companies"`
	PendingCompanies int `json:"pending_companies"`
	Jobs             int `json:"jobs"`
	PendingJobs      int `json:"pending_jobs"`
	OpenJobs         int `json:"open_jobs"`
	Applications     int `json:"applications"`
}

// StatsStore is the slice of the database the stats service needs.
type StatsStore interface {
	CountProfiles(ctx context.Context) (int, error)
	CountCompanies(ctx context.Context) (total, pending int, err error)
	CountJobs(ctx context.Context) (total, pending int, err error)
	CountOpenJobs(ctx context.Context, now time.Time) (int, error)
	CountApplications(ctx context.Context) (int, error)
}

// StatsService aggregates board-wide counts for the admin dashboard.
type StatsService struct {
	store StatsStore
	now   func() time.Time
}

// NewStatsService creates a stats service.
func NewStatsService(store StatsStore) *StatsService {
	return &StatsService{store: store, now: time.Now}
}

// Summary runs the count queries concurrently and combines the results.
func (s *StatsService) Summary(ctx context.Context) (*Stats, error) {
	var stats Stats

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.store.CountProfiles(ctx)
		stats.Users = n
		return err
	})
	g.Go(func() error {
		total, pending, err := s.store.CountCompanies(ctx)
		stats.Companies, stats.PendingCompanies = total, pending
		return err
	})
	g.Go(func() error {
		total, pending, err := s.store.CountJobs(ctx)
		stats.Jobs, stats.PendingJobs = total, pending
		return err
	})
	g.Go(func() error {
		n, err := s.store.CountOpenJobs(ctx, s.now())
		stats.OpenJobs = n
		return err
	})
	g.Go(func() error {
		n, err := s.store.CountApplications(ctx)
		stats.Applications = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to collect stats: %w", err)
	}
	return &stats, nil
}
