package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nattapong/sarakham-jobs/internal/cache"
	"github.com/nattapong/sarakham-jobs/internal/db"
	"github.com/nattapong/sarakham-jobs/internal/listing"
	"github.com/nattapong/sarakham-jobs/internal/types"
)

// listingCacheKey holds the raw approved and active postings. The open
// invariant is applied per request against the caller's clock, so cached
// entries never pin an expired job on the board.
const listingCacheKey = "jobs:listing:v1"

// listingCacheTTL bounds staleness when an invalidation is missed.
const listingCacheTTL = time.Minute

// JobStore is the slice of the database the job service needs.
type JobStore interface {
	CreateJob(ctx context.Context, j *db.Job) (uuid.UUID, error)
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	ListApprovedJobs(ctx context.Context) ([]db.Job, error)
	ListJobsByOwner(ctx context.Context, ownerID uuid.UUID) ([]db.Job, error)
	ListJobs(ctx context.Context) ([]db.Job, error)
	UpdateJob(ctx context.Context, j *db.Job) error
	ApproveJob(ctx context.Context, id uuid.UUID) error

	GetCompany(ctx context.Context, id uuid.UUID) (*db.Company, error)
	ListCompaniesByOwner(ctx context.Context, ownerID uuid.UUID) ([]db.Company, error)
}

// JobService manages postings, the public board and the approval workflow.
type JobService struct {
	store    JobStore
	cache    cache.Cache
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewJobService creates a job service.
func NewJobService(store JobStore, c cache.Cache, notifier Notifier, logger *zap.Logger) *JobService {
	return &JobService{
		store:    store,
		cache:    c,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Create posts a job for one of the owner's approved companies. An employer
// with no company at all gets ErrNoCompany so the client can route them to
// company registration first.
func (s *JobService) Create(ctx context.Context, ownerID uuid.UUID, req *types.CreateJobRequest) (*db.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	companies, err := s.store.ListCompaniesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	if len(companies) == 0 {
		return nil, ErrNoCompany
	}

	var company *db.Company
	for i := range companies {
		if companies[i].ID == req.CompanyID {
			company = &companies[i]
			break
		}
	}
	if company == nil {
		return nil, ErrForbidden
	}
	if !company.IsApproved {
		return nil, ErrCompanyNotApproved
	}

	job := &db.Job{
		Title:         req.Title,
		Description:   req.Description,
		Requirements:  req.Requirements,
		Salary:        req.Salary,
		SalaryPerHour: req.SalaryPerHour,
		WorkingHours:  req.WorkingHours,
		Location:      req.Location,
		District:      req.District,
		CompanyID:     company.ID,
		// Snapshot the name so later renames do not rewrite old postings.
		CompanyName:         company.Name,
		Image:               req.Image,
		ApplicationDeadline: req.ApplicationDeadline,
		MaxApplicants:       req.MaxApplicants,
		ContactPerson:       req.ContactPerson,
		OrganizationName:    req.OrganizationName,
		ProjectDetails:      req.ProjectDetails,
		WorkDuration:        req.WorkDuration,
	}
	id, err := s.store.CreateJob(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	s.invalidateListing(ctx)

	created, err := s.store.GetJob(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}

	s.logger.Info("job created",
		zap.String("job_id", id.String()),
		zap.String("company_id", company.ID.String()))
	return created, nil
}

// Update applies the non-nil fields of req. Only the posting company's owner
// or an admin may update. Approval state and the applicant counter are not
// touchable here.
func (s *JobService) Update(ctx context.Context, callerID uuid.UUID, callerRole db.Role, jobID uuid.UUID, req *types.UpdateJobRequest) (*db.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	company, err := s.store.GetCompany(ctx, job.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}
	if company == nil || (company.OwnerID != callerID && callerRole != db.RoleAdmin) {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Requirements != nil {
		job.Requirements = *req.Requirements
	}
	if req.Salary != nil {
		job.Salary = *req.Salary
	}
	if req.SalaryPerHour != nil {
		job.SalaryPerHour = req.SalaryPerHour
	}
	if req.WorkingHours != nil {
		job.WorkingHours = *req.WorkingHours
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.District != nil {
		job.District = *req.District
	}
	if req.Image != nil {
		job.Image = *req.Image
	}
	if req.ApplicationDeadline != nil {
		job.ApplicationDeadline = req.ApplicationDeadline
	}
	if req.MaxApplicants != nil {
		job.MaxApplicants = req.MaxApplicants
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}
	if req.ContactPerson != nil {
		job.ContactPerson = *req.ContactPerson
	}
	if req.OrganizationName != nil {
		job.OrganizationName = *req.OrganizationName
	}
	if req.ProjectDetails != nil {
		job.ProjectDetails = *req.ProjectDetails
	}
	if req.WorkDuration != nil {
		job.WorkDuration = *req.WorkDuration
	}

	if err := s.store.UpdateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	s.invalidateListing(ctx)
	return job, nil
}

// PublicList returns the board for the given criteria. The approved set is
// cached; filtering and ordering run per request.
func (s *JobService) PublicList(ctx context.Context, criteria listing.Criteria) ([]db.Job, error) {
	jobs, err := s.approvedJobs(ctx)
	if err != nil {
		return nil, err
	}
	return listing.Visible(jobs, criteria, s.now()), nil
}

func (s *JobService) approvedJobs(ctx context.Context) ([]db.Job, error) {
	if data, err := s.cache.Get(ctx, listingCacheKey); err == nil {
		var jobs []db.Job
		if err := json.Unmarshal(data, &jobs); err == nil {
			return jobs, nil
		}
		// Unreadable entry: drop it and fall through to the database.
		s.invalidateListing(ctx)
	} else if !errors.Is(err, cache.ErrNotFound) {
		s.logger.Warn("listing cache read failed", zap.Error(err))
	}

	jobs, err := s.store.ListApprovedJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	if data, err := json.Marshal(jobs); err == nil {
		if err := s.cache.Set(ctx, listingCacheKey, data, listingCacheTTL); err != nil {
			s.logger.Warn("listing cache write failed", zap.Error(err))
		}
	}
	return jobs, nil
}

// Get returns a posting for the public detail page. Pending and withdrawn
// postings stay hidden; their owners see them through Mine instead.
func (s *JobService) Get(ctx context.Context, jobID uuid.UUID) (*db.Job, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil || !job.IsApproved || !job.IsActive {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// Mine lists every posting across the owner's companies.
func (s *JobService) Mine(ctx context.Context, ownerID uuid.UUID) ([]db.Job, error) {
	return s.store.ListJobsByOwner(ctx, ownerID)
}

// All lists every posting for the admin review queue.
func (s *JobService) All(ctx context.Context) ([]db.Job, error) {
	return s.store.ListJobs(ctx)
}

// Approve publishes a posting and tells the company owner.
func (s *JobService) Approve(ctx context.Context, jobID uuid.UUID) error {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil {
		return ErrJobNotFound
	}

	if err := s.store.ApproveJob(ctx, jobID); err != nil {
		return fmt.Errorf("failed to approve job: %w", err)
	}
	s.invalidateListing(ctx)

	if company, err := s.store.GetCompany(ctx, job.CompanyID); err == nil && company != nil {
		if err := s.notifier.Notify(ctx, company.OwnerID,
			"ประกาศงานได้รับการอนุมัติ",
			fmt.Sprintf("ประกาศงาน %s เผยแพร่บนกระดานงานแล้ว", job.Title),
			db.NotifySuccess); err != nil {
			s.logger.Warn("failed to notify job owner", zap.Error(err))
		}
	}

	s.logger.Info("job approved", zap.String("job_id", jobID.String()))
	return nil
}

func (s *JobService) invalidateListing(ctx context.Context) {
	if err := s.cache.Delete(ctx, listingCacheKey); err != nil {
		s.logger.Warn("listing cache invalidation failed", zap.Error(err))
	}
}
