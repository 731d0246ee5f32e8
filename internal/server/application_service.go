package server

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nattapong/sarakham-jobs/internal/cache"
	"github.com/nattapong/sarakham-jobs/internal/db"
	"github.com/nattapong/sarakham-jobs/internal/types"
)

// ApplicationStore is the slice of the database the application service needs.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, a *db.JobApplication) (uuid.UUID, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*db.JobApplication, error)
	ListApplicationsByApplicant(ctx context.Context, applicantID uuid.UUID) ([]db.JobApplication, error)
	ListApplicationsByOwner(ctx context.Context, ownerID uuid.UUID) ([]db.JobApplication, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status db.ApplicationStatus) error

	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*db.Company, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*db.Profile, error)
}

// ApplicationService manages submissions and the employer review flow.
type ApplicationService struct {
	store    ApplicationStore
	cache    cache.Cache
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewApplicationService creates an application service.
func NewApplicationService(store ApplicationStore, c cache.Cache, notifier Notifier, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{store: store, cache: c, notifier: notifier, logger: logger, now: time.Now}
}

// Apply submits an application to an open job. The applicant's name, email
// and the job's title and company are copied onto the application so the
// employer's inbox stays readable even after later edits.
func (s *ApplicationService) Apply(ctx context.Context, applicantID, jobID uuid.UUID, req *types.ApplyRequest) (*db.JobApplication, error) {
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
	if !job.IsOpen(s.now()) {
		return nil, ErrJobClosed
	}

	profile, err := s.store.GetProfile(ctx, applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}

	phone := req.Phone
	if phone == "" {
		phone = profile.Phone
	}
	address := req.Address
	if address == "" {
		address = profile.Address
	}

	application := &db.JobApplication{
		JobID:           jobID,
		ApplicantID:     applicantID,
		ApplicantName:   profile.Name,
		ApplicantEmail:  profile.Email,
		CoverLetter:     req.CoverLetter,
		Resume:          req.Resume,
		JobTitle:        job.Title,
		CompanyName:     job.CompanyName,
		Skills:          db.StringArray(req.Skills),
		ExperienceYears: req.ExperienceYears,
		Phone:           phone,
		Address:         address,
	}
	id, err := s.store.CreateApplication(ctx, application)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	// The counter moved, which can close the job; the cached board must not
	// keep serving it.
	s.invalidateListing(ctx)

	created, err := s.store.GetApplication(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load application: %w", err)
	}

	if company, err := s.store.GetCompany(ctx, job.CompanyID); err == nil && company != nil {
		if err := s.notifier.Notify(ctx, company.OwnerID,
			"มีผู้สมัครงานใหม่",
			fmt.Sprintf("%s สมัครงานตำแหน่ง %s", profile.Name, job.Title),
			db.NotifyInfo); err != nil {
			s.logger.Warn("failed to notify employer", zap.Error(err))
		}
	}

	s.logger.Info("application submitted",
		zap.String("application_id", id.String()),
		zap.String("job_id", jobID.String()))
	return created, nil
}

// Mine lists the caller's submissions.
func (s *ApplicationService) Mine(ctx context.Context, applicantID uuid.UUID) ([]db.JobApplication, error) {
	return s.store.ListApplicationsByApplicant(ctx, applicantID)
}

// Received lists applications across every job the caller's companies posted.
func (s *ApplicationService) Received(ctx context.Context, ownerID uuid.UUID) ([]db.JobApplication, error) {
	return s.store.ListApplicationsByOwner(ctx, ownerID)
}

// UpdateStatus records the employer's decision and tells the applicant. Only
// pending applications can be decided, and only by the posting company's
// owner or an admin.
func (s *ApplicationService) UpdateStatus(ctx context.Context, callerID uuid.UUID, callerRole db.Role, applicationID uuid.UUID, req *types.UpdateApplicationStatusRequest) (*db.JobApplication, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	application, err := s.store.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	if application == nil {
		return nil, ErrApplicationNotFound
	}

	if callerRole != db.RoleAdmin {
		owner, err := s.postingOwner(ctx, application.JobID)
		if err != nil {
			return nil, err
		}
		if owner != callerID {
			return nil, ErrForbidden
		}
	}

	if application.Status != db.StatusPending {
		return nil, ErrAlreadyDecided
	}

	status := db.ApplicationStatus(req.Status)
	if err := s.store.UpdateApplicationStatus(ctx, applicationID, status); err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	application.Status = status

	title, message, typ := decisionNotification(application, status)
	if err := s.notifier.Notify(ctx, application.ApplicantID, title, message, typ); err != nil {
		s.logger.Warn("failed to notify applicant", zap.Error(err))
	}

	s.logger.Info("application decided",
		zap.String("application_id", applicationID.String()),
		zap.String("status", string(status)))
	return application, nil
}

func (s *ApplicationService) invalidateListing(ctx context.Context) {
	if err := s.cache.Delete(ctx, listingCacheKey); err != nil {
		s.logger.Warn("listing cache invalidation failed", zap.Error(err))
	}
}

func (s *ApplicationService) postingOwner(ctx context.Context, jobID uuid.UUID) (uuid.UUID, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil {
		return uuid.Nil, ErrJobNotFound
	}
	company, err := s.store.GetCompany(ctx, job.CompanyID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to load company: %w", err)
	}
	if company == nil {
		return uuid.Nil, ErrCompanyNotFound
	}
	return company.OwnerID, nil
}

func decisionNotification(a *db.JobApplication, status db.ApplicationStatus) (title, message string, typ db.NotificationType) {
	if status == db.StatusApproved {
		return "ใบสมัครได้รับการอนุมัติ",
			fmt.Sprintf("ใบสมัครตำแหน่ง %s ที่ %s ได้รับการอนุมัติ", a.JobTitle, a.CompanyName),
			db.NotifySuccess
	}
	return "ใบสมัครไม่ผ่านการพิจารณา",
		fmt.Sprintf("ใบสมัครตำแหน่ง %s ที่ %s ไม่ผ่านการพิจารณา", a.JobTitle, a.CompanyName),
		db.NotifyWarning
}
