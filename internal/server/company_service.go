package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nattapong/sarakham-jobs/internal/db"
	"github.com/nattapong/sarakham-jobs/internal/types"
)

// Notifier delivers an in-app notification to a user.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message string, typ db.NotificationType) error
}

// CompanyStore is the slice of the database the company service needs.
type CompanyStore interface {
	CreateCompany(ctx context.Context, c *db.Company) (uuid.UUID, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*db.Company, error)
	ListCompaniesByOwner(ctx context.Context, ownerID uuid.UUID) ([]db.Company, error)
	ListApprovedCompanies(ctx context.Context) ([]db.Company, error)
	ListCompanies(ctx context.Context) ([]db.Company, error)
	UpdateCompany(ctx context.Context, c *db.Company) error
	ApproveCompany(ctx context.Context, id uuid.UUID) error
}

// CompanyService manages employer companies and their approval workflow.
type CompanyService struct {
	store    CompanyStore
	notifier Notifier
	logger   *zap.Logger
}

// NewCompanyService creates a company service.
func NewCompanyService(store CompanyStore, notifier Notifier, logger *zap.Logger) *CompanyService {
	return &CompanyService{store: store, notifier: notifier, logger: logger}
}

// Create registers a new company for the owner. It starts unapproved and
// stays invisible to job seekers until an admin signs off.
func (s *CompanyService) Create(ctx context.Context, ownerID uuid.UUID, req *types.CreateCompanyRequest) (*db.Company, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	company := &db.Company{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Logo:        req.Logo,
		OwnerID:     ownerID,
	}
	id, err := s.store.CreateCompany(ctx, company)
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	created, err := s.store.GetCompany(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	s.logger.Info("company created",
		zap.String("company_id", id.String()),
		zap.String("owner_id", ownerID.String()))
	return created, nil
}

// Update applies the non-nil fields of req. Only the owner or an admin may
// update, and approval state is not touchable here.
func (s *CompanyService) Update(ctx context.Context, callerID uuid.UUID, callerRole db.Role, companyID uuid.UUID, req *types.UpdateCompanyRequest) (*db.Company, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	company, err := s.store.GetCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}
	if company.OwnerID != callerID && callerRole != db.RoleAdmin {
		return nil, ErrForbidden
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.Logo != nil {
		company.Logo = *req.Logo
	}

	if err := s.store.UpdateCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return company, nil
}

// Mine lists the caller's companies, approved or not.
func (s *CompanyService) Mine(ctx context.Context, ownerID uuid.UUID) ([]db.Company, error) {
	return s.store.ListCompaniesByOwner(ctx, ownerID)
}

// Approved lists publicly visible companies.
func (s *CompanyService) Approved(ctx context.Context) ([]db.Company, error) {
	return s.store.ListApprovedCompanies(ctx)
}

// All lists every company for the admin review queue.
func (s *CompanyService) All(ctx context.Context) ([]db.Company, error) {
	return s.store.ListCompanies(ctx)
}

// Approve marks a company approved and tells the owner. Approval is one way.
func (s *CompanyService) Approve(ctx context.Context, companyID uuid.UUID) error {
	company, err := s.store.GetCompany(ctx, companyID)
	if err != nil {
		return fmt.Errorf("failed to load company: %w", err)
	}
	if company == nil {
		return ErrCompanyNotFound
	}

	if err := s.store.ApproveCompany(ctx, companyID); err != nil {
		return fmt.Errorf("failed to approve company: %w", err)
	}

	if err := s.notifier.Notify(ctx, company.OwnerID,
		"บริษัทได้รับการอนุมัติ",
		fmt.Sprintf("บริษัท %s ได้รับการอนุมัติแล้ว คุณสามารถประกาศงานได้ทันที", company.Name),
		db.NotifySuccess); err != nil {
		s.logger.Warn("failed to notify company owner", zap.Error(err))
	}

	s.logger.Info("company approved", zap.String("company_id", companyID.String()))
	return nil
}
