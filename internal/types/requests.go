package types

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateCompanyRequest is the payload for POST /companies.
type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,max=5000"`
	Address     string `json:"address" validate:"required,max=500"`
	Phone       string `json:"phone" validate:"required,max=20"`
	Email       string `json:"email" validate:"required,email"`
	Logo        string `json:"logo" validate:"omitempty,url"`
}

func (r *CreateCompanyRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// UpdateCompanyRequest is the payload for PUT /companies/{id}. Approval state
// is not updatable here.
type UpdateCompanyRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Logo        *string `json:"logo,omitempty" validate:"omitempty,url"`
}

func (r *UpdateCompanyRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// CreateJobRequest is the payload for POST /jobs.
type CreateJobRequest struct {
	CompanyID           uuid.UUID  `json:"company_id" validate:"required"`
	Title               string     `json:"title" validate:"required,min=1,max=200"`
	Description         string     `json:"description" validate:"required,max=10000"`
	Requirements        string     `json:"requirements" validate:"omitempty,max=10000"`
	Salary              string     `json:"salary" validate:"required,max=100"`
	SalaryPerHour       *float64   `json:"salary_per_hour,omitempty" validate:"omitempty,gte=0"`
	WorkingHours        string     `json:"working_hours" validate:"required,max=200"`
	Location            string     `json:"location" validate:"required,max=500"`
	District            string     `json:"district" validate:"omitempty,max=100"`
	Image               string     `json:"image" validate:"omitempty,url"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
	MaxApplicants       *int       `json:"max_applicants,omitempty" validate:"omitempty,gt=0"`
	ContactPerson       string     `json:"contact_person" validate:"omitempty,max=200"`
	OrganizationName    string     `json:"organization_name" validate:"omitempty,max=200"`
	ProjectDetails      string     `json:"project_details" validate:"omitempty,max=10000"`
	WorkDuration        string     `json:"work_duration" validate:"omitempty,max=200"`
}

func (r *CreateJobRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// UpdateJobRequest is the payload for PUT /jobs/{id}. Approval state and the
// applicant counter are not updatable here.
type UpdateJobRequest struct {
	Title               *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description         *string    `json:"description,omitempty" validate:"omitempty,max=10000"`
	Requirements        *string    `json:"requirements,omitempty" validate:"omitempty,max=10000"`
	Salary              *string    `json:"salary,omitempty" validate:"omitempty,max=100"`
	SalaryPerHour       *float64   `json:"salary_per_hour,omitempty" validate:"omitempty,gte=0"`
	WorkingHours        *string    `json:"working_hours,omitempty" validate:"omitempty,max=200"`
	Location            *string    `json:"location,omitempty" validate:"omitempty,max=500"`
	District            *string    `json:"district,omitempty" validate:"omitempty,max=100"`
	Image               *string    `json:"image,omitempty" validate:"omitempty,url"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
	MaxApplicants       *int       `json:"max_applicants,omitempty" validate:"omitempty,gt=0"`
	IsActive            *bool      `json:"is_active,omitempty"`
	ContactPerson       *string    `json:"contact_person,omitempty" validate:"omitempty,max=200"`
	OrganizationName    *string    `json:"organization_name,omitempty" validate:"omitempty,max=200"`
	ProjectDetails      *string    `json:"project_details,omitempty" validate:"omitempty,max=10000"`
	WorkDuration        *string    `json:"work_duration,omitempty" validate:"omitempty,max=200"`
}

func (r *UpdateJobRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// ApplyRequest is the payload for POST /jobs/{id}/apply.
type ApplyRequest struct {
	CoverLetter     string   `json:"cover_letter" validate:"required,max=10000"`
	Resume          string   `json:"resume" validate:"omitempty,url"`
	Skills          []string `json:"skills" validate:"omitempty,dive,max=100"`
	ExperienceYears *int     `json:"experience_years,omitempty" validate:"omitempty,gte=0,lte=80"`
	Phone           string   `json:"phone" validate:"omitempty,max=20"`
	Address         string   `json:"address" validate:"omitempty,max=500"`
}

func (r *ApplyRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// UpdateApplicationStatusRequest is the payload for
// PUT /applications/{id}/status.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

func (r *UpdateApplicationStatusRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// UpdateRoleRequest is the payload for PUT /admin/profiles/{id}/role.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin employer applicant"`
}

func (r *UpdateRoleRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// CreateAdvertisementRequest is the payload for POST /admin/advertisements.
type CreateAdvertisementRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	LinkURL     string `json:"link_url" validate:"omitempty,url"`
	Position    string `json:"position" validate:"required,oneof=banner sidebar footer"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

func (r *CreateAdvertisementRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
