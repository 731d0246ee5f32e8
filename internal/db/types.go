package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Role is the access level of a profile.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleEmployer  Role = "employer"
	RoleApplicant Role = "applicant"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployer, RoleApplicant:
		return true
	}
	return false
}

// AuthUser is the authentication identity. It is a separate row from the
// profile: registration creates the auth row first and the profile second,
// mirroring the split between the auth service and the profiles table.
type AuthUser struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-" db:"password_hash"` // never serialized
	EmailConfirmed bool      `json:"email_confirmed"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Profile is the public identity record shown throughout the application.
type Profile struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	ProfileImage string    `json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Company is an employer's business listing. IsApproved flips false→true only
// through admin action; jobs may only be created against approved companies.
type Company struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Logo        string    `json:"logo,omitempty"`
	OwnerID     uuid.UUID `json:"owner_id"`
	IsApproved  bool      `json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Job is a part-time job posting.
//
// CompanyName is a deliberate denormalization: it reflects the company name at
// job-creation time, and renaming a company does not retroactively update
// existing jobs.
type Job struct {
	ID                  uuid.UUID  `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Requirements        string     `json:"requirements"`
	Salary              string     `json:"salary"` // display string, e.g. "350 บาท/วัน"
	SalaryPerHour       *float64   `json:"salary_per_hour,omitempty"`
	WorkingHours        string     `json:"working_hours"`
	Location            string     `json:"location"`
	District            string     `json:"district,omitempty"`
	CompanyID           uuid.UUID  `json:"company_id"`
	CompanyName         string     `json:"company_name"`
	IsActive            bool       `json:"is_active"`
	IsApproved          bool       `json:"is_approved"`
	Image               string     `json:"image,omitempty"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
	MaxApplicants       *int       `json:"max_applicants,omitempty"`
	CurrentApplicants   int        `json:"current_applicants"`
	ContactPerson       string     `json:"contact_person,omitempty"`
	OrganizationName    string     `json:"organization_name,omitempty"`
	ProjectDetails      string     `json:"project_details,omitempty"`
	WorkDuration        string     `json:"work_duration,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// IsOpen reports whether the job is visible and accepting applications at the
// given instant: active, approved, not past its deadline, and not at capacity.
func (j *Job) IsOpen(now time.Time) bool {
	if !j.IsActive || !j.IsApproved {
		return false
	}
	if j.ApplicationDeadline != nil && j.ApplicationDeadline.Before(now) {
		return false
	}
	if j.MaxApplicants != nil && j.CurrentApplicants >= *j.MaxApplicants {
		return false
	}
	return true
}

// ApplicationStatus is the review state of a job application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// JobApplication is a submission by an applicant for a job. Applicant and job
// fields are snapshots taken at submission time. There is intentionally no
// uniqueness constraint on (job_id, applicant_id); repeat submissions create
// new rows.
type JobApplication struct {
	ID              uuid.UUID         `json:"id"`
	JobID           uuid.UUID         `json:"job_id"`
	ApplicantID     uuid.UUID         `json:"applicant_id"`
	ApplicantName   string            `json:"applicant_name"`
	ApplicantEmail  string            `json:"applicant_email"`
	CoverLetter     string            `json:"cover_letter"`
	Resume          string            `json:"resume,omitempty"`
	Status          ApplicationStatus `json:"status"`
	JobTitle        string            `json:"job_title"`
	CompanyName     string            `json:"company_name"`
	Skills          StringArray       `json:"skills,omitempty"`
	ExperienceYears *int              `json:"experience_years,omitempty"`
	Phone           string            `json:"phone,omitempty"`
	Address         string            `json:"address,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// NotificationType classifies a notification for display.
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

// Notification is a per-user message created as a side effect of other
// mutations (approvals, new applications, status changes).
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

// AdPosition is where an advertisement is rendered.
type AdPosition string

const (
	AdBanner  AdPosition = "banner"
	AdSidebar AdPosition = "sidebar"
	AdFooter  AdPosition = "footer"
)

// Valid reports whether p is a known display position.
func (p AdPosition) Valid() bool {
	switch p {
	case AdBanner, AdSidebar, AdFooter:
		return true
	}
	return false
}

// Advertisement is a promotional slot rotated client-side on a fixed timer.
type Advertisement struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url,omitempty"`
	LinkURL     string     `json:"link_url,omitempty"`
	Position    AdPosition `json:"position"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
}

// StringArray handles JSONB string arrays.
type StringArray []string

// Scan implements the Scanner interface for StringArray.
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = []string{}
		return nil
	}
	source, ok := src.([]byte)
	if !ok {
		return errors.New("type assertion .([]byte) failed")
	}
	return json.Unmarshal(source, a)
}

// Value implements the Valuer interface for StringArray.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}
