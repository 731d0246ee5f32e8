package server

import (
	"errors"
	"net/http"
)

// Sentinel errors the services return. Handlers map them to HTTP statuses
// through HTTPStatus.
var (
	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailNotConfirmed    = errors.New("email not confirmed")
	ErrUserNotFound         = errors.New("user not found")
	ErrCompanyNotFound      = errors.New("company not found")
	ErrJobNotFound          = errors.New("job not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrAdNotFound           = errors.New("advertisement not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNoCompany            = errors.New("no company registered")
	ErrCompanyNotApproved   = errors.New("company is awaiting approval")
	ErrJobClosed            = errors.New("job is not accepting applications")
	ErrAlreadyDecided       = errors.New("application has already been decided")
	ErrForbidden            = errors.New("forbidden")
)

// ValidationError wraps a request validation failure so handlers can return
// the underlying detail with a 400.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps a service error to its response status.
func HTTPStatus(err error) int {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, ErrEmailAlreadyExists),
		errors.Is(err, ErrJobClosed),
		errors.Is(err, ErrAlreadyDecided):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrEmailNotConfirmed),
		errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrCompanyNotFound),
		errors.Is(err, ErrJobNotFound),
		errors.Is(err, ErrApplicationNotFound),
		errors.Is(err, ErrAdNotFound),
		errors.Is(err, ErrNotificationNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNoCompany),
		errors.Is(err, ErrCompanyNotApproved):
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}
