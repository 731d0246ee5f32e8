// Package types defines the request and response payloads of the HTTP API.
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/nattapong/sarakham-jobs/internal/db"
)

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=employer applicant"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Address  string `json:"address" validate:"omitempty,max=500"`
}

// Validate validates the request fields.
func (r *RegisterRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// LoginResponse carries the signed token and the signed-in profile.
type LoginResponse struct {
	Token   string      `json:"token"`
	Profile *db.Profile `json:"profile"`
}

// UpdateProfileRequest is the payload for PUT /auth/me. Nil fields are left
// unchanged.
type UpdateProfileRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address      *string `json:"address,omitempty" validate:"omitempty,max=500"`
	ProfileImage *string `json:"profile_image,omitempty" validate:"omitempty,url"`
}

func (r *UpdateProfileRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// UpdatePasswordRequest is the payload for PUT /auth/password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

func (r *UpdatePasswordRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
