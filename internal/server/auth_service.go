package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nattapong/sarakham-jobs/internal/config"
	"github.com/nattapong/sarakham-jobs/internal/db"
	"github.com/nattapong/sarakham-jobs/internal/types"
)

// AuthStore is the slice of the database the auth service needs.
type AuthStore interface {
	CreateAuthUser(ctx context.Context, email, passwordHash string) (uuid.UUID, error)
	GetAuthUserByEmail(ctx context.Context, email string) (*db.AuthUser, error)
	GetAuthUser(ctx context.Context, id uuid.UUID) (*db.AuthUser, error)
	AuthEmailExists(ctx context.Context, email string) (bool, error)
	UpdateAuthPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	DeleteAuthUser(ctx context.Context, id uuid.UUID) error

	CreateProfile(ctx context.Context, p *db.Profile) error
	GetProfile(ctx context.Context, id uuid.UUID) (*db.Profile, error)
	UpdateProfile(ctx context.Context, p *db.Profile) error
}

// AuthService implements registration, sign-in and profile management.
type AuthService struct {
	store     AuthStore
	passwords *config.PasswordConfig
	tokens    *TokenManager
	logger    *zap.Logger
}

// NewAuthService creates an auth service.
func NewAuthService(store AuthStore, passwords *config.PasswordConfig, tokens *TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{store: store, passwords: passwords, tokens: tokens, logger: logger}
}

// Register creates a credential record and its profile, then signs the new
// user in. If the profile insert fails the credential record is deleted
// again, so no account is ever left half created.
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*types.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	exists, err := s.store.AuthEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.store.CreateAuthUser(ctx, req.Email, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	profile := &db.Profile{
		ID:      userID,
		Name:    req.Name,
		Email:   req.Email,
		Role:    db.Role(req.Role),
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.store.CreateProfile(ctx, profile); err != nil {
		if delErr := s.store.DeleteAuthUser(ctx, userID); delErr != nil {
			s.logger.Error("failed to roll back orphaned auth user",
				zap.String("user_id", userID.String()),
				zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	token, err := s.tokens.GenerateToken(userID, profile.Role)
	if err != nil {
		return nil, err
	}

	created, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", userID.String()),
		zap.String("role", req.Role))

	return &types.LoginResponse{Token: token, Profile: created}, nil
}

// Login verifies credentials and returns a signed token with the profile.
// Lookup misses and bad passwords both come back as ErrInvalidCredentials so
// the response does not reveal which emails are registered.
func (s *AuthService) Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	user, err := s.store.GetAuthUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !s.passwords.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !user.EmailConfirmed {
		return nil, ErrEmailNotConfirmed
	}

	profile, err := s.store.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		// Credentials without a profile can happen after a partial failure
		// in an older release. Recover with a minimal applicant profile.
		profile = &db.Profile{
			ID:    user.ID,
			Name:  user.Email,
			Email: user.Email,
			Role:  db.RoleApplicant,
		}
		if err := s.store.CreateProfile(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to recover profile: %w", err)
		}
		s.logger.Warn("recovered missing profile on login",
			zap.String("user_id", user.ID.String()))
	}

	token, err := s.tokens.GenerateToken(user.ID, profile.Role)
	if err != nil {
		return nil, err
	}

	return &types.LoginResponse{Token: token, Profile: profile}, nil
}

// Me returns the caller's profile.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*db.Profile, error) {
	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}
	return profile, nil
}

// UpdateProfile applies the non-nil fields of req to the caller's profile.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*db.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if req.ProfileImage != nil {
		profile.ProfileImage = *req.ProfileImage
	}

	if err := s.store.UpdateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

// UpdatePassword changes the caller's password after verifying the current
// one.
func (s *AuthService) UpdatePassword(ctx context.Context, userID uuid.UUID, req *types.UpdatePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return &ValidationError{Err: err}
	}

	user, err := s.store.GetAuthUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if !s.passwords.VerifyPassword(req.CurrentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := s.passwords.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.store.UpdateAuthPassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("password changed", zap.String("user_id", userID.String()))
	return nil
}
