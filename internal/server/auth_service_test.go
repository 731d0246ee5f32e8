package server

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nattapong/sarakham-jobs/internal/config"
	"github.com/nattapong/sarakham-jobs/internal/db"
	"github.com/nattapong/sarakham-jobs/internal/types"
)

type fakeAuthStore struct {
	users    map[uuid.UUID]*db.AuthUser
	profiles map[uuid.UUID]*db.Profile

	failProfileInsert bool
}

func newFakeAuthStore() *fakeAuthStore {
	return &fakeAuthStore{
		users:    make(map[uuid.UUID]*db.AuthUser),
		profiles: make(map[uuid.UUID]*db.Profile),
	}
}

func (f *fakeAuthStore) CreateAuthUser(_ context.Context, email, passwordHash string) (uuid.UUID, error) {
	id := uuid.New()
	f.users[id] = &db.AuthUser{
		ID:             id,
		Email:          strings.ToLower(email),
		PasswordHash:   passwordHash,
		EmailConfirmed: true,
	}
	return id, nil
}

func (f *fakeAuthStore) GetAuthUserByEmail(_ context.Context, email string) (*db.AuthUser, error) {
	for _, u := range f.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeAuthStore) GetAuthUser(_ context.Context, id uuid.UUID) (*db.AuthUser, error) {
	return f.users[id], nil
}

func (f *fakeAuthStore) AuthEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := f.GetAuthUserByEmail(ctx, email)
	return u != nil, err
}

func (f *fakeAuthStore) UpdateAuthPassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeAuthStore) DeleteAuthUser(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeAuthStore) CreateProfile(_ context.Context, p *db.Profile) error {
	if f.failProfileInsert {
		return errors.New("insert failed")
	}
	cp := *p
	f.profiles[p.ID] = &cp
	return nil
}

func (f *fakeAuthStore) GetProfile(_ context.Context, id uuid.UUID) (*db.Profile, error) {
	return f.profiles[id], nil
}

func (f *fakeAuthStore) UpdateProfile(_ context.Context, p *db.Profile) error {
	if _, ok := f.profiles[p.ID]; !ok {
		return errors.New("profile not found")
	}
	cp := *p
	f.profiles[p.ID] = &cp
	return nil
}

func testAuthService(t *testing.T, store AuthStore) *AuthService {
	t.Helper()
	passwords := &config.PasswordConfig{BcryptCost: 10}
	tokens := NewTokenManager(&config.JWTConfig{
		Secret:          "test-secret-test-secret-test-1234",
		Issuer:          "sarakham-jobs",
		ExpirationHours: 1,
	})
	return NewAuthService(store, passwords, tokens, zap.NewNop())
}

func registerReq() *types.RegisterRequest {
	return &types.RegisterRequest{
		Name:     "สมชาย ใจดี",
		Email:    "somchai@example.com",
		Password: "secret-password",
		Role:     "applicant",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeAuthStore()
	svc := testAuthService(t, store)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)
	require.NotNil(t, resp.Profile)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, db.RoleApplicant, resp.Profile.Role)

	login, err := svc.Login(ctx, &types.LoginRequest{
		Email:    "somchai@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.Profile.ID, login.Profile.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeAuthStore()
	svc := testAuthService(t, store)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerReq())
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegisterInvalidRequest(t *testing.T) {
	svc := testAuthService(t, newFakeAuthStore())

	req := registerReq()
	req.Role = "admin" // not self-assignable
	_, err := svc.Register(context.Background(), req)

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestRegisterRollsBackOnProfileFailure(t *testing.T) {
	store := newFakeAuthStore()
	store.failProfileInsert = true
	svc := testAuthService(t, store)

	_, err := svc.Register(context.Background(), registerReq())
	require.Error(t, err)

	// The credential record must not survive the failed profile insert.
	assert.Empty(t, store.users)
	assert.Empty(t, store.profiles)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeAuthStore()
	svc := testAuthService(t, store)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	_, err = svc.Login(ctx, &types.LoginRequest{
		Email:    "somchai@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := testAuthService(t, newFakeAuthStore())

	_, err := svc.Login(context.Background(), &types.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnconfirmedEmail(t *testing.T) {
	store := newFakeAuthStore()
	svc := testAuthService(t, store)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)
	store.users[resp.Profile.ID].EmailConfirmed = false

	_, err = svc.Login(ctx, &types.LoginRequest{
		Email:    "somchai@example.com",
		Password: "secret-password",
	})
	assert.ErrorIs(t, err, ErrEmailNotConfirmed)
}

func TestLoginRecoversMissingProfile(t *testing.T) {
	store := newFakeAuthStore()
	svc := testAuthService(t, store)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)
	delete(store.profiles, resp.Profile.ID)

	login, err := svc.Login(ctx, &types.LoginRequest{
		Email:    "somchai@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, db.RoleApplicant, login.Profile.Role)
	assert.Equal(t, "somchai@example.com", login.Profile.Email)
}

func TestUpdateProfilePartial(t *testing.T) {
	store := newFakeAuthStore()
	svc := testAuthService(t, store)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	phone := "043-123-456"
	updated, err := svc.UpdateProfile(ctx, resp.Profile.ID, &types.UpdateProfileRequest{Phone: &phone})
	require.NoError(t, err)

	assert.Equal(t, "043-123-456", updated.Phone)
	assert.Equal(t, "สมชาย ใจดี", updated.Name, "unset fields stay untouched")
}

func TestUpdatePassword(t *testing.T) {
	store := newFakeAuthStore()
	svc := testAuthService(t, store)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)
	userID := resp.Profile.ID

	err = svc.UpdatePassword(ctx, userID, &types.UpdatePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "new-password-1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.UpdatePassword(ctx, userID, &types.UpdatePasswordRequest{
		CurrentPassword: "secret-password",
		NewPassword:     "new-password-1",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "somchai@example.com", Password: "new-password-1"})
	assert.NoError(t, err)
}

func TestMe(t *testing.T) {
	store := newFakeAuthStore()
	svc := testAuthService(t, store)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	profile, err := svc.Me(ctx, resp.Profile.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.Profile.ID, profile.ID)

	_, err = svc.Me(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
