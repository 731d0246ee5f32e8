package server

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nattapong/sarakham-jobs/internal/db"
	"github.com/nattapong/sarakham-jobs/internal/types"
)

type fakeCompanyStore struct {
	companies map[uuid.UUID]*db.Company
}

func newFakeCompanyStore() *fakeCompanyStore {
	return &fakeCompanyStore{companies: make(map[uuid.UUID]*db.Company)}
}

func (f *fakeCompanyStore) CreateCompany(_ context.Context, c *db.Company) (uuid.UUID, error) {
	cp := *c
	cp.ID = uuid.New()
	cp.IsApproved = false
	f.companies[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeCompanyStore) GetCompany(_ context.Context, id uuid.UUID) (*db.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCompanyStore) ListCompaniesByOwner(_ context.Context, ownerID uuid.UUID) ([]db.Company, error) {
	var out []db.Company
	for _, c := range f.companies {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCompanyStore) ListApprovedCompanies(_ context.Context) ([]db.Company, error) {
	var out []db.Company
	for _, c := range f.companies {
		if c.IsApproved {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCompanyStore) ListCompanies(_ context.Context) ([]db.Company, error) {
	var out []db.Company
	for _, c := range f.companies {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCompanyStore) UpdateCompany(_ context.Context, c *db.Company) error {
	existing, ok := f.companies[c.ID]
	if !ok {
		return ErrCompanyNotFound
	}
	cp := *c
	// Approval state is owned by ApproveCompany alone.
	cp.IsApproved = existing.IsApproved
	f.companies[c.ID] = &cp
	return nil
}

func (f *fakeCompanyStore) ApproveCompany(_ context.Context, id uuid.UUID) error {
	f.companies[id].IsApproved = true
	return nil
}

func createCompanyReq() *types.CreateCompanyRequest {
	return &types.CreateCompanyRequest{
		Name:        "ร้านกาแฟดอยคำ",
		Description: "ร้านกาแฟใกล้มหาวิทยาลัย",
		Address:     "อำเภอเมืองมหาสารคาม",
		Phone:       "043-111-222",
		Email:       "contact@doikham.example.com",
	}
}

func TestCompanyCreateStartsUnapproved(t *testing.T) {
	svc := NewCompanyService(newFakeCompanyStore(), &fakeNotifier{}, zap.NewNop())

	company, err := svc.Create(context.Background(), uuid.New(), createCompanyReq())
	require.NoError(t, err)
	assert.False(t, company.IsApproved)
}

func TestCompanyApproveNotifiesOwner(t *testing.T) {
	store := newFakeCompanyStore()
	notifier := &fakeNotifier{}
	svc := NewCompanyService(store, notifier, zap.NewNop())
	ctx := context.Background()

	owner := uuid.New()
	company, err := svc.Create(ctx, owner, createCompanyReq())
	require.NoError(t, err)

	require.NoError(t, svc.Approve(ctx, company.ID))

	approved, err := svc.Approved(ctx)
	require.NoError(t, err)
	assert.Len(t, approved, 1)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, owner, notifier.sent[0].UserID)
	assert.Equal(t, db.NotifySuccess, notifier.sent[0].Type)
}

func TestCompanyApproveUnknown(t *testing.T) {
	svc := NewCompanyService(newFakeCompanyStore(), &fakeNotifier{}, zap.NewNop())
	err := svc.Approve(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestCompanyUpdateOwnership(t *testing.T) {
	store := newFakeCompanyStore()
	svc := NewCompanyService(store, &fakeNotifier{}, zap.NewNop())
	ctx := context.Background()

	owner := uuid.New()
	company, err := svc.Create(ctx, owner, createCompanyReq())
	require.NoError(t, err)

	name := "ชื่อใหม่"
	_, err = svc.Update(ctx, uuid.New(), db.RoleEmployer, company.ID, &types.UpdateCompanyRequest{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(ctx, owner, db.RoleEmployer, company.ID, &types.UpdateCompanyRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "ชื่อใหม่", updated.Name)
	assert.Equal(t, company.Description, updated.Description)
}
