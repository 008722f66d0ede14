package user

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/meeting-room-backend/internal/auth"
	"github.com/nekogravitycat/meeting-room-backend/internal/company"
)

type fakeRepo struct {
	byID    map[string]*User
	byEmail map[string]*User
	nextID  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*User), byEmail: make(map[string]*User)}
}

func (f *fakeRepo) Create(ctx context.Context, u *User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	u.CreatedAt = time.Now()
	stored := *u
	f.byID[u.ID] = &stored
	f.byEmail[u.Email] = &stored
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	var out []*User
	for _, u := range f.byID {
		if u.CompanyID != filter.CompanyID {
			continue
		}
		copied := *u
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(ctx context.Context, u *User) error {
	old, ok := f.byID[u.ID]
	if !ok {
		return ErrNotFound
	}
	stored := *u
	f.byID[u.ID] = &stored
	delete(f.byEmail, old.Email)
	f.byEmail[u.Email] = &stored
	return nil
}

func (f *fakeRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	u, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &at
	return nil
}

type stubCompanyService struct {
	companies map[string]*company.Company
}

func (s *stubCompanyService) GetByID(ctx context.Context, id string) (*company.Company, error) {
	c, ok := s.companies[id]
	if !ok {
		return nil, company.ErrNotFound
	}
	return c, nil
}

func (s *stubCompanyService) Create(ctx context.Context, req company.CreateRequest) (*company.Company, error) {
	panic("not used")
}
func (s *stubCompanyService) List(ctx context.Context, filter company.Filter) ([]*company.Company, int, error) {
	panic("not used")
}
func (s *stubCompanyService) Update(ctx context.Context, id string, req company.UpdateRequest) (*company.Company, error) {
	panic("not used")
}
func (s *stubCompanyService) Deactivate(ctx context.Context, id string) error {
	panic("not used")
}

// plainHasher avoids bcrypt cost in tests.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (plainHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	companies := &stubCompanyService{companies: map[string]*company.Company{
		"company-1": {ID: "company-1", Name: "Acme", AdminUserID: "user-42", IsActive: true},
	}}
	return NewService(repo, companies, plainHasher{}), repo
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterRequest{
		Email:     "  Alice@Example.com ",
		Password:  "long-enough",
		CompanyID: "company-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, auth.RoleUser, u.Role)
	assert.True(t, u.IsActive)

	// Email uniqueness.
	_, err = svc.Register(ctx, RegisterRequest{
		Email:     "alice@example.com",
		Password:  "long-enough",
		CompanyID: "company-1",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestRegisterRequiresCompany(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// No company: rejected outright, never attached to a default.
	_, err := svc.Register(ctx, RegisterRequest{Email: "bob@example.com", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrCompanyRequired)

	// Unknown company: rejected.
	_, err = svc.Register(ctx, RegisterRequest{
		Email:     "bob@example.com",
		Password:  "long-enough",
		CompanyID: "ghost",
	})
	assert.ErrorIs(t, err, company.ErrNotFound)
}

func TestLogin(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterRequest{
		Email:     "alice@example.com",
		Password:  "long-enough",
		CompanyID: "company-1",
	})
	require.NoError(t, err)

	got, err := svc.Login(ctx, "ALICE@example.com", "long-enough")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotNil(t, got.LastLoginAt)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "long-enough")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	repo.byID[u.ID].IsActive = false
	repo.byEmail[u.Email].IsActive = false
	_, err = svc.Login(ctx, "alice@example.com", "long-enough")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestUpdateRole(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterRequest{
		Email:     "alice@example.com",
		Password:  "long-enough",
		CompanyID: "company-1",
	})
	require.NoError(t, err)

	role := auth.RoleAdmin
	updated, err := svc.Update(ctx, u.ID, UpdateRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, updated.Role)

	bogus := "superuser"
	_, err = svc.Update(ctx, u.ID, UpdateRequest{Role: &bogus})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestIsCompanyAdmin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	byRole := &User{ID: "u1", CompanyID: "company-1", Role: auth.RoleAdmin}
	ok, err := svc.IsCompanyAdmin(ctx, byRole)
	require.NoError(t, err)
	assert.True(t, ok)

	designated := &User{ID: "user-42", CompanyID: "company-1", Role: auth.RoleUser}
	ok, err = svc.IsCompanyAdmin(ctx, designated)
	require.NoError(t, err)
	assert.True(t, ok)

	regular := &User{ID: "u3", CompanyID: "company-1", Role: auth.RoleUser}
	ok, err = svc.IsCompanyAdmin(ctx, regular)
	require.NoError(t, err)
	assert.False(t, ok)
}
