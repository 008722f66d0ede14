package room

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/meeting-room-backend/internal/audit"
	"github.com/nekogravitycat/meeting-room-backend/internal/company"
)

type fakeRepo struct {
	store     map[string]*Room
	active    map[string]bool
	nextID    int
	takenName string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{store: make(map[string]*Room), active: make(map[string]bool)}
}

func (f *fakeRepo) Create(ctx context.Context, rm *Room) error {
	if rm.Name == f.takenName {
		return ErrNameTaken
	}
	f.nextID++
	rm.ID = fmt.Sprintf("room-%d", f.nextID)
	stored := *rm
	f.store[rm.ID] = &stored
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Room, error) {
	rm, ok := f.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *rm
	return &out, nil
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	var out []*Room
	for _, rm := range f.store {
		if rm.CompanyID != filter.CompanyID {
			continue
		}
		copied := *rm
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(ctx context.Context, rm *Room) error {
	if _, ok := f.store[rm.ID]; !ok {
		return ErrNotFound
	}
	stored := *rm
	f.store[rm.ID] = &stored
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.store[id]; !ok {
		return ErrNotFound
	}
	delete(f.store, id)
	return nil
}

func (f *fakeRepo) HasActiveReservations(ctx context.Context, roomID string) (bool, error) {
	return f.active[roomID], nil
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

type fakeAuditor struct {
	entries []audit.Entry
}

func (f *fakeAuditor) Record(ctx context.Context, e audit.Entry) {
	f.entries = append(f.entries, e)
}

func newTestService() (Service, *fakeRepo, *fakeAuditor) {
	repo := newFakeRepo()
	auditor := &fakeAuditor{}
	companies := &stubCompanyService{companies: map[string]*company.Company{
		"company-1": {ID: "company-1", Name: "Acme", IsActive: true},
	}}
	return NewService(repo, companies, auditor), repo, auditor
}

func TestServiceCreate(t *testing.T) {
	svc, _, auditor := newTestService()
	ctx := context.Background()

	rm, err := svc.Create(ctx, CreateRequest{
		CompanyID: "company-1",
		Name:      "  Aurora  ",
		Capacity:  8,
	}, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "Aurora", rm.Name)
	assert.True(t, rm.IsAvailable)
	require.Len(t, auditor.entries, 1)
	assert.Equal(t, audit.ActionCreate, auditor.entries[0].Action)

	_, err = svc.Create(ctx, CreateRequest{CompanyID: "company-1", Name: "", Capacity: 8}, "admin-1")
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Create(ctx, CreateRequest{CompanyID: "company-1", Name: "Aurora", Capacity: 0}, "admin-1")
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = svc.Create(ctx, CreateRequest{CompanyID: "ghost", Name: "Aurora", Capacity: 8}, "admin-1")
	assert.ErrorIs(t, err, company.ErrNotFound)
}

func TestServiceGetForCompany(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	rm, err := svc.Create(ctx, CreateRequest{CompanyID: "company-1", Name: "Aurora", Capacity: 8}, "admin-1")
	require.NoError(t, err)

	got, err := svc.GetForCompany(ctx, rm.ID, "company-1")
	require.NoError(t, err)
	assert.Equal(t, rm.ID, got.ID)

	// Another tenant sees not-found, not forbidden.
	_, err = svc.GetForCompany(ctx, rm.ID, "company-2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceDeleteGuard(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	rm, err := svc.Create(ctx, CreateRequest{CompanyID: "company-1", Name: "Aurora", Capacity: 8}, "admin-1")
	require.NoError(t, err)

	repo.active[rm.ID] = true
	err = svc.Delete(ctx, rm.ID, "admin-1")
	assert.ErrorIs(t, err, ErrHasActiveReservations)

	repo.active[rm.ID] = false
	require.NoError(t, svc.Delete(ctx, rm.ID, "admin-1"))
	_, err = svc.GetByID(ctx, rm.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceToggleAvailability(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	rm, err := svc.Create(ctx, CreateRequest{CompanyID: "company-1", Name: "Aurora", Capacity: 8}, "admin-1")
	require.NoError(t, err)

	toggled, err := svc.ToggleAvailability(ctx, rm.ID, "admin-1")
	require.NoError(t, err)
	assert.False(t, toggled.IsAvailable)

	toggled, err = svc.ToggleAvailability(ctx, rm.ID, "admin-1")
	require.NoError(t, err)
	assert.True(t, toggled.IsAvailable)
}
