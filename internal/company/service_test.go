package company

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	store  map[string]*Company
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{store: make(map[string]*Company)}
}

func (f *fakeRepo) Create(ctx context.Context, c *Company) error {
	for _, existing := range f.store {
		if existing.Name == c.Name {
			return ErrNameTaken
		}
	}
	f.nextID++
	c.ID = fmt.Sprintf("company-%d", f.nextID)
	stored := *c
	f.store[c.ID] = &stored
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Company, error) {
	c, ok := f.store[id]
	if !ok || !c.IsActive {
		return nil, ErrNotFound
	}
	out := *c
	return &out, nil
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) ([]*Company, int, error) {
	var out []*Company
	for _, c := range f.store {
		if !c.IsActive {
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(ctx context.Context, c *Company) error {
	if _, ok := f.store[c.ID]; !ok {
		return ErrNotFound
	}
	stored := *c
	f.store[c.ID] = &stored
	return nil
}

func (f *fakeRepo) Deactivate(ctx context.Context, id string) error {
	c, ok := f.store[id]
	if !ok {
		return ErrNotFound
	}
	c.IsActive = false
	return nil
}

func TestCreate(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	c, err := svc.Create(ctx, CreateRequest{Name: "  Acme  ", AdminUserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", c.Name)
	assert.True(t, c.IsActive)

	_, err = svc.Create(ctx, CreateRequest{Name: "A", AdminUserID: "user-1"})
	assert.ErrorIs(t, err, ErrNameTooShort)

	_, err = svc.Create(ctx, CreateRequest{Name: "Beta Corp"})
	assert.ErrorIs(t, err, ErrAdminRequired)

	_, err = svc.Create(ctx, CreateRequest{Name: "Acme", AdminUserID: "user-2"})
	assert.ErrorIs(t, err, ErrNameTaken)
}

func TestDeactivateHidesCompany(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	c, err := svc.Create(ctx, CreateRequest{Name: "Acme", AdminUserID: "user-1"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, c.ID))
	_, err = svc.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
