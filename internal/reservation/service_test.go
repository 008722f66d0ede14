package reservation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/meeting-room-backend/internal/audit"
	"github.com/nekogravitycat/meeting-room-backend/internal/auth"
	"github.com/nekogravitycat/meeting-room-backend/internal/notification"
	"github.com/nekogravitycat/meeting-room-backend/internal/room"
)

// fakeRepo keeps reservations in memory and runs validate callbacks against
// the same slice a database transaction would read.
type fakeRepo struct {
	store  map[string]*Reservation
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{store: make(map[string]*Reservation)}
}

func (f *fakeRepo) blockingFor(roomID string, start, end time.Time) []*Reservation {
	var out []*Reservation
	for _, r := range f.store {
		if r.RoomID == roomID && r.Status.IsBlocking() && r.Overlaps(start, end) {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeRepo) CreateValidated(ctx context.Context, res *Reservation, validate func([]*Reservation) error) error {
	if err := validate(f.blockingFor(res.RoomID, res.StartTime, res.EndTime)); err != nil {
		return err
	}
	f.nextID++
	res.ID = fmt.Sprintf("res-%d", f.nextID)
	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt
	stored := *res
	f.store[res.ID] = &stored
	return nil
}

func (f *fakeRepo) UpdateValidated(ctx context.Context, res *Reservation, validate func([]*Reservation) error) error {
	if _, ok := f.store[res.ID]; !ok {
		return ErrNotFound
	}
	if err := validate(f.blockingFor(res.RoomID, res.StartTime, res.EndTime)); err != nil {
		return err
	}
	stored := *res
	f.store[res.ID] = &stored
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Reservation, error) {
	r, ok := f.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *r
	return &out, nil
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	var out []*Reservation
	for _, r := range f.store {
		if r.CompanyID != filter.CompanyID {
			continue
		}
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && string(r.Status) != filter.Status {
			continue
		}
		copied := *r
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	r, ok := f.store[id]
	if !ok {
		return ErrNotFound
	}
	r.Status = status
	return nil
}

func (f *fakeRepo) ListForRoomBetween(ctx context.Context, roomID string, from, to time.Time) ([]*Reservation, error) {
	return f.blockingFor(roomID, from, to), nil
}

func (f *fakeRepo) CountOverlapping(ctx context.Context, roomID string, start, end time.Time, excludeID string) (int, error) {
	n := 0
	for _, r := range f.store {
		if r.ID == excludeID {
			continue
		}
		if r.RoomID == roomID && r.Status.IsBlocking() && r.Overlaps(start, end) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) Stats(ctx context.Context, companyID string, from time.Time) (*Stats, error) {
	stats := &Stats{ByStatus: make(map[Status]int)}
	for _, r := range f.store {
		if r.CompanyID != companyID {
			continue
		}
		stats.ByStatus[r.Status]++
		stats.Total++
	}
	return stats, nil
}

type fakeConfigRepo struct {
	cfg      *Config
	upserted bool
}

func (f *fakeConfigRepo) Get(ctx context.Context, companyID string) (Config, error) {
	if f.cfg == nil {
		return DefaultConfig(companyID), nil
	}
	return *f.cfg, nil
}

func (f *fakeConfigRepo) Upsert(ctx context.Context, cfg *Config) error {
	stored := *cfg
	f.cfg = &stored
	f.upserted = true
	return nil
}

type stubRoomService struct {
	rooms map[string]*room.Room
}

func (s *stubRoomService) GetByID(ctx context.Context, id string) (*room.Room, error) {
	rm, ok := s.rooms[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	return rm, nil
}

func (s *stubRoomService) GetForCompany(ctx context.Context, id, companyID string) (*room.Room, error) {
	rm, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rm.CompanyID != companyID {
		return nil, room.ErrNotFound
	}
	return rm, nil
}

func (s *stubRoomService) Create(ctx context.Context, req room.CreateRequest, actorUserID string) (*room.Room, error) {
	panic("not used")
}
func (s *stubRoomService) List(ctx context.Context, filter room.Filter) ([]*room.Room, int, error) {
	panic("not used")
}
func (s *stubRoomService) Update(ctx context.Context, id string, req room.UpdateRequest, actorUserID string) (*room.Room, error) {
	panic("not used")
}
func (s *stubRoomService) ToggleAvailability(ctx context.Context, id string, actorUserID string) (*room.Room, error) {
	panic("not used")
}
func (s *stubRoomService) Delete(ctx context.Context, id string, actorUserID string) error {
	panic("not used")
}

type fakeNotifier struct {
	sent []notification.Notification
}

func (f *fakeNotifier) Notify(ctx context.Context, n notification.Notification) {
	f.sent = append(f.sent, n)
}

type fakeAuditor struct {
	entries []audit.Entry
}

func (f *fakeAuditor) Record(ctx context.Context, e audit.Entry) {
	f.entries = append(f.entries, e)
}

type serviceFixture struct {
	svc      *service
	repo     *fakeRepo
	cfgRepo  *fakeConfigRepo
	notifier *fakeNotifier
	auditor  *fakeAuditor
	now      time.Time
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()

	rooms := &stubRoomService{rooms: map[string]*room.Room{
		"room-1": {ID: "room-1", CompanyID: "company-1", Name: "Aurora", Capacity: 8, IsAvailable: true},
		"room-2": {ID: "room-2", CompanyID: "company-1", Name: "Borealis", Capacity: 4, IsAvailable: false},
		"room-9": {ID: "room-9", CompanyID: "company-2", Name: "Vega", Capacity: 10, IsAvailable: true},
	}}

	f := &serviceFixture{
		repo:     newFakeRepo(),
		cfgRepo:  &fakeConfigRepo{},
		notifier: &fakeNotifier{},
		auditor:  &fakeAuditor{},
		now:      time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	}
	svc := NewService(f.repo, f.cfgRepo, rooms, f.notifier, f.auditor).(*service)
	svc.now = func() time.Time { return f.now }
	f.svc = svc
	return f
}

var (
	member  = auth.Actor{UserID: "user-1", CompanyID: "company-1", Role: auth.RoleUser}
	other   = auth.Actor{UserID: "user-2", CompanyID: "company-1", Role: auth.RoleUser}
	manager = auth.Actor{UserID: "admin-1", CompanyID: "company-1", Role: auth.RoleAdmin}
	outside = auth.Actor{UserID: "user-9", CompanyID: "company-2", Role: auth.RoleAdmin}
)

func (f *serviceFixture) createReq(startHour, endHour int) CreateRequest {
	return CreateRequest{
		RoomID:    "room-1",
		Title:     "Sprint planning",
		StartTime: f.now.Truncate(24 * time.Hour).Add(time.Duration(startHour) * time.Hour),
		EndTime:   f.now.Truncate(24 * time.Hour).Add(time.Duration(endHour) * time.Hour),
	}
}

func TestServiceCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, member, f.createReq(10, 11))
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, StatusConfirmed, res.Status)
	assert.Equal(t, "company-1", res.CompanyID)
	assert.Equal(t, "user-1", res.UserID)
	assert.Equal(t, "Aurora", res.RoomName)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, notification.TypeReservationCreated, f.notifier.sent[0].Type)
	require.Len(t, f.auditor.entries, 1)
	assert.Equal(t, audit.ActionCreate, f.auditor.entries[0].Action)
}

func TestServiceCreatePendingWhenApprovalRequired(t *testing.T) {
	f := newFixture(t)
	cfg := DefaultConfig("company-1")
	cfg.RequireApproval = true
	cfg.AutoApproval = false
	f.cfgRepo.cfg = &cfg

	res, err := f.svc.Create(context.Background(), member, f.createReq(10, 11))
	require.NoError(t, err)
	assert.Equal(t, StatusPending, res.Status)
}

func TestServiceCreateConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, member, f.createReq(10, 11))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, other, f.createReq(10, 11))
	require.Error(t, err)

	verrs, ok := err.(*ValidationErrors)
	require.True(t, ok)
	assert.True(t, verrs.HasConflict())

	// Nothing new was written.
	assert.Len(t, f.repo.store, 1)
}

func TestServiceCreateAdjacentWindows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, member, f.createReq(10, 11))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, other, f.createReq(11, 12))
	assert.NoError(t, err)
}

func TestServiceCreateRoomChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.createReq(10, 11)
	req.RoomID = "room-9" // other tenant's room
	_, err := f.svc.Create(ctx, member, req)
	assert.ErrorIs(t, err, ErrRoomNotFound)

	req = f.createReq(10, 11)
	req.RoomID = "room-2" // disabled
	_, err = f.svc.Create(ctx, member, req)
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	req = f.createReq(10, 11)
	req.Title = "   "
	_, err = f.svc.Create(ctx, member, req)
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestServiceCreateCapacity(t *testing.T) {
	f := newFixture(t)

	req := f.createReq(10, 11)
	req.ParticipantCount = intPtr(9) // Aurora holds 8
	_, err := f.svc.Create(context.Background(), member, req)

	verrs, ok := err.(*ValidationErrors)
	require.True(t, ok)
	require.Len(t, verrs.Errors, 1)
	assert.ErrorIs(t, verrs.Errors[0], ErrCapacityExceeded)
}

func TestServiceGetByIDTenantBoundary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, member, f.createReq(10, 11))
	require.NoError(t, err)

	_, err = f.svc.GetByID(ctx, outside, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := f.svc.GetByID(ctx, other, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestServiceListScoping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, member, f.createReq(10, 11))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, other, f.createReq(12, 13))
	require.NoError(t, err)

	// Members only see their own reservations.
	own, total, err := f.svc.List(ctx, member, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, own, 1)
	assert.Equal(t, "user-1", own[0].UserID)

	// Admins see the whole company.
	all, total, err := f.svc.List(ctx, manager, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, all, 2)
}

func TestServiceUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, member, f.createReq(10, 11))
	require.NoError(t, err)

	newEnd := created.EndTime.Add(time.Hour)
	updated, err := f.svc.Update(ctx, member, created.ID, UpdateRequest{EndTime: &newEnd})
	require.NoError(t, err)
	assert.Equal(t, newEnd, updated.EndTime)

	// Someone else's reservation cannot be edited.
	_, err = f.svc.Update(ctx, other, created.ID, UpdateRequest{EndTime: &newEnd})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestServiceUpdateConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, member, f.createReq(10, 11))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, other, f.createReq(11, 12))
	require.NoError(t, err)

	// Extending into the neighbour conflicts.
	newEnd := first.EndTime.Add(30 * time.Minute)
	_, err = f.svc.Update(ctx, member, first.ID, UpdateRequest{EndTime: &newEnd})
	verrs, ok := err.(*ValidationErrors)
	require.True(t, ok)
	assert.True(t, verrs.HasConflict())

	// Keeping its own window does not conflict with itself.
	title := "Retro"
	updated, err := f.svc.Update(ctx, member, first.ID, UpdateRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Retro", updated.Title)
}

func TestServiceTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cfg := DefaultConfig("company-1")
	cfg.RequireApproval = true
	cfg.AutoApproval = false
	f.cfgRepo.cfg = &cfg

	created, err := f.svc.Create(ctx, member, f.createReq(10, 11))
	require.NoError(t, err)
	require.Equal(t, StatusPending, created.Status)

	// Owner cannot approve their own reservation.
	_, err = f.svc.TransitionStatus(ctx, member, created.ID, StatusConfirmed)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// Admin approves; owner gets notified.
	f.notifier.sent = nil
	res, err := f.svc.TransitionStatus(ctx, manager, created.ID, StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, res.Status)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, notification.TypeReservationApproved, f.notifier.sent[0].Type)

	// Lifecycle forbids jumping straight to completed.
	_, err = f.svc.TransitionStatus(ctx, manager, created.ID, StatusCompleted)
	var terr *TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, StatusConfirmed, terr.From)
	assert.Equal(t, StatusCompleted, terr.To)

	// confirmed -> in_use -> completed, then the record is frozen.
	_, err = f.svc.TransitionStatus(ctx, manager, created.ID, StatusInUse)
	require.NoError(t, err)
	_, err = f.svc.TransitionStatus(ctx, manager, created.ID, StatusCompleted)
	require.NoError(t, err)
	_, err = f.svc.TransitionStatus(ctx, manager, created.ID, StatusConfirmed)
	require.ErrorAs(t, err, &terr)
}

func TestServiceOwnerCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, member, f.createReq(10, 11))
	require.NoError(t, err)

	// A non-owner member cannot cancel.
	_, err = f.svc.Cancel(ctx, other, created.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	res, err := f.svc.Cancel(ctx, member, created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, res.Status)

	// The freed window can be booked again.
	_, err = f.svc.Create(ctx, other, f.createReq(10, 11))
	assert.NoError(t, err)
}

func TestServiceOwnerCannotCancelAfterStart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, member, f.createReq(10, 11))
	require.NoError(t, err)

	f.now = created.StartTime.Add(10 * time.Minute)
	_, err = f.svc.Cancel(ctx, member, created.ID)
	assert.ErrorIs(t, err, ErrNotCancellable)
}

func TestServiceAvailableSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, member, f.createReq(12, 13))
	require.NoError(t, err)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	slots, err := f.svc.AvailableSlots(ctx, member, "room-1", day)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, day.Add(9*time.Hour), slots[0].Start)
	assert.Equal(t, day.Add(12*time.Hour), slots[0].End)
	assert.Equal(t, day.Add(13*time.Hour), slots[1].Start)
	assert.Equal(t, day.Add(18*time.Hour), slots[1].End)

	_, err = f.svc.AvailableSlots(ctx, member, "room-9", day)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestServiceCheckConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, member, f.createReq(10, 11))
	require.NoError(t, err)

	count, err := f.svc.CheckConflict(ctx, member, "room-1", created.StartTime, created.EndTime, "")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = f.svc.CheckConflict(ctx, member, "room-1", created.StartTime, created.EndTime, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = f.svc.CheckConflict(ctx, member, "room-1", created.EndTime, created.StartTime, "")
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestServiceStatsAdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Stats(ctx, member, f.now.AddDate(0, 0, -30))
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = f.svc.Create(ctx, member, f.createReq(10, 11))
	require.NoError(t, err)

	stats, err := f.svc.Stats(ctx, manager, f.now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[StatusConfirmed])
}

func TestServiceConfig(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Falls back to defaults when nothing is stored.
	cfg, err := f.svc.GetConfig(ctx, member)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.MaxAdvanceDays)
	assert.Equal(t, 15*time.Minute, cfg.MinDuration)
	assert.Equal(t, 8*time.Hour, cfg.MaxDuration)

	_, err = f.svc.UpdateConfig(ctx, member, ConfigUpdateRequest{})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	days := 14
	updated, err := f.svc.UpdateConfig(ctx, manager, ConfigUpdateRequest{MaxAdvanceDays: &days})
	require.NoError(t, err)
	assert.Equal(t, 14, updated.MaxAdvanceDays)
	assert.True(t, f.cfgRepo.upserted)

	// min above max is rejected.
	minMinutes := 120
	maxMinutes := 60
	_, err = f.svc.UpdateConfig(ctx, manager, ConfigUpdateRequest{
		MinDurationMinutes: &minMinutes,
		MaxDurationMinutes: &maxMinutes,
	})
	assert.ErrorIs(t, err, ErrDurationOutOfBounds)
}
