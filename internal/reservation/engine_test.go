package reservation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	cfg := DefaultConfig("company-1")
	return cfg
}

func intPtr(v int) *int { return &v }

func TestValidate(t *testing.T) {
	// Base date for testing: 2026-03-02 (a Monday)
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	at := func(hour, min int) time.Time {
		return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
	}

	tests := []struct {
		name     string
		draft    Draft
		capacity int
		cfg      Config
		existing []*Reservation
		want     []error
	}{
		{
			name:     "valid draft passes every check",
			draft:    Draft{StartTime: at(10, 0), EndTime: at(11, 0)},
			capacity: 10,
			cfg:      testConfig(),
			want:     nil,
		},
		{
			name:     "end before start fails and short-circuits",
			draft:    Draft{StartTime: at(11, 0), EndTime: at(10, 0), ParticipantCount: intPtr(100)},
			capacity: 10,
			cfg:      testConfig(),
			want:     []error{ErrInvalidTimeRange},
		},
		{
			name:     "zero-length window fails the time range check",
			draft:    Draft{StartTime: at(10, 0), EndTime: at(10, 0)},
			capacity: 10,
			cfg:      testConfig(),
			want:     []error{ErrInvalidTimeRange},
		},
		{
			name:     "start in the past",
			draft:    Draft{StartTime: at(7, 0), EndTime: at(7, 30)},
			capacity: 10,
			cfg:      testConfig(),
			want:     []error{ErrStartTimePast},
		},
		{
			name:     "too short",
			draft:    Draft{StartTime: at(10, 0), EndTime: at(10, 10)},
			capacity: 10,
			cfg:      testConfig(),
			want:     []error{ErrDurationOutOfBounds},
		},
		{
			name:     "exactly the minimum duration passes",
			draft:    Draft{StartTime: at(10, 0), EndTime: at(10, 15)},
			capacity: 10,
			cfg:      testConfig(),
			want:     nil,
		},
		{
			name: "too long",
			draft: Draft{
				StartTime: at(9, 0),
				EndTime:   time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC),
			},
			capacity: 10,
			cfg:      testConfig(),
			want:     []error{ErrDurationOutOfBounds},
		},
		{
			name: "beyond the advance window",
			draft: Draft{
				StartTime: now.AddDate(0, 0, 31),
				EndTime:   now.AddDate(0, 0, 31).Add(time.Hour),
			},
			capacity: 10,
			cfg:      testConfig(),
			want:     []error{ErrAdvanceTooFar},
		},
		{
			name: "weekend rejected when policy forbids it",
			draft: Draft{
				StartTime: time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC), // Saturday
				EndTime:   time.Date(2026, 3, 7, 11, 0, 0, 0, time.UTC),
			},
			capacity: 10,
			cfg: func() Config {
				cfg := testConfig()
				cfg.AllowWeekendBooking = false
				return cfg
			}(),
			want: []error{ErrWeekendNotAllowed},
		},
		{
			name: "weekend allowed by default",
			draft: Draft{
				StartTime: time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2026, 3, 7, 11, 0, 0, 0, time.UTC),
			},
			capacity: 10,
			cfg:      testConfig(),
			want:     nil,
		},
		{
			name:     "participants exceed capacity",
			draft:    Draft{StartTime: at(10, 0), EndTime: at(11, 0), ParticipantCount: intPtr(11)},
			capacity: 10,
			cfg:      testConfig(),
			want:     []error{ErrCapacityExceeded},
		},
		{
			name:     "participants equal to capacity pass",
			draft:    Draft{StartTime: at(10, 0), EndTime: at(11, 0), ParticipantCount: intPtr(10)},
			capacity: 10,
			cfg:      testConfig(),
			want:     nil,
		},
		{
			name:  "overlap with a confirmed reservation conflicts",
			draft: Draft{StartTime: at(10, 0), EndTime: at(11, 0)},
			existing: []*Reservation{
				{ID: "a", Status: StatusConfirmed, StartTime: at(10, 30), EndTime: at(11, 30)},
			},
			capacity: 10,
			cfg:      testConfig(),
			want:     []error{&ConflictError{Count: 1}},
		},
		{
			name:  "touching boundaries do not conflict",
			draft: Draft{StartTime: at(10, 0), EndTime: at(11, 0)},
			existing: []*Reservation{
				{ID: "a", Status: StatusConfirmed, StartTime: at(9, 0), EndTime: at(10, 0)},
				{ID: "b", Status: StatusConfirmed, StartTime: at(11, 0), EndTime: at(12, 0)},
			},
			capacity: 10,
			cfg:      testConfig(),
			want:     nil,
		},
		{
			name:  "cancelled and rejected reservations never block",
			draft: Draft{StartTime: at(10, 0), EndTime: at(11, 0)},
			existing: []*Reservation{
				{ID: "a", Status: StatusCancelled, StartTime: at(10, 0), EndTime: at(11, 0)},
				{ID: "b", Status: StatusRejected, StartTime: at(10, 0), EndTime: at(11, 0)},
				{ID: "c", Status: StatusCompleted, StartTime: at(10, 0), EndTime: at(11, 0)},
			},
			capacity: 10,
			cfg:      testConfig(),
			want:     nil,
		},
		{
			name:  "conflict count covers every overlapping reservation",
			draft: Draft{StartTime: at(9, 0), EndTime: at(12, 0)},
			existing: []*Reservation{
				{ID: "a", Status: StatusPending, StartTime: at(9, 0), EndTime: at(10, 0)},
				{ID: "b", Status: StatusConfirmed, StartTime: at(10, 0), EndTime: at(11, 0)},
				{ID: "c", Status: StatusInUse, StartTime: at(11, 0), EndTime: at(12, 0)},
			},
			capacity: 10,
			cfg:      testConfig(),
			want:     []error{&ConflictError{Count: 3}},
		},
		{
			name: "update excludes its own reservation",
			draft: Draft{
				StartTime: at(10, 0),
				EndTime:   at(11, 0),
				ExcludeID: "self",
			},
			existing: []*Reservation{
				{ID: "self", Status: StatusConfirmed, StartTime: at(10, 0), EndTime: at(11, 0)},
			},
			capacity: 10,
			cfg:      testConfig(),
			want:     nil,
		},
		{
			name: "multiple failures accumulate in check order",
			draft: Draft{
				StartTime:        at(7, 0),
				EndTime:          at(7, 5),
				ParticipantCount: intPtr(50),
			},
			existing: []*Reservation{
				{ID: "a", Status: StatusConfirmed, StartTime: at(7, 0), EndTime: at(8, 0)},
			},
			capacity: 10,
			cfg:      testConfig(),
			want: []error{
				ErrStartTimePast,
				ErrDurationOutOfBounds,
				ErrCapacityExceeded,
				&ConflictError{Count: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(now, tt.draft, tt.capacity, tt.cfg, tt.existing)

			require.Len(t, got, len(tt.want))
			for i, want := range tt.want {
				var wantConflict *ConflictError
				if errors.As(want, &wantConflict) {
					var gotConflict *ConflictError
					require.ErrorAs(t, got[i], &gotConflict)
					assert.Equal(t, wantConflict.Count, gotConflict.Count)
					continue
				}
				assert.ErrorIs(t, got[i], want)
			}
		})
	}
}

func TestValidateDoesNotMutateInputs(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	existing := []*Reservation{
		{ID: "a", Status: StatusConfirmed, StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour)},
	}
	draft := Draft{StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour)}

	before := *existing[0]
	_ = Validate(now, draft, 5, testConfig(), existing)
	_ = Validate(now, draft, 5, testConfig(), existing)

	assert.Equal(t, before, *existing[0])
}
