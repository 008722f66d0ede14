package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := map[Status][]Status{
		StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
		StatusConfirmed: {StatusInUse, StatusCancelled},
		StatusInUse:     {StatusCompleted},
	}
	all := []Status{StatusPending, StatusConfirmed, StatusInUse, StatusCompleted, StatusCancelled, StatusRejected}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, s := range allowed[from] {
				if s == to {
					want = true
				}
			}
			assert.Equalf(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatusesHaveNoExit(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusCancelled, StatusRejected} {
		assert.Truef(t, IsTerminal(s), "%s should be terminal", s)
		assert.Falsef(t, CanTransition(s, StatusConfirmed), "%s must not re-enter confirmed", s)
	}
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusConfirmed))
	assert.False(t, IsTerminal(StatusInUse))
}

func TestInitialStatus(t *testing.T) {
	tests := []struct {
		name            string
		requireApproval bool
		autoApproval    bool
		want            Status
	}{
		{"no approval required", false, false, StatusConfirmed},
		{"no approval required with auto approval", false, true, StatusConfirmed},
		{"approval required", true, false, StatusPending},
		{"approval required but auto-approved", true, true, StatusConfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig("company-1")
			cfg.RequireApproval = tt.requireApproval
			cfg.AutoApproval = tt.autoApproval
			assert.Equal(t, tt.want, InitialStatus(cfg))
		})
	}
}

func TestCanBeCancelled(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	assert.True(t, CanBeCancelled(StatusPending, future, now))
	assert.True(t, CanBeCancelled(StatusConfirmed, future, now))
	assert.False(t, CanBeCancelled(StatusPending, past, now))
	assert.False(t, CanBeCancelled(StatusConfirmed, now, now))
	assert.False(t, CanBeCancelled(StatusInUse, future, now))
	assert.False(t, CanBeCancelled(StatusCompleted, future, now))
	assert.False(t, CanBeCancelled(StatusCancelled, future, now))
	assert.False(t, CanBeCancelled(StatusRejected, future, now))
}

func TestConfigWorkingWindow(t *testing.T) {
	cfg := DefaultConfig("company-1")
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	start, end, err := cfg.WorkingWindow(day)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC), end)

	cfg.WorkStart = "not-a-clock"
	_, _, err = cfg.WorkingWindow(day)
	assert.Error(t, err)
}
