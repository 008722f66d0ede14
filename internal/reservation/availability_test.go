package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAvailableSlots(t *testing.T) {
	day := func(hour, min int) time.Time {
		return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
	}
	workStart := day(9, 0)
	workEnd := day(18, 0)
	minDuration := 60 * time.Minute

	tests := []struct {
		name         string
		reservations []*Reservation
		want         []TimeSlot
	}{
		{
			name: "no reservations, full day available",
			want: []TimeSlot{
				{Start: day(9, 0), End: day(18, 0), DurationMinutes: 540},
			},
		},
		{
			name: "one reservation in the middle splits the day",
			reservations: []*Reservation{
				{Status: StatusConfirmed, StartTime: day(12, 0), EndTime: day(13, 0)},
			},
			want: []TimeSlot{
				{Start: day(9, 0), End: day(12, 0), DurationMinutes: 180},
				{Start: day(13, 0), End: day(18, 0), DurationMinutes: 300},
			},
		},
		{
			name: "unsorted input yields the same result",
			reservations: []*Reservation{
				{Status: StatusConfirmed, StartTime: day(15, 0), EndTime: day(16, 0)},
				{Status: StatusConfirmed, StartTime: day(12, 0), EndTime: day(13, 0)},
			},
			want: []TimeSlot{
				{Start: day(9, 0), End: day(12, 0), DurationMinutes: 180},
				{Start: day(13, 0), End: day(15, 0), DurationMinutes: 120},
				{Start: day(16, 0), End: day(18, 0), DurationMinutes: 120},
			},
		},
		{
			name: "gap shorter than the minimum duration is dropped",
			reservations: []*Reservation{
				{Status: StatusConfirmed, StartTime: day(9, 0), EndTime: day(12, 0)},
				{Status: StatusConfirmed, StartTime: day(12, 30), EndTime: day(18, 0)},
			},
			want: nil,
		},
		{
			name: "non-blocking statuses free the window",
			reservations: []*Reservation{
				{Status: StatusCancelled, StartTime: day(10, 0), EndTime: day(11, 0)},
				{Status: StatusRejected, StartTime: day(12, 0), EndTime: day(13, 0)},
				{Status: StatusCompleted, StartTime: day(14, 0), EndTime: day(15, 0)},
			},
			want: []TimeSlot{
				{Start: day(9, 0), End: day(18, 0), DurationMinutes: 540},
			},
		},
		{
			name: "overlapping reservations collapse into one busy block",
			reservations: []*Reservation{
				{Status: StatusConfirmed, StartTime: day(10, 0), EndTime: day(12, 0)},
				{Status: StatusPending, StartTime: day(11, 0), EndTime: day(13, 0)},
			},
			want: []TimeSlot{
				{Start: day(9, 0), End: day(10, 0), DurationMinutes: 60},
				{Start: day(13, 0), End: day(18, 0), DurationMinutes: 300},
			},
		},
		{
			name: "reservation spilling past working hours is clamped",
			reservations: []*Reservation{
				{Status: StatusConfirmed, StartTime: day(8, 0), EndTime: day(10, 0)},
				{Status: StatusConfirmed, StartTime: day(17, 0), EndTime: day(19, 0)},
			},
			want: []TimeSlot{
				{Start: day(10, 0), End: day(17, 0), DurationMinutes: 420},
			},
		},
		{
			name: "fully booked day has no slots",
			reservations: []*Reservation{
				{Status: StatusConfirmed, StartTime: day(9, 0), EndTime: day(18, 0)},
			},
			want: nil,
		},
		{
			name: "back-to-back reservations leave only the outer gaps",
			reservations: []*Reservation{
				{Status: StatusConfirmed, StartTime: day(10, 0), EndTime: day(11, 0)},
				{Status: StatusConfirmed, StartTime: day(11, 0), EndTime: day(12, 0)},
			},
			want: []TimeSlot{
				{Start: day(9, 0), End: day(10, 0), DurationMinutes: 60},
				{Start: day(12, 0), End: day(18, 0), DurationMinutes: 360},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AvailableSlots(workStart, workEnd, minDuration, tt.reservations)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAvailableSlotsIsIdempotent(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	workStart := day.Add(9 * time.Hour)
	workEnd := day.Add(18 * time.Hour)
	reservations := []*Reservation{
		{Status: StatusConfirmed, StartTime: day.Add(12 * time.Hour), EndTime: day.Add(13 * time.Hour)},
	}

	first := AvailableSlots(workStart, workEnd, 15*time.Minute, reservations)
	second := AvailableSlots(workStart, workEnd, 15*time.Minute, reservations)
	assert.Equal(t, first, second)
}

func TestAvailableSlotsInvertedWindow(t *testing.T) {
	now := time.Now()
	assert.Nil(t, AvailableSlots(now, now.Add(-time.Hour), 15*time.Minute, nil))
}
