package reservation

import (
	"sort"
	"time"
)

// AvailableSlots computes the free intervals of a room between workStart and
// workEnd given its existing reservations. Only blocking reservations consume
// time; cancelled, rejected, and completed ones are ignored. Slots shorter
// than minDuration are dropped.
//
// The sweep clamps each reservation to the working window, so bookings that
// start before workStart or end after workEnd only consume the overlapping
// part. Input order does not matter; the result is sorted and non-overlapping.
func AvailableSlots(workStart, workEnd time.Time, minDuration time.Duration, reservations []*Reservation) []TimeSlot {
	if !workEnd.After(workStart) {
		return nil
	}

	busy := make([]*Reservation, 0, len(reservations))
	for _, r := range reservations {
		if !r.Status.IsBlocking() {
			continue
		}
		if !r.Overlaps(workStart, workEnd) {
			continue
		}
		busy = append(busy, r)
	}
	sort.Slice(busy, func(i, j int) bool {
		return busy[i].StartTime.Before(busy[j].StartTime)
	})

	var slots []TimeSlot
	cursor := workStart
	for _, r := range busy {
		start := maxTime(r.StartTime, workStart)
		end := minTime(r.EndTime, workEnd)
		if start.After(cursor) {
			appendSlot(&slots, cursor, start, minDuration)
		}
		if end.After(cursor) {
			cursor = end
		}
	}
	if workEnd.After(cursor) {
		appendSlot(&slots, cursor, workEnd, minDuration)
	}

	return slots
}

func appendSlot(slots *[]TimeSlot, start, end time.Time, minDuration time.Duration) {
	d := end.Sub(start)
	if d < minDuration {
		return
	}
	*slots = append(*slots, TimeSlot{
		Start:           start,
		End:             end,
		DurationMinutes: int(d / time.Minute),
	})
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
