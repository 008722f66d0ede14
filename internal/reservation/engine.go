package reservation

import "time"

// Validate runs every validity check against a draft and the room's existing
// reservations, collecting one error per failed check in a fixed order:
// time range, start in the past, duration bounds, advance window, weekend
// policy, capacity, then conflicts.
//
// An inverted or zero-length window fails the first check and short-circuits
// the rest, since no later check is meaningful for it. All other failures
// accumulate so the caller can report them together.
//
// The function is pure: it never touches storage or the clock, so callers
// decide what "now" and "existing" mean. The conflict check treats windows as
// half-open, so a reservation ending exactly when another starts does not
// conflict. Reservations whose id equals draft.ExcludeID are skipped, which
// lets an update keep its own original window.
func Validate(now time.Time, draft Draft, roomCapacity int, cfg Config, existing []*Reservation) []error {
	if !draft.EndTime.After(draft.StartTime) {
		return []error{ErrInvalidTimeRange}
	}

	var errs []error

	if draft.StartTime.Before(now) {
		errs = append(errs, ErrStartTimePast)
	}

	if d := draft.EndTime.Sub(draft.StartTime); d < cfg.MinDuration || d > cfg.MaxDuration {
		errs = append(errs, ErrDurationOutOfBounds)
	}

	if cfg.MaxAdvanceDays > 0 {
		horizon := now.AddDate(0, 0, cfg.MaxAdvanceDays)
		if draft.StartTime.After(horizon) {
			errs = append(errs, ErrAdvanceTooFar)
		}
	}

	if !cfg.AllowWeekendBooking && isWeekend(draft.StartTime) {
		errs = append(errs, ErrWeekendNotAllowed)
	}

	if draft.ParticipantCount != nil && *draft.ParticipantCount > roomCapacity {
		errs = append(errs, ErrCapacityExceeded)
	}

	if n := countConflicts(draft, existing); n > 0 {
		errs = append(errs, &ConflictError{Count: n})
	}

	return errs
}

func countConflicts(draft Draft, existing []*Reservation) int {
	n := 0
	for _, r := range existing {
		if draft.ExcludeID != "" && r.ID == draft.ExcludeID {
			continue
		}
		if !r.Status.IsBlocking() {
			continue
		}
		if r.Overlaps(draft.StartTime, draft.EndTime) {
			n++
		}
	}
	return n
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
