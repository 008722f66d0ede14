package reservation

import "time"

// transitions is the full lifecycle table. Completed, cancelled, and rejected
// are terminal: they have no outgoing edges and nothing may re-enter an
// active state from them.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed: {StatusInUse, StatusCancelled},
	StatusInUse:     {StatusCompleted},
}

// CanTransition reports whether the lifecycle permits moving from one status
// to another.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status has no outgoing transitions.
func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}

// InitialStatus decides the status of a newly created reservation from the
// company policy: approval is skipped entirely when not required, and
// auto-approval short-circuits it when it is.
func InitialStatus(cfg Config) Status {
	if !cfg.RequireApproval || cfg.AutoApproval {
		return StatusConfirmed
	}
	return StatusPending
}

// CanBeCancelled reports whether the owner may still cancel: the reservation
// must not have started and must be in a cancellable state.
func CanBeCancelled(status Status, startTime, now time.Time) bool {
	if status != StatusPending && status != StatusConfirmed {
		return false
	}
	return startTime.After(now)
}
