package reservation

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "reservation not found")
	ErrRoomNotFound        = apperror.New(http.StatusNotFound, "meeting room not found")
	ErrRoomUnavailable     = apperror.New(http.StatusConflict, "meeting room is not available for booking")
	ErrInvalidTimeRange    = apperror.New(http.StatusBadRequest, "end time must be after start time")
	ErrStartTimePast       = apperror.New(http.StatusBadRequest, "cannot book a time in the past")
	ErrDurationOutOfBounds = apperror.New(http.StatusBadRequest, "reservation duration is outside the allowed bounds")
	ErrAdvanceTooFar       = apperror.New(http.StatusBadRequest, "reservation is too far in advance")
	ErrWeekendNotAllowed   = apperror.New(http.StatusBadRequest, "weekend booking is not allowed")
	ErrCapacityExceeded    = apperror.New(http.StatusBadRequest, "participant count exceeds room capacity")
	ErrPermissionDenied    = apperror.New(http.StatusForbidden, "permission denied")
	ErrNotCancellable      = apperror.New(http.StatusConflict, "reservation can no longer be modified")
	ErrTitleRequired       = apperror.New(http.StatusBadRequest, "title is required")
)

// Status is the lifecycle state of a reservation.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusInUse     Status = "in_use"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
)

// BlockingStatuses are the statuses that occupy a room's time window.
// Cancelled, rejected, and completed reservations never block.
var BlockingStatuses = []Status{StatusPending, StatusConfirmed, StatusInUse}

// IsBlocking reports whether a reservation in this status occupies its window.
func (s Status) IsBlocking() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusInUse
}

// Valid reports whether the status is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInUse, StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// Reservation books a room for a half-open time window [StartTime, EndTime).
type Reservation struct {
	ID               string
	CompanyID        string
	RoomID           string
	RoomName         string
	UserID           string
	UserName         string
	Title            string
	Description      string
	StartTime        time.Time
	EndTime          time.Time
	ParticipantCount *int
	ParticipantIDs   []string
	Remarks          string
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Duration returns the reserved window length.
func (r *Reservation) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Overlaps reports whether the reservation's half-open window intersects
// [start, end). Touching boundaries do not overlap.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && r.EndTime.After(start)
}

// Draft is a proposed reservation, validated before anything is written.
// ExcludeID carries the reservation's own id during update-in-place checks.
type Draft struct {
	CompanyID        string
	RoomID           string
	UserID           string
	Title            string
	Description      string
	StartTime        time.Time
	EndTime          time.Time
	ParticipantCount *int
	ParticipantIDs   []string
	Remarks          string
	ExcludeID        string
}

// TimeSlot is a free interval produced by the availability calculator.
type TimeSlot struct {
	Start           time.Time
	End             time.Time
	DurationMinutes int
}

// Filter defines parameters for listing reservations within a company.
type Filter struct {
	CompanyID string
	RoomID    string
	UserID    string
	Status    string
	StartFrom *time.Time
	StartTo   *time.Time
	Search    string

	Page     int
	PageSize int
}

// ConflictError reports how many existing blocking reservations overlap the
// candidate window.
type ConflictError struct {
	Count int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time window conflicts with %d existing reservation(s)", e.Count)
}

// TransitionError reports a lifecycle transition outside the permitted table.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %q to %q", e.From, e.To)
}

// ValidationErrors aggregates every check the engine failed, in check order.
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return e.Errors[0].Error()
}

// HasConflict reports whether one of the failures is a time conflict.
func (e *ValidationErrors) HasConflict() bool {
	for _, err := range e.Errors {
		if _, ok := err.(*ConflictError); ok {
			return true
		}
	}
	return false
}
