package notification

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/apperror"
)

var ErrNotFound = apperror.New(http.StatusNotFound, "notification not found")

// Type classifies a notification for client-side grouping and icons.
type Type string

const (
	TypeReservationCreated   Type = "reservation_created"
	TypeReservationApproved  Type = "reservation_approved"
	TypeReservationRejected  Type = "reservation_rejected"
	TypeReservationCancelled Type = "reservation_cancelled"
	TypeReminder             Type = "reminder"
	TypeSystem               Type = "system"
)

// Notification is an in-app message delivered to a single user.
// RelatedID optionally points at the entity the message is about.
type Notification struct {
	ID        string
	CompanyID string
	UserID    string
	Type      Type
	Title     string
	Message   string
	RelatedID *string
	IsRead    bool
	CreatedAt time.Time
}

// Filter defines parameters for listing a user's notifications.
type Filter struct {
	UserID     string
	UnreadOnly bool

	Page     int
	PageSize int
}
