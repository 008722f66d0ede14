package audit

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/apperror"
)

var ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")

// Actions recorded in the audit trail.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionLogin  = "login"
	ActionLogout = "logout"
)

// Entry is a single audit record. Entries are written explicitly by the
// services that perform the mutation; nothing is hooked into storage writes.
type Entry struct {
	ID          string
	CompanyID   string
	UserID      string
	Action      string
	Entity      string // e.g. "reservation", "room", "company"
	EntityID    string
	Description string
	IP          string
	UserAgent   string
	Timestamp   time.Time
}

// Filter defines filter options for listing audit entries.
type Filter struct {
	CompanyID string
	UserID    string
	Action    string
	Entity    string
	From      *time.Time
	To        *time.Time

	Page     int
	PageSize int
}
