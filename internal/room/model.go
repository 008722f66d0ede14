package room

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/apperror"
)

var (
	ErrNotFound              = apperror.New(http.StatusNotFound, "meeting room not found")
	ErrInvalidCapacity       = apperror.New(http.StatusBadRequest, "capacity must be greater than zero")
	ErrNameRequired          = apperror.New(http.StatusBadRequest, "room name is required")
	ErrNameTaken             = apperror.New(http.StatusConflict, "a room with this name already exists in the company")
	ErrCompanyRequired       = apperror.New(http.StatusBadRequest, "company id is required")
	ErrHasActiveReservations = apperror.New(http.StatusConflict, "room has active reservations and cannot be deleted")
)

// Room is a bookable meeting room belonging to exactly one company.
type Room struct {
	ID          string
	CompanyID   string
	Name        string
	Location    string
	Capacity    int
	IsAvailable bool
	Remarks     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines parameters for listing rooms within a company.
type Filter struct {
	CompanyID   string
	Search      string
	IsAvailable *bool

	Page     int
	PageSize int
}
