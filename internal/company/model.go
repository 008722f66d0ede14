package company

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "company not found")
	ErrNameTooShort  = apperror.New(http.StatusBadRequest, "company name must be at least 2 characters")
	ErrNameTaken     = apperror.New(http.StatusConflict, "company name already in use")
	ErrAdminRequired = apperror.New(http.StatusBadRequest, "company admin user is required")
)

// Company is the tenant boundary: every room, reservation, and user belongs
// to exactly one company, and cross-company references are rejected at the
// service layer.
type Company struct {
	ID          string
	Name        string
	AdminUserID string
	IsActive    bool
	CreatedAt   time.Time
}

// Filter defines filter options for listing companies.
type Filter struct {
	Page      int
	PageSize  int
	SortOrder string
}
