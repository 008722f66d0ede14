package user

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrInactiveUser       = apperror.New(http.StatusForbidden, "user is inactive")
	ErrCompanyRequired    = apperror.New(http.StatusBadRequest, "an explicit company assignment is required")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "invalid role")
)

// User represents an account scoped to a single company.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	CompanyID    string
	Role         string // auth.RoleAdmin or auth.RoleUser
	Phone        string
	Department   string
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Filter defines filter options for listing users within a company.
type Filter struct {
	CompanyID string
	Role      string
	IsActive  *bool // pointer to distinguish between false and not set

	Page     int
	PageSize int
}
