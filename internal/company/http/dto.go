package http

import (
	"time"

	"github.com/nekogravitycat/meeting-room-backend/internal/company"
	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/request"
)

// CompanyTag is the minimal company reference embedded in other responses.
type CompanyTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CompanyResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	AdminUserID string    `json:"admin_user_id"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewCompanyResponse(c *company.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		AdminUserID: c.AdminUserID,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}

type ListCompaniesRequest struct {
	request.ListParams
}

type CreateCompanyRequest struct {
	Name string `json:"name" binding:"required,min=2"`
}

type UpdateCompanyRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2"`
	AdminUserID *string `json:"admin_user_id" binding:"omitempty,uuid"`
	IsActive    *bool   `json:"is_active"`
}
