package company

import (
	"context"
	"strings"
)

// CreateRequest carries data to create a company.
type CreateRequest struct {
	Name        string
	AdminUserID string
}

// UpdateRequest defines the fields that can be updated.
type UpdateRequest struct {
	Name        *string
	AdminUserID *string
	IsActive    *bool
}

// Service defines business logic for companies.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Company, error)
	GetByID(ctx context.Context, id string) (*Company, error)
	List(ctx context.Context, filter Filter) ([]*Company, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Company, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

// NewService creates a new company service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Company, error) {
	name := strings.TrimSpace(req.Name)
	if len([]rune(name)) < 2 {
		return nil, ErrNameTooShort
	}
	if req.AdminUserID == "" {
		return nil, ErrAdminRequired
	}

	c := &Company{
		Name:        name,
		AdminUserID: req.AdminUserID,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Company, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Company, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Company, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len([]rune(name)) < 2 {
			return nil, ErrNameTooShort
		}
		c.Name = name
	}
	if req.AdminUserID != nil {
		if *req.AdminUserID == "" {
			return nil, ErrAdminRequired
		}
		c.AdminUserID = *req.AdminUserID
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, id)
}
