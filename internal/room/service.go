package room

import (
	"context"
	"strings"

	"github.com/nekogravitycat/meeting-room-backend/internal/audit"
	"github.com/nekogravitycat/meeting-room-backend/internal/company"
)

// CreateRequest carries data to create a meeting room.
type CreateRequest struct {
	CompanyID string
	Name      string
	Location  string
	Capacity  int
	Remarks   string
}

// UpdateRequest carries data for partial updates.
type UpdateRequest struct {
	Name        *string
	Location    *string
	Capacity    *int
	IsAvailable *bool
	Remarks     *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, actorUserID string) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	// GetForCompany fetches a room and verifies it belongs to the company.
	// Cross-company lookups report ErrNotFound rather than leaking existence.
	GetForCompany(ctx context.Context, id, companyID string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorUserID string) (*Room, error)
	ToggleAvailability(ctx context.Context, id string, actorUserID string) (*Room, error)
	Delete(ctx context.Context, id string, actorUserID string) error
}

type service struct {
	repo           Repository
	companyService company.Service
	auditor        audit.Recorder
}

func NewService(repo Repository, companyService company.Service, auditor audit.Recorder) Service {
	return &service{repo: repo, companyService: companyService, auditor: auditor}
}

func (s *service) Create(ctx context.Context, req CreateRequest, actorUserID string) (*Room, error) {
	if req.CompanyID == "" {
		return nil, ErrCompanyRequired
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	// Verify the company exists and is active.
	if _, err := s.companyService.GetByID(ctx, req.CompanyID); err != nil {
		return nil, err
	}

	rm := &Room{
		CompanyID:   req.CompanyID,
		Name:        strings.TrimSpace(req.Name),
		Location:    strings.TrimSpace(req.Location),
		Capacity:    req.Capacity,
		IsAvailable: true,
		Remarks:     req.Remarks,
	}

	if err := s.repo.Create(ctx, rm); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, audit.Entry{
		CompanyID:   rm.CompanyID,
		UserID:      actorUserID,
		Action:      audit.ActionCreate,
		Entity:      "room",
		EntityID:    rm.ID,
		Description: "created meeting room " + rm.Name,
	})

	return rm, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetForCompany(ctx context.Context, id, companyID string) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rm.CompanyID != companyID {
		return nil, ErrNotFound
	}
	return rm, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorUserID string) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		rm.Name = name
	}
	if req.Location != nil {
		rm.Location = strings.TrimSpace(*req.Location)
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		rm.Capacity = *req.Capacity
	}
	if req.IsAvailable != nil {
		rm.IsAvailable = *req.IsAvailable
	}
	if req.Remarks != nil {
		rm.Remarks = *req.Remarks
	}

	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, audit.Entry{
		CompanyID:   rm.CompanyID,
		UserID:      actorUserID,
		Action:      audit.ActionUpdate,
		Entity:      "room",
		EntityID:    rm.ID,
		Description: "updated meeting room " + rm.Name,
	})

	return rm, nil
}

func (s *service) ToggleAvailability(ctx context.Context, id string, actorUserID string) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rm.IsAvailable = !rm.IsAvailable
	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}

	desc := "disabled meeting room " + rm.Name
	if rm.IsAvailable {
		desc = "enabled meeting room " + rm.Name
	}
	s.auditor.Record(ctx, audit.Entry{
		CompanyID:   rm.CompanyID,
		UserID:      actorUserID,
		Action:      audit.ActionUpdate,
		Entity:      "room",
		EntityID:    rm.ID,
		Description: desc,
	})

	return rm, nil
}

func (s *service) Delete(ctx context.Context, id string, actorUserID string) error {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// A room with pending/confirmed/in_use reservations cannot be removed.
	hasActive, err := s.repo.HasActiveReservations(ctx, id)
	if err != nil {
		return err
	}
	if hasActive {
		return ErrHasActiveReservations
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditor.Record(ctx, audit.Entry{
		CompanyID:   rm.CompanyID,
		UserID:      actorUserID,
		Action:      audit.ActionDelete,
		Entity:      "room",
		EntityID:    rm.ID,
		Description: "deleted meeting room " + rm.Name,
	})

	return nil
}
