package reservation

import (
	"context"
	"strings"
	"time"

	"github.com/nekogravitycat/meeting-room-backend/internal/audit"
	"github.com/nekogravitycat/meeting-room-backend/internal/auth"
	"github.com/nekogravitycat/meeting-room-backend/internal/metrics"
	"github.com/nekogravitycat/meeting-room-backend/internal/notification"
	"github.com/nekogravitycat/meeting-room-backend/internal/room"
)

// CreateRequest carries data to book a room.
type CreateRequest struct {
	RoomID           string
	Title            string
	Description      string
	StartTime        time.Time
	EndTime          time.Time
	ParticipantCount *int
	ParticipantIDs   []string
	Remarks          string
}

// UpdateRequest carries partial updates to an existing reservation. Changing
// the window re-runs the full validity pipeline against the room schedule.
type UpdateRequest struct {
	Title            *string
	Description      *string
	StartTime        *time.Time
	EndTime          *time.Time
	ParticipantCount *int
	ParticipantIDs   *[]string
	Remarks          *string
}

// ConfigUpdateRequest carries partial updates to a company's booking policy.
type ConfigUpdateRequest struct {
	MaxAdvanceDays      *int
	MinDurationMinutes  *int
	MaxDurationMinutes  *int
	AllowWeekendBooking *bool
	WorkStart           *string
	WorkEnd             *string
	RequireApproval     *bool
	AutoApproval        *bool
}

type Service interface {
	Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Reservation, error)
	GetByID(ctx context.Context, actor auth.Actor, id string) (*Reservation, error)
	List(ctx context.Context, actor auth.Actor, filter Filter) ([]*Reservation, int, error)
	Update(ctx context.Context, actor auth.Actor, id string, req UpdateRequest) (*Reservation, error)

	// TransitionStatus moves a reservation through its lifecycle. Company
	// admins may perform any transition the lifecycle table allows; the owner
	// may only cancel, and only while the reservation has not started.
	TransitionStatus(ctx context.Context, actor auth.Actor, id string, to Status) (*Reservation, error)
	Cancel(ctx context.Context, actor auth.Actor, id string) (*Reservation, error)

	// AvailableSlots returns the free intervals of a room on a calendar day,
	// bounded by the company's working hours.
	AvailableSlots(ctx context.Context, actor auth.Actor, roomID string, day time.Time) ([]TimeSlot, error)
	// CheckConflict counts existing blocking reservations overlapping the
	// window, without writing anything.
	CheckConflict(ctx context.Context, actor auth.Actor, roomID string, start, end time.Time, excludeID string) (int, error)
	Stats(ctx context.Context, actor auth.Actor, from time.Time) (*Stats, error)

	GetConfig(ctx context.Context, actor auth.Actor) (Config, error)
	UpdateConfig(ctx context.Context, actor auth.Actor, req ConfigUpdateRequest) (Config, error)
}

type service struct {
	repo        Repository
	configRepo  ConfigRepository
	roomService room.Service
	notifier    notification.Notifier
	auditor     audit.Recorder
	now         func() time.Time
}

func NewService(repo Repository, configRepo ConfigRepository, roomService room.Service, notifier notification.Notifier, auditor audit.Recorder) Service {
	return &service{
		repo:        repo,
		configRepo:  configRepo,
		roomService: roomService,
		notifier:    notifier,
		auditor:     auditor,
		now:         time.Now,
	}
}

func (s *service) Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Reservation, error) {
	rm, err := s.roomService.GetForCompany(ctx, req.RoomID, actor.CompanyID)
	if err != nil {
		return nil, ErrRoomNotFound
	}
	if !rm.IsAvailable {
		return nil, ErrRoomUnavailable
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}

	cfg, err := s.configRepo.Get(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}

	res := &Reservation{
		CompanyID:        actor.CompanyID,
		RoomID:           rm.ID,
		UserID:           actor.UserID,
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		ParticipantCount: req.ParticipantCount,
		ParticipantIDs:   req.ParticipantIDs,
		Remarks:          req.Remarks,
		Status:           InitialStatus(cfg),
	}

	now := s.now()
	draft := Draft{
		CompanyID:        res.CompanyID,
		RoomID:           res.RoomID,
		UserID:           res.UserID,
		Title:            res.Title,
		StartTime:        res.StartTime,
		EndTime:          res.EndTime,
		ParticipantCount: res.ParticipantCount,
	}

	err = s.repo.CreateValidated(ctx, res, func(existing []*Reservation) error {
		if errs := Validate(now, draft, rm.Capacity, cfg, existing); len(errs) > 0 {
			return &ValidationErrors{Errors: errs}
		}
		return nil
	})
	if err != nil {
		if verrs, ok := err.(*ValidationErrors); ok && verrs.HasConflict() {
			metrics.RecordConflict()
		}
		return nil, err
	}

	metrics.RecordReservationOperation("create")
	s.auditor.Record(ctx, audit.Entry{
		CompanyID:   res.CompanyID,
		UserID:      actor.UserID,
		Action:      audit.ActionCreate,
		Entity:      "reservation",
		EntityID:    res.ID,
		Description: "reserved " + rm.Name + " for " + res.Title,
	})

	title := "Reservation confirmed"
	message := "Your reservation of " + rm.Name + " is confirmed."
	if res.Status == StatusPending {
		title = "Reservation awaiting approval"
		message = "Your reservation of " + rm.Name + " is waiting for approval."
	}
	s.notifier.Notify(ctx, notification.Notification{
		CompanyID: res.CompanyID,
		UserID:    res.UserID,
		Type:      notification.TypeReservationCreated,
		Title:     title,
		Message:   message,
		RelatedID: &res.ID,
	})

	res.RoomName = rm.Name
	return res, nil
}

func (s *service) GetByID(ctx context.Context, actor auth.Actor, id string) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Cross-tenant reads report not-found rather than leaking existence.
	if !auth.SameCompany(actor, res.CompanyID) {
		return nil, ErrNotFound
	}
	return res, nil
}

func (s *service) List(ctx context.Context, actor auth.Actor, filter Filter) ([]*Reservation, int, error) {
	filter.CompanyID = actor.CompanyID
	// Non-admins only see their own reservations.
	if !auth.CanManage(actor, actor.CompanyID) {
		filter.UserID = actor.UserID
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id string, req UpdateRequest) (*Reservation, error) {
	res, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	isAdmin := auth.CanManage(actor, res.CompanyID)
	if res.UserID != actor.UserID && !isAdmin {
		return nil, ErrPermissionDenied
	}

	now := s.now()
	if !CanBeCancelled(res.Status, res.StartTime, now) {
		return nil, ErrNotCancellable
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		res.Title = title
	}
	if req.Description != nil {
		res.Description = *req.Description
	}
	if req.StartTime != nil {
		res.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		res.EndTime = *req.EndTime
	}
	if req.ParticipantCount != nil {
		res.ParticipantCount = req.ParticipantCount
	}
	if req.ParticipantIDs != nil {
		res.ParticipantIDs = *req.ParticipantIDs
	}
	if req.Remarks != nil {
		res.Remarks = *req.Remarks
	}

	rm, err := s.roomService.GetForCompany(ctx, res.RoomID, res.CompanyID)
	if err != nil {
		return nil, ErrRoomNotFound
	}

	cfg, err := s.configRepo.Get(ctx, res.CompanyID)
	if err != nil {
		return nil, err
	}

	draft := Draft{
		CompanyID:        res.CompanyID,
		RoomID:           res.RoomID,
		UserID:           res.UserID,
		Title:            res.Title,
		StartTime:        res.StartTime,
		EndTime:          res.EndTime,
		ParticipantCount: res.ParticipantCount,
		ExcludeID:        res.ID,
	}

	err = s.repo.UpdateValidated(ctx, res, func(existing []*Reservation) error {
		if errs := Validate(now, draft, rm.Capacity, cfg, existing); len(errs) > 0 {
			return &ValidationErrors{Errors: errs}
		}
		return nil
	})
	if err != nil {
		if verrs, ok := err.(*ValidationErrors); ok && verrs.HasConflict() {
			metrics.RecordConflict()
		}
		return nil, err
	}

	metrics.RecordReservationOperation("update")
	s.auditor.Record(ctx, audit.Entry{
		CompanyID:   res.CompanyID,
		UserID:      actor.UserID,
		Action:      audit.ActionUpdate,
		Entity:      "reservation",
		EntityID:    res.ID,
		Description: "updated reservation " + res.Title,
	})

	return res, nil
}

func (s *service) TransitionStatus(ctx context.Context, actor auth.Actor, id string, to Status) (*Reservation, error) {
	res, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	isAdmin := auth.CanManage(actor, res.CompanyID)
	isOwner := res.UserID == actor.UserID

	switch {
	case isAdmin:
		// Admins may perform any transition the lifecycle table allows.
	case isOwner && to == StatusCancelled:
		if !CanBeCancelled(res.Status, res.StartTime, s.now()) {
			return nil, ErrNotCancellable
		}
	default:
		return nil, ErrPermissionDenied
	}

	if !CanTransition(res.Status, to) {
		return nil, &TransitionError{From: res.Status, To: to}
	}

	if err := s.repo.UpdateStatus(ctx, res.ID, to); err != nil {
		return nil, err
	}
	from := res.Status
	res.Status = to

	metrics.RecordReservationOperation("transition_" + string(to))
	s.auditor.Record(ctx, audit.Entry{
		CompanyID:   res.CompanyID,
		UserID:      actor.UserID,
		Action:      audit.ActionUpdate,
		Entity:      "reservation",
		EntityID:    res.ID,
		Description: "reservation " + res.Title + ": " + string(from) + " -> " + string(to),
	})
	s.notifyTransition(ctx, res, to)

	return res, nil
}

func (s *service) notifyTransition(ctx context.Context, res *Reservation, to Status) {
	var typ notification.Type
	var title, message string

	switch to {
	case StatusConfirmed:
		typ = notification.TypeReservationApproved
		title = "Reservation approved"
		message = "Your reservation " + res.Title + " has been approved."
	case StatusRejected:
		typ = notification.TypeReservationRejected
		title = "Reservation rejected"
		message = "Your reservation " + res.Title + " has been rejected."
	case StatusCancelled:
		typ = notification.TypeReservationCancelled
		title = "Reservation cancelled"
		message = "Your reservation " + res.Title + " has been cancelled."
	default:
		return
	}

	s.notifier.Notify(ctx, notification.Notification{
		CompanyID: res.CompanyID,
		UserID:    res.UserID,
		Type:      typ,
		Title:     title,
		Message:   message,
		RelatedID: &res.ID,
	})
}

func (s *service) Cancel(ctx context.Context, actor auth.Actor, id string) (*Reservation, error) {
	return s.TransitionStatus(ctx, actor, id, StatusCancelled)
}

func (s *service) AvailableSlots(ctx context.Context, actor auth.Actor, roomID string, day time.Time) ([]TimeSlot, error) {
	rm, err := s.roomService.GetForCompany(ctx, roomID, actor.CompanyID)
	if err != nil {
		return nil, ErrRoomNotFound
	}

	cfg, err := s.configRepo.Get(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}

	workStart, workEnd, err := cfg.WorkingWindow(day)
	if err != nil {
		return nil, err
	}

	reservations, err := s.repo.ListForRoomBetween(ctx, rm.ID, workStart, workEnd)
	if err != nil {
		return nil, err
	}

	return AvailableSlots(workStart, workEnd, cfg.MinDuration, reservations), nil
}

func (s *service) CheckConflict(ctx context.Context, actor auth.Actor, roomID string, start, end time.Time, excludeID string) (int, error) {
	if _, err := s.roomService.GetForCompany(ctx, roomID, actor.CompanyID); err != nil {
		return 0, ErrRoomNotFound
	}
	if !end.After(start) {
		return 0, ErrInvalidTimeRange
	}
	return s.repo.CountOverlapping(ctx, roomID, start, end, excludeID)
}

func (s *service) Stats(ctx context.Context, actor auth.Actor, from time.Time) (*Stats, error) {
	if !auth.CanManage(actor, actor.CompanyID) {
		return nil, ErrPermissionDenied
	}
	return s.repo.Stats(ctx, actor.CompanyID, from)
}

func (s *service) GetConfig(ctx context.Context, actor auth.Actor) (Config, error) {
	return s.configRepo.Get(ctx, actor.CompanyID)
}

func (s *service) UpdateConfig(ctx context.Context, actor auth.Actor, req ConfigUpdateRequest) (Config, error) {
	if !auth.CanManage(actor, actor.CompanyID) {
		return Config{}, ErrPermissionDenied
	}

	cfg, err := s.configRepo.Get(ctx, actor.CompanyID)
	if err != nil {
		return Config{}, err
	}

	if req.MaxAdvanceDays != nil {
		cfg.MaxAdvanceDays = *req.MaxAdvanceDays
	}
	if req.MinDurationMinutes != nil {
		cfg.MinDuration = time.Duration(*req.MinDurationMinutes) * time.Minute
	}
	if req.MaxDurationMinutes != nil {
		cfg.MaxDuration = time.Duration(*req.MaxDurationMinutes) * time.Minute
	}
	if req.AllowWeekendBooking != nil {
		cfg.AllowWeekendBooking = *req.AllowWeekendBooking
	}
	if req.WorkStart != nil {
		cfg.WorkStart = *req.WorkStart
	}
	if req.WorkEnd != nil {
		cfg.WorkEnd = *req.WorkEnd
	}
	if req.RequireApproval != nil {
		cfg.RequireApproval = *req.RequireApproval
	}
	if req.AutoApproval != nil {
		cfg.AutoApproval = *req.AutoApproval
	}

	if cfg.MinDuration <= 0 || cfg.MaxDuration < cfg.MinDuration {
		return Config{}, ErrDurationOutOfBounds
	}
	ws, we, err := cfg.WorkingWindow(s.now())
	if err != nil || !we.After(ws) {
		return Config{}, ErrInvalidTimeRange
	}

	if err := s.configRepo.Upsert(ctx, &cfg); err != nil {
		return Config{}, err
	}

	s.auditor.Record(ctx, audit.Entry{
		CompanyID:   actor.CompanyID,
		UserID:      actor.UserID,
		Action:      audit.ActionUpdate,
		Entity:      "reservation_config",
		EntityID:    actor.CompanyID,
		Description: "updated reservation policy",
	})

	return cfg, nil
}
