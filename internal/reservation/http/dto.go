package http

import (
	"errors"
	"time"

	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/request"
	"github.com/nekogravitycat/meeting-room-backend/internal/reservation"
)

type ReservationResponse struct {
	ID               string    `json:"id"`
	CompanyID        string    `json:"company_id"`
	RoomID           string    `json:"room_id"`
	RoomName         string    `json:"room_name,omitempty"`
	UserID           string    `json:"user_id"`
	UserName         string    `json:"user_name,omitempty"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	ParticipantCount *int      `json:"participant_count,omitempty"`
	ParticipantIDs   []string  `json:"participant_ids,omitempty"`
	Remarks          string    `json:"remarks,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewReservationResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:               r.ID,
		CompanyID:        r.CompanyID,
		RoomID:           r.RoomID,
		RoomName:         r.RoomName,
		UserID:           r.UserID,
		UserName:         r.UserName,
		Title:            r.Title,
		Description:      r.Description,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		ParticipantCount: r.ParticipantCount,
		ParticipantIDs:   r.ParticipantIDs,
		Remarks:          r.Remarks,
		Status:           string(r.Status),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

type CreateReservationRequest struct {
	RoomID           string    `json:"room_id" binding:"required,uuid"`
	Title            string    `json:"title" binding:"required"`
	Description      string    `json:"description"`
	StartTime        time.Time `json:"start_time" binding:"required"`
	EndTime          time.Time `json:"end_time" binding:"required"`
	ParticipantCount *int      `json:"participant_count" binding:"omitempty,min=1"`
	ParticipantIDs   []string  `json:"participant_ids" binding:"omitempty,dive,uuid"`
	Remarks          string    `json:"remarks"`
}

type UpdateReservationRequest struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	StartTime        *time.Time `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
	ParticipantCount *int       `json:"participant_count" binding:"omitempty,min=1"`
	ParticipantIDs   *[]string  `json:"participant_ids" binding:"omitempty,dive,uuid"`
	Remarks          *string    `json:"remarks"`
}

type ListReservationsRequest struct {
	request.ListParams
	RoomID    string     `form:"room_id" binding:"omitempty,uuid"`
	UserID    string     `form:"user_id" binding:"omitempty,uuid"`
	Status    string     `form:"status" binding:"omitempty,oneof=pending confirmed in_use completed cancelled rejected"`
	StartFrom *time.Time `form:"start_from" time_format:"2006-01-02T15:04:05Z07:00"`
	StartTo   *time.Time `form:"start_to" time_format:"2006-01-02T15:04:05Z07:00"`
	Search    string     `form:"search"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed in_use completed cancelled rejected"`
}

type AvailabilityRequest struct {
	RoomID string `form:"room_id" binding:"required,uuid"`
	Date   string `form:"date" binding:"required,datetime=2006-01-02"`
}

type TimeSlotResponse struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
}

func NewTimeSlotResponses(slots []reservation.TimeSlot) []TimeSlotResponse {
	out := make([]TimeSlotResponse, len(slots))
	for i, s := range slots {
		out[i] = TimeSlotResponse{StartTime: s.Start, EndTime: s.End, DurationMinutes: s.DurationMinutes}
	}
	return out
}

type CheckConflictRequest struct {
	RoomID    string    `form:"room_id" binding:"required,uuid"`
	StartTime time.Time `form:"start_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime   time.Time `form:"end_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	ExcludeID string    `form:"exclude_id" binding:"omitempty,uuid"`
}

type ConflictResponse struct {
	Conflict bool `json:"conflict"`
	Count    int  `json:"count"`
}

type ConfigResponse struct {
	MaxAdvanceDays      int    `json:"max_advance_days"`
	MinDurationMinutes  int    `json:"min_duration_minutes"`
	MaxDurationMinutes  int    `json:"max_duration_minutes"`
	AllowWeekendBooking bool   `json:"allow_weekend_booking"`
	WorkStart           string `json:"work_start"`
	WorkEnd             string `json:"work_end"`
	RequireApproval     bool   `json:"require_approval"`
	AutoApproval        bool   `json:"auto_approval"`
}

func NewConfigResponse(cfg reservation.Config) ConfigResponse {
	return ConfigResponse{
		MaxAdvanceDays:      cfg.MaxAdvanceDays,
		MinDurationMinutes:  int(cfg.MinDuration / time.Minute),
		MaxDurationMinutes:  int(cfg.MaxDuration / time.Minute),
		AllowWeekendBooking: cfg.AllowWeekendBooking,
		WorkStart:           cfg.WorkStart,
		WorkEnd:             cfg.WorkEnd,
		RequireApproval:     cfg.RequireApproval,
		AutoApproval:        cfg.AutoApproval,
	}
}

type UpdateConfigRequest struct {
	MaxAdvanceDays      *int    `json:"max_advance_days" binding:"omitempty,min=1"`
	MinDurationMinutes  *int    `json:"min_duration_minutes" binding:"omitempty,min=1"`
	MaxDurationMinutes  *int    `json:"max_duration_minutes" binding:"omitempty,min=1"`
	AllowWeekendBooking *bool   `json:"allow_weekend_booking"`
	WorkStart           *string `json:"work_start" binding:"omitempty,datetime=15:04"`
	WorkEnd             *string `json:"work_end" binding:"omitempty,datetime=15:04"`
	RequireApproval     *bool   `json:"require_approval"`
	AutoApproval        *bool   `json:"auto_approval"`
}

type RoomUsageResponse struct {
	RoomID   string `json:"room_id"`
	RoomName string `json:"room_name"`
	Count    int    `json:"count"`
}

type StatsResponse struct {
	Total    int                 `json:"total"`
	ByStatus map[string]int      `json:"by_status"`
	TopRooms []RoomUsageResponse `json:"top_rooms"`
}

func NewStatsResponse(s *reservation.Stats) StatsResponse {
	byStatus := make(map[string]int, len(s.ByStatus))
	for status, count := range s.ByStatus {
		byStatus[string(status)] = count
	}
	rooms := make([]RoomUsageResponse, len(s.TopRooms))
	for i, r := range s.TopRooms {
		rooms[i] = RoomUsageResponse{RoomID: r.RoomID, RoomName: r.RoomName, Count: r.Count}
	}
	return StatsResponse{Total: s.Total, ByStatus: byStatus, TopRooms: rooms}
}

// ValidationErrorItem is one failed validity check in an error response.
type ValidationErrorItem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newValidationErrorItems(errs []error) []ValidationErrorItem {
	items := make([]ValidationErrorItem, len(errs))
	for i, err := range errs {
		items[i] = ValidationErrorItem{Code: validationCode(err), Message: err.Error()}
	}
	return items
}

func validationCode(err error) string {
	var conflict *reservation.ConflictError
	if errors.As(err, &conflict) {
		return "time_conflict"
	}
	switch {
	case errors.Is(err, reservation.ErrInvalidTimeRange):
		return "invalid_time_range"
	case errors.Is(err, reservation.ErrStartTimePast):
		return "start_time_past"
	case errors.Is(err, reservation.ErrDurationOutOfBounds):
		return "duration_out_of_bounds"
	case errors.Is(err, reservation.ErrAdvanceTooFar):
		return "advance_too_far"
	case errors.Is(err, reservation.ErrWeekendNotAllowed):
		return "weekend_not_allowed"
	case errors.Is(err, reservation.ErrCapacityExceeded):
		return "capacity_exceeded"
	}
	return "invalid"
}
