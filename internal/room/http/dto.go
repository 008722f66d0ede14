package http

import (
	"time"

	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/request"
	"github.com/nekogravitycat/meeting-room-backend/internal/room"
)

// RoomTag is the minimal room reference embedded in other responses.
type RoomTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RoomResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity"`
	IsAvailable bool      `json:"is_available"`
	Remarks     string    `json:"remarks,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewRoomResponse(r *room.Room) RoomResponse {
	return RoomResponse{
		ID:          r.ID,
		CompanyID:   r.CompanyID,
		Name:        r.Name,
		Location:    r.Location,
		Capacity:    r.Capacity,
		IsAvailable: r.IsAvailable,
		Remarks:     r.Remarks,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type ListRoomsRequest struct {
	request.ListParams
	Search      string `form:"search"`
	IsAvailable *bool  `form:"is_available"`
}

type CreateRoomRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
	Remarks  string `json:"remarks"`
}

type UpdateRoomRequest struct {
	Name        *string `json:"name"`
	Location    *string `json:"location"`
	Capacity    *int    `json:"capacity" binding:"omitempty,min=1"`
	IsAvailable *bool   `json:"is_available"`
	Remarks     *string `json:"remarks"`
}
