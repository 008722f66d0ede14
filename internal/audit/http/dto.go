package http

import (
	"time"

	"github.com/nekogravitycat/meeting-room-backend/internal/audit"
	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/request"
)

type ListEntriesRequest struct {
	request.ListParams
	UserID string     `form:"user_id" binding:"omitempty,uuid"`
	Action string     `form:"action" binding:"omitempty,oneof=create update delete login logout"`
	Entity string     `form:"entity"`
	From   *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To     *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

type EntryResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Action      string    `json:"action"`
	Entity      string    `json:"entity"`
	EntityID    string    `json:"entity_id"`
	Description string    `json:"description"`
	IP          string    `json:"ip_address,omitempty"`
	UserAgent   string    `json:"user_agent,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewEntryResponse(e *audit.Entry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Action:      e.Action,
		Entity:      e.Entity,
		EntityID:    e.EntityID,
		Description: e.Description,
		IP:          e.IP,
		UserAgent:   e.UserAgent,
		Timestamp:   e.Timestamp,
	}
}
