package http

import (
	"time"

	"github.com/nekogravitycat/meeting-room-backend/internal/file"
)

type PhotoResponse struct {
	ID          string    `json:"id"`
	RoomID      string    `json:"room_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewPhotoResponse(p *file.RoomPhoto) PhotoResponse {
	return PhotoResponse{
		ID:          p.ID,
		RoomID:      p.RoomID,
		FileName:    p.FileName,
		ContentType: p.ContentType,
		SizeBytes:   p.SizeBytes,
		CreatedAt:   p.CreatedAt,
	}
}
