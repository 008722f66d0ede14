package file

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "photo not found")
	ErrTooLarge        = apperror.New(http.StatusBadRequest, "file exceeds the maximum allowed size")
	ErrUnsupportedType = apperror.New(http.StatusBadRequest, "unsupported file type")
)

// MaxPhotoSize caps room photo uploads at 5 MiB.
const MaxPhotoSize = 5 << 20

// RoomPhoto is an uploaded photo of a meeting room. Path and ThumbnailPath
// are storage-relative; clients never see them directly.
type RoomPhoto struct {
	ID            string
	CompanyID     string
	RoomID        string
	FileName      string
	ContentType   string
	SizeBytes     int64
	Path          string
	ThumbnailPath string
	CreatedAt     time.Time
}
