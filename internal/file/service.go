package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/logger"
	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/storage"
	"go.uber.org/zap"
)

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadRequest carries an incoming room photo.
type UploadRequest struct {
	CompanyID   string
	RoomID      string
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type Service interface {
	// Upload stores the photo and a 400x300 thumbnail, then records metadata.
	Upload(ctx context.Context, req UploadRequest) (*RoomPhoto, error)
	GetByID(ctx context.Context, id string) (*RoomPhoto, error)
	ListForRoom(ctx context.Context, roomID string) ([]*RoomPhoto, error)
	// Open returns the stored content; thumbnail selects the preview variant.
	Open(ctx context.Context, photo *RoomPhoto, thumbnail bool) (io.ReadCloser, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo      Repository
	store     storage.Storage
	processor *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage, processor *storage.ImageProcessor) Service {
	return &service{repo: repo, store: store, processor: processor}
}

func (s *service) Upload(ctx context.Context, req UploadRequest) (*RoomPhoto, error) {
	if req.Size > MaxPhotoSize {
		return nil, ErrTooLarge
	}
	ext, ok := allowedContentTypes[req.ContentType]
	if !ok {
		return nil, ErrUnsupportedType
	}

	// Buffer once: the content is read twice, for the original and the thumbnail.
	data, err := io.ReadAll(io.LimitReader(req.Content, MaxPhotoSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload failed: %w", err)
	}
	if len(data) > MaxPhotoSize {
		return nil, ErrTooLarge
	}

	name := uuid.New().String()
	photo := &RoomPhoto{
		CompanyID:     req.CompanyID,
		RoomID:        req.RoomID,
		FileName:      req.FileName,
		ContentType:   req.ContentType,
		SizeBytes:     int64(len(data)),
		Path:          path.Join("rooms", req.RoomID, name+ext),
		ThumbnailPath: path.Join("rooms", req.RoomID, name+"_thumb.jpg"),
	}

	thumb, err := s.processor.GenerateThumbnail(bytes.NewReader(data), 400, 300)
	if err != nil {
		return nil, ErrUnsupportedType
	}

	if err := s.store.Save(ctx, photo.Path, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("store photo failed: %w", err)
	}
	if err := s.store.Save(ctx, photo.ThumbnailPath, thumb); err != nil {
		return nil, fmt.Errorf("store thumbnail failed: %w", err)
	}

	if err := s.repo.Insert(ctx, photo); err != nil {
		s.removeStored(ctx, photo)
		return nil, err
	}
	return photo, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*RoomPhoto, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListForRoom(ctx context.Context, roomID string) ([]*RoomPhoto, error) {
	return s.repo.ListForRoom(ctx, roomID)
}

func (s *service) Open(ctx context.Context, photo *RoomPhoto, thumbnail bool) (io.ReadCloser, error) {
	p := photo.Path
	if thumbnail {
		p = photo.ThumbnailPath
	}
	rc, err := s.store.Get(ctx, p)
	if err != nil {
		return nil, ErrNotFound
	}
	return rc, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	photo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeStored(ctx, photo)
	return nil
}

func (s *service) removeStored(ctx context.Context, photo *RoomPhoto) {
	for _, p := range []string{photo.Path, photo.ThumbnailPath} {
		if err := s.store.Delete(ctx, p); err != nil {
			logger.Get().Warn("failed to remove stored photo", zap.String("path", p), zap.Error(err))
		}
	}
}
