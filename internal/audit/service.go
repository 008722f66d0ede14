package audit

import (
	"context"

	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

// Recorder is the write side of the audit trail. Mutating services depend on
// this narrow interface rather than the full Service.
type Recorder interface {
	Record(ctx context.Context, e Entry)
}

// Service defines business logic for the audit trail.
type Service interface {
	Recorder
	List(ctx context.Context, filter Filter) ([]*Entry, int, error)
}

type service struct {
	repo Repository
}

// NewService creates a new audit service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Record writes an audit entry. Failures are logged and swallowed: the audit
// trail must never fail the operation it describes.
func (s *service) Record(ctx context.Context, e Entry) {
	if err := s.repo.Insert(ctx, &e); err != nil {
		logger.Get().Warn("failed to record audit entry",
			zap.String("action", e.Action),
			zap.String("entity", e.Entity),
			zap.Error(err),
		)
	}
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Entry, int, error) {
	return s.repo.List(ctx, filter)
}
