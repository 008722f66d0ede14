package notification

import (
	"context"

	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

// Notifier delivers in-app notifications. Delivery is best-effort: a failed
// insert is logged and swallowed so it never fails the operation that
// triggered it.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type Service interface {
	Notifier

	ListForUser(ctx context.Context, filter Filter) ([]*Notification, int, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Notify(ctx context.Context, n Notification) {
	if err := s.repo.Insert(ctx, &n); err != nil {
		logger.Get().Error("failed to deliver notification",
			zap.String("user_id", n.UserID),
			zap.String("type", string(n.Type)),
			zap.Error(err),
		)
	}
}

func (s *service) ListForUser(ctx context.Context, filter Filter) ([]*Notification, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.UnreadCount(ctx, userID)
}

func (s *service) MarkRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *service) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}
