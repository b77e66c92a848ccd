package notify

import (
	"context"

	"github.com/rs/zerolog/log"
)

type Service interface {
	// Notify records an in-app notification. Best effort: failures are
	// logged so callers never fail because of it.
	Notify(ctx context.Context, userID, message string)
	List(ctx context.Context, filter Filter) ([]*Notification, int, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Notify(ctx context.Context, userID, message string) {
	n := &Notification{UserID: userID, Message: message}
	if err := s.repo.Create(ctx, n); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to record notification")
	}
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Notification, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) MarkRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *service) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}
