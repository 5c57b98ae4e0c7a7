package audit

import (
	"context"
	"log/slog"
	"time"
)

// Service records and reads the auth trail. Recording is fire-and-forget:
// a broken trail must never block a login or a grant change.
type Service struct {
	repo   RepositoryPort
	logger *slog.Logger
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// RecordAuthEvent stores a session lifecycle event.
func (s *Service) RecordAuthEvent(ctx context.Context, action string, userID int64, username string) {
	s.record(ctx, Event{Action: action, UserID: userID, Username: username, At: time.Now()})
}

// RecordGrantChange stores a grant administration event.
func (s *Service) RecordGrantChange(ctx context.Context, actorID int64, action string, userID, permissionID int64) {
	s.record(ctx, Event{
		Action:       action,
		ActorID:      actorID,
		UserID:       userID,
		PermissionID: permissionID,
		At:           time.Now(),
	})
}

// Recent returns the newest events. Limit is clamped to [1, 200].
func (s *Service) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return s.repo.Recent(ctx, limit)
}

func (s *Service) record(ctx context.Context, e Event) {
	if err := s.repo.Insert(ctx, e); err != nil && s.logger != nil {
		s.logger.Warn("record auth event", slog.String("action", e.Action), slog.Any("error", err))
	}
}
