package permissions

import (
	"context"
	"log/slog"
)

// Service exposes the permission registry.
type Service struct {
	repo   RepositoryPort
	logger *slog.Logger
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Seed inserts the fixed catalog when the registry is empty. Seeding is
// best-effort: persistence errors are logged and swallowed so startup can
// proceed with whatever catalog is present.
func (s *Service) Seed(ctx context.Context) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		s.log("count permission catalog", err)
		return
	}
	if count > 0 {
		return
	}
	if err := s.repo.Insert(ctx, Catalog()); err != nil {
		s.log("seed permission catalog", err)
	}
}

// FindByName resolves a permission by exact, case-sensitive name.
func (s *Service) FindByName(ctx context.Context, name string) (Permission, error) {
	return s.repo.FindByName(ctx, name)
}

// All returns the full catalog.
func (s *Service) All(ctx context.Context) ([]Permission, error) {
	return s.repo.All(ctx)
}

func (s *Service) log(msg string, err error) {
	if s.logger != nil {
		s.logger.Error(msg, slog.Any("error", err))
	}
}
