package grants

import (
	"context"
	"log/slog"
)

// Service is the source of truth consulted on every authorization check for
// non-admin users.
type Service struct {
	repo   RepositoryPort
	cache  *Cache
	logger *slog.Logger
}

// NewService builds Service instance. The cache may be nil.
func NewService(repo RepositoryPort, cache *Cache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// Grant records a (user, permission) association. Idempotent. Persistence
// failures are logged and reported as false; there is no retry.
func (s *Service) Grant(ctx context.Context, userID, permissionID int64) bool {
	if err := s.repo.Insert(ctx, userID, permissionID); err != nil {
		s.log("grant permission", userID, permissionID, err)
		return false
	}
	s.cache.Invalidate(ctx, userID)
	return true
}

// Revoke removes a (user, permission) association. Idempotent. Persistence
// failures are logged and reported as false.
func (s *Service) Revoke(ctx context.Context, userID, permissionID int64) bool {
	if err := s.repo.Delete(ctx, userID, permissionID); err != nil {
		s.log("revoke permission", userID, permissionID, err)
		return false
	}
	s.cache.Invalidate(ctx, userID)
	return true
}

// GrantedPermissionIDs returns the current grant set for a user. A user with
// no grants yields an empty set, not an error.
func (s *Service) GrantedPermissionIDs(ctx context.Context, userID int64) (map[int64]struct{}, error) {
	if ids, ok := s.cache.Get(ctx, userID); ok {
		return toSet(ids), nil
	}
	ids, err := s.repo.ListPermissionIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, userID, ids)
	return toSet(ids), nil
}

// WarmCache re-primes the cached grant set for a user from the database.
func (s *Service) WarmCache(ctx context.Context, userID int64) error {
	ids, err := s.repo.ListPermissionIDs(ctx, userID)
	if err != nil {
		return err
	}
	s.cache.Set(ctx, userID, ids)
	return nil
}

func toSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s *Service) log(msg string, userID, permissionID int64, err error) {
	if s.logger != nil {
		s.logger.Error(msg,
			slog.Int64("user_id", userID),
			slog.Int64("permission_id", permissionID),
			slog.Any("error", err))
	}
}
