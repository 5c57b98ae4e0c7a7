package authz

import (
	"context"
	"log/slog"

	"github.com/meridian-erp/meridian-erp/internal/permissions"
	"github.com/meridian-erp/meridian-erp/internal/users"
)

// SessionSource exposes the active operator, nil when logged out.
type SessionSource interface {
	CurrentUser() *users.User
}

// PermissionResolver resolves permission names against the registry.
type PermissionResolver interface {
	FindByName(ctx context.Context, name string) (permissions.Permission, error)
}

// GrantSource returns the granted permission set for a user.
type GrantSource interface {
	GrantedPermissionIDs(ctx context.Context, userID int64) (map[int64]struct{}, error)
}

// Service is the single authorization decision point consulted before every
// sensitive operation.
type Service struct {
	sessions SessionSource
	registry PermissionResolver
	grants   GrantSource
	logger   *slog.Logger
}

// NewService builds Service instance.
func NewService(sessions SessionSource, registry PermissionResolver, grants GrantSource, logger *slog.Logger) *Service {
	return &Service{sessions: sessions, registry: registry, grants: grants, logger: logger}
}

// HasPermission reports whether the active session may perform the named
// capability. No session means no.
func (s *Service) HasPermission(ctx context.Context, permissionName string) bool {
	user := s.sessions.CurrentUser()
	if user == nil {
		return false
	}
	return s.HasPermissionFor(ctx, user, permissionName)
}

// HasPermissionFor runs the same decision against an explicit user, used by
// administrative screens managing other users. Admin accounts bypass the
// grant table entirely; for everyone else the name must resolve in the
// registry and the grant set must contain it. Lookup failures deny.
func (s *Service) HasPermissionFor(ctx context.Context, user *users.User, permissionName string) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin {
		return true
	}
	perm, err := s.registry.FindByName(ctx, permissionName)
	if err != nil {
		return false
	}
	granted, err := s.grants.GrantedPermissionIDs(ctx, user.ID)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("load grant set", slog.Int64("user_id", user.ID), slog.Any("error", err))
		}
		return false
	}
	_, ok := granted[perm.ID]
	return ok
}

// CanAccessModule reports whether the active session may open the named
// application module. Unknown modules are denied.
func (s *Service) CanAccessModule(ctx context.Context, moduleName string) bool {
	perm, ok := moduleGates[moduleName]
	if !ok {
		return false
	}
	return s.HasPermission(ctx, perm)
}
