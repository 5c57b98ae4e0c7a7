package roles

import (
	"context"
	"log/slog"

	"github.com/meridian-erp/meridian-erp/internal/permissions"
)

// PermissionResolver resolves permission names against the registry.
type PermissionResolver interface {
	FindByName(ctx context.Context, name string) (permissions.Permission, error)
}

// Granter records a permission grant for a user.
type Granter interface {
	Grant(ctx context.Context, userID, permissionID int64) bool
}

// Service provisions role defaults into the grant store.
type Service struct {
	registry PermissionResolver
	grants   Granter
	logger   *slog.Logger
}

// NewService builds Service instance.
func NewService(registry PermissionResolver, grants Granter, logger *slog.Logger) *Service {
	return &Service{registry: registry, grants: grants, logger: logger}
}

// DefaultPermissionsFor returns the default permission names for a role.
func (s *Service) DefaultPermissionsFor(roleName string) []string {
	return DefaultPermissionsFor(roleName)
}

// ProvisionDefaults grants the role's default permissions to a freshly
// created user. Provisioning is best-effort: names missing from the registry
// and failed grants are logged and skipped. Returns the number of grants
// recorded.
func (s *Service) ProvisionDefaults(ctx context.Context, userID int64, roleName string) int {
	granted := 0
	for _, name := range DefaultPermissionsFor(roleName) {
		perm, err := s.registry.FindByName(ctx, name)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("provision role default",
					slog.String("role", roleName),
					slog.String("permission", name),
					slog.Any("error", err))
			}
			continue
		}
		if s.grants.Grant(ctx, userID, perm.ID) {
			granted++
		}
	}
	return granted
}
