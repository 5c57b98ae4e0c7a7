package authz

import (
	"log/slog"
	"net/http"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Middleware guards HTTP routes with permission checks.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// Require ensures the active session holds the named permission.
func (m Middleware) Require(permissionName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !m.Service.HasPermission(r.Context(), permissionName) {
				if m.Logger != nil {
					op := shared.OperatorFromContext(r.Context())
					attrs := []any{
						slog.String("permission", permissionName),
						slog.String("path", r.URL.Path),
					}
					if op != nil {
						attrs = append(attrs, slog.Int64("user_id", op.UserID))
					}
					m.Logger.Warn("permission denied", attrs...)
				}
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "missing permission "+permissionName)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
