package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/meridian-erp/meridian-erp/internal/audit"
	"github.com/meridian-erp/meridian-erp/internal/authz"
	"github.com/meridian-erp/meridian-erp/internal/grants"
	"github.com/meridian-erp/meridian-erp/internal/permissions"
	"github.com/meridian-erp/meridian-erp/internal/roles"
	"github.com/meridian-erp/meridian-erp/internal/session"
	"github.com/meridian-erp/meridian-erp/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	SessionManager     *session.Manager
	SessionHandler     *session.Handler
	UsersHandler       *users.Handler
	GrantsHandler      *grants.Handler
	PermissionsHandler *permissions.Handler
	RolesHandler       *roles.Handler
	AuthzHandler       *authz.Handler
	AuditHandler       *audit.Handler
	AuthzMiddleware    authz.Middleware
}

// NewRouter constructs the chi.Router with Meridian defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Session lifecycle is reachable without a session: login must be.
	r.Route("/session", params.SessionHandler.MountRoutes)

	// Everything else requires a live, validated session.
	r.Group(func(r chi.Router) {
		r.Use(session.Middleware(params.SessionManager))

		r.Route("/authz", params.AuthzHandler.MountRoutes)

		r.Route("/users", func(r chi.Router) {
			params.UsersHandler.MountRoutes(r, params.AuthzMiddleware)
		})
		r.Route("/grants", func(r chi.Router) {
			r.Use(params.AuthzMiddleware.Require(permissions.PermGrantsEdit))
			params.GrantsHandler.MountRoutes(r)
		})
		r.Route("/permissions", func(r chi.Router) {
			r.Use(params.AuthzMiddleware.Require(permissions.PermPermissionsView))
			params.PermissionsHandler.MountRoutes(r)
		})
		r.Route("/roles", func(r chi.Router) {
			r.Use(params.AuthzMiddleware.Require(permissions.PermPermissionsView))
			params.RolesHandler.MountRoutes(r)
		})
		r.Route("/audit", func(r chi.Router) {
			r.Use(params.AuthzMiddleware.Require(permissions.PermAuditView))
			params.AuditHandler.MountRoutes(r)
		})
	})

	return r
}
