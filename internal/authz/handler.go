package authz

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

// Handler exposes authorization lookups to the application shell.
type Handler struct {
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// MountRoutes registers authz routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/modules", h.modules)
	r.Get("/check", h.check)
}

type moduleAccess struct {
	ModuleInfo
	Allowed bool `json:"allowed"`
}

// modules returns every module with the caller's access decision, used by
// the shell to build its navigation.
func (h *Handler) modules(w http.ResponseWriter, r *http.Request) {
	all := Modules()
	out := make([]moduleAccess, len(all))
	for i, mod := range all {
		out[i] = moduleAccess{
			ModuleInfo: mod,
			Allowed:    h.service.CanAccessModule(r.Context(), mod.Name),
		}
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("permission")
	if name == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "permission query parameter required")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"permission": name,
		"allowed":    h.service.HasPermission(r.Context(), name),
	})
}
