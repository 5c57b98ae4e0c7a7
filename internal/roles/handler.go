package roles

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the role catalog.
type Handler struct{}

// NewHandler constructs a Handler instance.
func NewHandler() *Handler {
	return &Handler{}
}

// MountRoutes registers role routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
}

type roleDTO struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Defaults    []string `json:"default_permissions"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	catalog := Roles()
	out := make([]roleDTO, len(catalog))
	for i, role := range catalog {
		out[i] = roleDTO{
			Name:        role.Name,
			Description: role.Description,
			Defaults:    DefaultPermissionsFor(role.Name),
		}
	}
	httpx.JSON(w, http.StatusOK, out)
}
