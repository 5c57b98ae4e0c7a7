package session

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Handler wires HTTP endpoints for the session lifecycle.
type Handler struct {
	logger   *slog.Logger
	manager  *Manager
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, manager *Manager) *Handler {
	return &Handler{logger: logger, manager: manager, validate: validator.New()}
}

// MountRoutes registers session routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Post("/extend", h.extend)
	r.Get("/", h.status)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type statusResponse struct {
	LoggedIn  bool      `json:"logged_in"`
	SessionID string    `json:"session_id,omitempty"`
	StartedAt time.Time `json:"started_at,omitzero"`
	User      *userInfo `json:"user,omitempty"`
}

type userInfo struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	IsAdmin     bool   `json:"is_admin"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if !h.manager.Login(r.Context(), req.Username, req.Password) {
		// One message for every failure cause: do not leak which usernames exist.
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
		return
	}
	httpx.JSON(w, http.StatusOK, h.currentStatus())
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.manager.Logout(r.Context())
	httpx.JSON(w, http.StatusOK, statusResponse{LoggedIn: false})
}

func (h *Handler) extend(w http.ResponseWriter, r *http.Request) {
	if !h.manager.Validate(r.Context()) {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "no active session")
		return
	}
	h.manager.Extend()
	httpx.JSON(w, http.StatusOK, h.currentStatus())
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	if !h.manager.Validate(r.Context()) {
		httpx.JSON(w, http.StatusOK, statusResponse{LoggedIn: false})
		return
	}
	httpx.JSON(w, http.StatusOK, h.currentStatus())
}

func (h *Handler) currentStatus() statusResponse {
	user := h.manager.CurrentUser()
	if user == nil {
		return statusResponse{LoggedIn: false}
	}
	return statusResponse{
		LoggedIn:  true,
		SessionID: h.manager.SessionID(),
		StartedAt: h.manager.StartedAt(),
		User: &userInfo{
			ID:          user.ID,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			IsAdmin:     user.IsAdmin,
		},
	}
}

// Middleware validates the session and attaches the operator to the request
// context. Requests without a valid session are rejected. Validation and the
// user fetch happen in one critical section so a logout racing the request
// cannot leave the middleware holding a nil user.
func Middleware(manager *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := manager.ValidatedUser(r.Context())
			if user == nil {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "no active session")
				return
			}
			ctx := shared.ContextWithOperator(r.Context(), &shared.Operator{
				UserID:   user.ID,
				Username: user.Username,
				IsAdmin:  user.IsAdmin,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
