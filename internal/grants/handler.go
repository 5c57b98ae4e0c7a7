package grants

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// AuditSink records grant administration events.
type AuditSink interface {
	RecordGrantChange(ctx context.Context, actorID int64, action string, userID, permissionID int64)
}

// Handler wires HTTP endpoints for grant administration.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	audit    AuditSink
	validate *validator.Validate
}

// NewHandler constructs a Handler instance. The audit sink may be nil.
func NewHandler(logger *slog.Logger, service *Service, audit AuditSink) *Handler {
	return &Handler{logger: logger, service: service, audit: audit, validate: validator.New()}
}

// MountRoutes registers grant routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{userID}", h.list)
	r.Post("/{userID}", h.grant)
	r.Delete("/{userID}/{permissionID}", h.revoke)
}

type grantRequest struct {
	PermissionID int64 `json:"permission_id" validate:"required,gt=0"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	set, err := h.service.GrantedPermissionIDs(r.Context(), userID)
	if err != nil {
		h.logger.Error("list grants", slog.Int64("user_id", userID), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"user_id": userID, "permission_ids": ids})
}

func (h *Handler) grant(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	var req grantRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if !h.service.Grant(r.Context(), userID, req.PermissionID) {
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "grant was not recorded")
		return
	}
	h.logChange(r, "grant", userID, req.PermissionID)
	httpx.JSON(w, http.StatusOK, map[string]any{"granted": true})
}

func (h *Handler) revoke(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	permissionID, ok := pathID(w, r, "permissionID")
	if !ok {
		return
	}
	if !h.service.Revoke(r.Context(), userID, permissionID) {
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "revoke was not recorded")
		return
	}
	h.logChange(r, "revoke", userID, permissionID)
	httpx.JSON(w, http.StatusOK, map[string]any{"revoked": true})
}

func (h *Handler) logChange(r *http.Request, action string, userID, permissionID int64) {
	var actorID int64
	if actor := shared.OperatorFromContext(r.Context()); actor != nil {
		actorID = actor.UserID
	}
	h.logger.Info(action,
		slog.Int64("user_id", userID),
		slog.Int64("permission_id", permissionID),
		slog.Int64("actor_id", actorID))
	if h.audit != nil {
		h.audit.RecordGrantChange(r.Context(), actorID, action, userID, permissionID)
	}
}

func pathID(w http.ResponseWriter, r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", key+" must be a positive integer")
		return 0, false
	}
	return id, true
}
