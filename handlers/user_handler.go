package handlers

import (
	"context"
	"net/http"

	"github.com/upb/recruitment-platform/middleware"
	"github.com/upb/recruitment-platform/models"
	"github.com/upb/recruitment-platform/services/users"
	"github.com/upb/recruitment-platform/utils"
	"go.uber.org/zap"
)

// SyncProfileRequest carries the profile fields a caller may set on itself
type SyncProfileRequest struct {
	DisplayName string `json:"display_name" validate:"omitempty,max=255"`
}

// UserService defines the user operations the handler needs
type UserService interface {
	Get(ctx context.Context, subject string) (*models.User, error)
	Sync(ctx context.Context, in users.SyncInput) (*models.User, error)
}

// UserHandler serves the caller's own user record
type UserHandler struct {
	users  UserService
	logger *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// HandleGetMe handles GET /users/me
func (h *UserHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return
	}

	user, err := h.users.Get(r.Context(), identity.Subject)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, user)
}

// HandleSyncMe handles PUT /users/me: records the caller's identity in the
// users table
func (h *UserHandler) HandleSyncMe(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req SyncProfileRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	user, err := h.users.Sync(r.Context(), users.SyncInput{
		Subject:     identity.Subject,
		Email:       identity.Email,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, user)
}
