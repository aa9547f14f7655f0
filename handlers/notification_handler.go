package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/upb/recruitment-platform/models"
	"github.com/upb/recruitment-platform/services/notifications"
	"github.com/upb/recruitment-platform/utils"
	"go.uber.org/zap"
)

// NewJobRequest announces a published job to candidates
type NewJobRequest struct {
	JobID    string `json:"jobId" validate:"required"`
	JobTitle string `json:"jobTitle" validate:"required"`
	Company  string `json:"company" validate:"required"`
}

// NotificationService defines the notification operations the handler needs
type NotificationService interface {
	NotifyNewJob(ctx context.Context, in notifications.NewJobInput) (int, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notifications NotificationService
	logger        *zap.Logger
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		logger:        logger,
	}
}

// HandleNotifyNewJob handles POST /notify/new-job
func (h *NotificationHandler) HandleNotifyNewJob(w http.ResponseWriter, r *http.Request) {
	var req NewJobRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	jobID, err := utils.ParseUUID(req.JobID, "jobId")
	if err != nil {
		_ = utils.WriteBadRequest(w, err.Error(), nil)
		return
	}

	count, err := h.notifications.NotifyNewJob(r.Context(), notifications.NewJobInput{
		JobID:    jobID,
		JobTitle: req.JobTitle,
		Company:  req.Company,
	})
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteMessage(w, http.StatusOK, fmt.Sprintf("Notifications created for %d candidates.", count))
}

// HandleListForUser handles GET /notifications/user/{userID}
func (h *NotificationHandler) HandleListForUser(w http.ResponseWriter, r *http.Request) {
	list, err := h.notifications.ListForUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, list)
}

// HandleMarkRead handles PUT /notifications/{notificationID}/read
func (h *NotificationHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "notificationID")
	if !ok {
		return
	}

	if err := h.notifications.MarkRead(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteMessage(w, http.StatusOK, "Notification marked as read.")
}
