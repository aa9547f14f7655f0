package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/upb/recruitment-platform/models"
	"github.com/upb/recruitment-platform/services/applications"
	"github.com/upb/recruitment-platform/utils"
	"go.uber.org/zap"
)

// CreateApplicationRequest represents a candidate applying to a job
type CreateApplicationRequest struct {
	JobID         string   `json:"job_id" validate:"required"`
	JobTitle      string   `json:"job_title" validate:"required"`
	CandidateID   string   `json:"candidate_id" validate:"required"`
	CandidateName string   `json:"candidate_name" validate:"required"`
	CVURL         string   `json:"cv_url" validate:"required"`
	MatchScore    *float64 `json:"match_score,omitempty"`
}

// UpdateStatusRequest represents an application status change
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// StatusResponse acknowledges a status change
type StatusResponse struct {
	Message string                   `json:"message"`
	Status  models.ApplicationStatus `json:"status"`
}

// ApplicationService defines the application operations the handler needs
type ApplicationService interface {
	Create(ctx context.Context, in applications.CreateApplicationInput) (*models.Application, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]*models.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]*models.Application, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]*models.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ApplicationHandler handles job application HTTP requests
type ApplicationHandler struct {
	applications ApplicationService
	logger       *zap.Logger
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(applications ApplicationService, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		applications: applications,
		logger:       logger,
	}
}

// HandleCreate handles POST /applications
func (h *ApplicationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateApplicationRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	jobID, err := utils.ParseUUID(req.JobID, "job_id")
	if err != nil {
		_ = utils.WriteBadRequest(w, err.Error(), nil)
		return
	}

	var score float64
	if req.MatchScore != nil {
		score = *req.MatchScore
	}

	app, err := h.applications.Create(r.Context(), applications.CreateApplicationInput{
		JobID:         jobID,
		JobTitle:      req.JobTitle,
		CandidateID:   req.CandidateID,
		CandidateName: req.CandidateName,
		CVURL:         req.CVURL,
		MatchScore:    score,
	})
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteCreated(w, app)
}

// HandleListByCandidate handles GET /applications/candidate/{candidateID}
func (h *ApplicationHandler) HandleListByCandidate(w http.ResponseWriter, r *http.Request) {
	list, err := h.applications.ListByCandidate(r.Context(), chi.URLParam(r, "candidateID"))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, list)
}

// HandleListByJob handles GET /applications/job/{jobID}
func (h *ApplicationHandler) HandleListByJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := uuidParam(w, r, "jobID")
	if !ok {
		return
	}

	list, err := h.applications.ListByJob(r.Context(), jobID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, list)
}

// HandleListByRecruiter handles GET /applications/recruiter/{recruiterID}
func (h *ApplicationHandler) HandleListByRecruiter(w http.ResponseWriter, r *http.Request) {
	list, err := h.applications.ListByRecruiter(r.Context(), chi.URLParam(r, "recruiterID"))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, list)
}

// HandleUpdateStatus handles PUT /applications/{applicationID}/status
func (h *ApplicationHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "applicationID")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	status := models.ApplicationStatus(req.Status)
	if err := h.applications.UpdateStatus(r.Context(), id, status); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, StatusResponse{Message: "Status updated", Status: status})
}

// HandleDelete handles DELETE /applications/{applicationID}
func (h *ApplicationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "applicationID")
	if !ok {
		return
	}

	if err := h.applications.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteMessage(w, http.StatusOK, "Application deleted")
}
