package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/upb/recruitment-platform/middleware"
	"github.com/upb/recruitment-platform/models"
	"github.com/upb/recruitment-platform/services/jobs"
	"github.com/upb/recruitment-platform/utils"
	"go.uber.org/zap"
)

// CreateJobRequest represents a request to publish a job
type CreateJobRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Company     string   `json:"company" validate:"required"`
	Location    string   `json:"location"`
	Skills      []string `json:"skills"`
}

// UpdateJobRequest represents a partial job update; absent fields are kept
type UpdateJobRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Company     *string   `json:"company,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Skills      *[]string `json:"skills,omitempty"`
}

// JobService defines the job operations the handler needs
type JobService interface {
	Create(ctx context.Context, recruiterID string, in jobs.CreateJobInput) (*models.Job, error)
	List(ctx context.Context) ([]*models.Job, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]*models.Job, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Job, error)
	Update(ctx context.Context, id uuid.UUID, update models.JobUpdate) (*models.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// JobHandler handles job offer HTTP requests
type JobHandler struct {
	jobs   JobService
	logger *zap.Logger
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobs JobService, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		jobs:   jobs,
		logger: logger,
	}
}

// HandleCreate handles POST /jobs
func (h *JobHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subject := middleware.SubjectFromContext(ctx)
	if subject == "" {
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req CreateJobRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	job, err := h.jobs.Create(ctx, subject, jobs.CreateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		Skills:      req.Skills,
	})
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteCreated(w, job)
}

// HandleList handles GET /jobs
func (h *JobHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.jobs.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, list)
}

// HandleListByRecruiter handles GET /jobs/recruiter/{recruiterID}
func (h *JobHandler) HandleListByRecruiter(w http.ResponseWriter, r *http.Request) {
	list, err := h.jobs.ListByRecruiter(r.Context(), chi.URLParam(r, "recruiterID"))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, list)
}

// HandleGet handles GET /jobs/{jobID}
func (h *JobHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "jobID")
	if !ok {
		return
	}

	job, err := h.jobs.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, job)
}

// HandleUpdate handles PUT /jobs/{jobID}
func (h *JobHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "jobID")
	if !ok {
		return
	}

	var req UpdateJobRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	_, err := h.jobs.Update(r.Context(), id, models.JobUpdate{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		Skills:      req.Skills,
	})
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteMessage(w, http.StatusOK, "Job updated")
}

// HandleDelete handles DELETE /jobs/{jobID}
func (h *JobHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "jobID")
	if !ok {
		return
	}

	if err := h.jobs.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteMessage(w, http.StatusOK, "Job deleted")
}
