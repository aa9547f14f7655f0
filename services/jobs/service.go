package jobs

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/upb/recruitment-platform/models"
	"github.com/upb/recruitment-platform/repositories"
	"github.com/upb/recruitment-platform/services"
	"go.uber.org/zap"
)

// CreateJobInput holds the fields of a new job offer
type CreateJobInput struct {
	Title       string
	Description string
	Company     string
	Location    string
	Skills      []string
}

// JobService manages job offers
type JobService struct {
	jobs   repositories.JobRepository
	logger *zap.Logger
}

// NewJobService creates a new JobService instance
func NewJobService(jobs repositories.JobRepository, logger *zap.Logger) *JobService {
	return &JobService{
		jobs:   jobs,
		logger: logger,
	}
}

func (in CreateJobInput) missingFields() []string {
	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.Description == "" {
		missing = append(missing, "description")
	}
	if in.Company == "" {
		missing = append(missing, "company")
	}
	return missing
}

// Create publishes a job owned by recruiterID
func (s *JobService) Create(ctx context.Context, recruiterID string, in CreateJobInput) (*models.Job, error) {
	if recruiterID == "" {
		return nil, services.ErrUnauthorized
	}
	if missing := in.missingFields(); len(missing) > 0 {
		return nil, services.NewDomainError(services.ErrorTypeValidation, "missing required fields", nil).
			WithDetail("fields", missing)
	}

	job := models.NewJob(recruiterID, in.Title, in.Description, in.Company, in.Location, in.Skills)
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, services.WrapInternal("failed to create job", err)
	}

	s.logger.Info("job created",
		zap.String("job_id", job.ID.String()),
		zap.String("sub", recruiterID))
	return job, nil
}

// List returns every job
func (s *JobService) List(ctx context.Context) ([]*models.Job, error) {
	jobs, err := s.jobs.List(ctx)
	if err != nil {
		return nil, services.WrapInternal("failed to list jobs", err)
	}
	return jobs, nil
}

// ListByRecruiter returns the jobs published by recruiterID
func (s *JobService) ListByRecruiter(ctx context.Context, recruiterID string) ([]*models.Job, error) {
	jobs, err := s.jobs.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, services.WrapInternal("failed to list jobs", err)
	}
	return jobs, nil
}

// Get returns one job
func (s *JobService) Get(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "failed to get job")
	}
	return job, nil
}

// Update applies a partial update to a job
func (s *JobService) Update(ctx context.Context, id uuid.UUID, update models.JobUpdate) (*models.Job, error) {
	if update.IsEmpty() {
		return nil, services.ErrEmptyUpdate
	}

	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "failed to get job")
	}

	job.Apply(update)
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, mapNotFound(err, "failed to update job")
	}

	s.logger.Info("job updated", zap.String("job_id", id.String()))
	return job, nil
}

// Delete removes a job
func (s *JobService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.jobs.Delete(ctx, id); err != nil {
		return mapNotFound(err, "failed to delete job")
	}
	s.logger.Info("job deleted", zap.String("job_id", id.String()))
	return nil
}

func mapNotFound(err error, message string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return services.ErrJobNotFound
	}
	return services.WrapInternal(message, err)
}
