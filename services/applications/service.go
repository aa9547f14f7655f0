package applications

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/upb/recruitment-platform/models"
	"github.com/upb/recruitment-platform/repositories"
	"github.com/upb/recruitment-platform/services"
	"go.uber.org/zap"
)

// CreateApplicationInput holds a candidate's application to a job
type CreateApplicationInput struct {
	JobID         uuid.UUID
	JobTitle      string
	CandidateID   string
	CandidateName string
	CVURL         string
	MatchScore    float64
}

// ApplicationService manages job applications and tells recruiters about them
type ApplicationService struct {
	jobs          repositories.JobRepository
	applications  repositories.ApplicationRepository
	notifications repositories.NotificationRepository
	txMgr         repositories.TransactionManager
	logger        *zap.Logger
}

// NewApplicationService creates a new ApplicationService instance
func NewApplicationService(
	jobs repositories.JobRepository,
	applications repositories.ApplicationRepository,
	notifications repositories.NotificationRepository,
	txMgr repositories.TransactionManager,
	logger *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		jobs:          jobs,
		applications:  applications,
		notifications: notifications,
		txMgr:         txMgr,
		logger:        logger,
	}
}

// Create stores a pending application and notifies the job's recruiter in
// the same transaction
func (s *ApplicationService) Create(ctx context.Context, in CreateApplicationInput) (*models.Application, error) {
	job, err := s.getJob(ctx, in.JobID)
	if err != nil {
		return nil, err
	}
	if job.RecruiterID == "" {
		return nil, services.ErrJobHasNoRecruiter
	}

	app := models.NewApplication(job, in.JobTitle, models.ApplicationCandidate{
		ID:   in.CandidateID,
		Name: in.CandidateName,
	}, in.CVURL, in.MatchScore)

	err = services.WithTransaction(ctx, s.txMgr, func(ctx context.Context, tx repositories.Transaction) error {
		if err := s.applications.Create(ctx, app); err != nil {
			return err
		}
		return s.notifications.Create(ctx, models.NewApplicationNotification(app))
	})
	if err != nil {
		return nil, services.WrapInternal("failed to create application", err)
	}

	s.logger.Info("application created",
		zap.String("application_id", app.ID.String()),
		zap.String("job_id", job.ID.String()),
		zap.String("candidate_id", in.CandidateID))
	return app, nil
}

// ListByCandidate returns a candidate's applications
func (s *ApplicationService) ListByCandidate(ctx context.Context, candidateID string) ([]*models.Application, error) {
	apps, err := s.applications.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, services.WrapInternal("failed to list applications", err)
	}
	return apps, nil
}

// ListByJob returns the applications to a job that must exist
func (s *ApplicationService) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*models.Application, error) {
	if _, err := s.getJob(ctx, jobID); err != nil {
		return nil, err
	}
	apps, err := s.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, services.WrapInternal("failed to list applications", err)
	}
	return apps, nil
}

// ListByRecruiter returns the applications to a recruiter's jobs
func (s *ApplicationService) ListByRecruiter(ctx context.Context, recruiterID string) ([]*models.Application, error) {
	apps, err := s.applications.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, services.WrapInternal("failed to list applications", err)
	}
	return apps, nil
}

// UpdateStatus moves an application to status
func (s *ApplicationService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	if !status.Valid() {
		return services.NewDomainError(services.ErrorTypeValidation, "invalid status", nil).
			WithDetail("status", string(status)).
			WithDetail("allowed", []string{string(models.ApplicationAccepted), string(models.ApplicationRejected), string(models.ApplicationPending)})
	}
	if err := s.applications.UpdateStatus(ctx, id, status, time.Now().UTC()); err != nil {
		return mapNotFound(err, "failed to update application status")
	}
	s.logger.Info("application status updated",
		zap.String("application_id", id.String()),
		zap.String("status", string(status)))
	return nil
}

// Delete removes an application
func (s *ApplicationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.applications.Delete(ctx, id); err != nil {
		return mapNotFound(err, "failed to delete application")
	}
	s.logger.Info("application deleted", zap.String("application_id", id.String()))
	return nil
}

func (s *ApplicationService) getJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrJobNotFound
		}
		return nil, services.WrapInternal("failed to get job", err)
	}
	return job, nil
}

func mapNotFound(err error, message string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return services.ErrApplicationNotFound
	}
	return services.WrapInternal(message, err)
}
