package notifications

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/upb/recruitment-platform/models"
	"github.com/upb/recruitment-platform/repositories"
	"github.com/upb/recruitment-platform/services"
	"go.uber.org/zap"
)

// NewJobInput describes a newly published job to announce
type NewJobInput struct {
	JobID    uuid.UUID
	JobTitle string
	Company  string
}

// NotificationService fans out and serves user notifications
type NotificationService struct {
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
	txMgr         repositories.TransactionManager
	logger        *zap.Logger
}

// NewNotificationService creates a new NotificationService instance
func NewNotificationService(
	users repositories.UserRepository,
	notifications repositories.NotificationRepository,
	txMgr repositories.TransactionManager,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		users:         users,
		notifications: notifications,
		txMgr:         txMgr,
		logger:        logger,
	}
}

// NotifyNewJob creates a NEW_JOB notification for every candidate and
// returns how many were created
func (s *NotificationService) NotifyNewJob(ctx context.Context, in NewJobInput) (int, error) {
	if in.JobID == uuid.Nil || in.JobTitle == "" || in.Company == "" {
		return 0, services.ErrMissingFields
	}

	candidates, err := s.users.ListByRole(ctx, models.RoleCandidate)
	if err != nil {
		return 0, services.WrapInternal("failed to list candidates", err)
	}

	err = services.WithTransaction(ctx, s.txMgr, func(ctx context.Context, tx repositories.Transaction) error {
		for _, candidate := range candidates {
			n := models.NewJobNotification(candidate.ID, in.JobID, in.JobTitle, in.Company)
			if err := s.notifications.Create(ctx, n); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, services.WrapInternal("failed to create notifications", err)
	}

	s.logger.Info("new job announced",
		zap.String("job_id", in.JobID.String()),
		zap.Int("candidates", len(candidates)))
	return len(candidates), nil
}

// ListForUser returns a user's notifications, newest first
func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	list, err := s.notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, services.WrapInternal("failed to list notifications", err)
	}
	return list, nil
}

// MarkRead flags a notification as read
func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	if err := s.notifications.MarkRead(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return services.ErrNotificationNotFound
		}
		return services.WrapInternal("failed to mark notification read", err)
	}
	return nil
}
