package applications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/recruitment-platform/models"
	"github.com/upb/recruitment-platform/repositories"
	"github.com/upb/recruitment-platform/repositories/mocks"
	"github.com/upb/recruitment-platform/services"
	"go.uber.org/zap"
)

type txKey struct{}

type fixture struct {
	jobs          *mocks.JobRepository
	applications  *mocks.ApplicationRepository
	notifications *mocks.NotificationRepository
	txMgr         *mocks.TransactionManager
	tx            *mocks.Transaction
	txCtx         context.Context
	svc           *ApplicationService
}

func newFixture() *fixture {
	f := &fixture{
		jobs:          new(mocks.JobRepository),
		applications:  new(mocks.ApplicationRepository),
		notifications: new(mocks.NotificationRepository),
		txCtx:         context.WithValue(context.Background(), txKey{}, true),
	}
	f.txMgr, f.tx = mocks.ExpectTransaction(f.txCtx)
	f.svc = NewApplicationService(f.jobs, f.applications, f.notifications, f.txMgr, zap.NewNop())
	return f
}

func TestApplicationService_Create(t *testing.T) {
	ctx := context.Background()
	job := &models.Job{ID: uuid.New(), Title: "Go dev", Company: "UPB", RecruiterID: "rec-1"}
	input := CreateApplicationInput{
		JobID:         job.ID,
		JobTitle:      "Go dev",
		CandidateID:   "cand-1",
		CandidateName: "Ana",
		CVURL:         "/cv/view/abc",
		MatchScore:    0.8,
	}

	t.Run("stores application and notifies recruiter in one transaction", func(t *testing.T) {
		f := newFixture()
		f.jobs.On("GetByID", ctx, job.ID).Return(job, nil)
		f.applications.On("Create", f.txCtx, mock.MatchedBy(func(a *models.Application) bool {
			return a.Status == models.ApplicationPending && a.Job.RecruiterID == "rec-1" && a.Candidate.Name == "Ana"
		})).Return(nil)
		f.notifications.On("Create", f.txCtx, mock.MatchedBy(func(n *models.Notification) bool {
			return n.UserID == "rec-1" && n.Type == models.NotificationNewApplication && n.CandidateName == "Ana"
		})).Return(nil)
		f.tx.On("Commit").Return(nil)

		app, err := f.svc.Create(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, 0.8, app.MatchScore)
		assert.Nil(t, app.UpdatedAt)
		f.applications.AssertExpectations(t)
		f.notifications.AssertExpectations(t)
		f.tx.AssertExpectations(t)
	})

	t.Run("notification failure rolls back", func(t *testing.T) {
		f := newFixture()
		f.jobs.On("GetByID", ctx, job.ID).Return(job, nil)
		f.applications.On("Create", f.txCtx, mock.Anything).Return(nil)
		f.notifications.On("Create", f.txCtx, mock.Anything).Return(errors.New("insert failed"))
		f.tx.On("Rollback").Return(nil)

		_, err := f.svc.Create(ctx, input)

		assert.True(t, services.IsInternalError(err))
		f.tx.AssertCalled(t, "Rollback")
		f.tx.AssertNotCalled(t, "Commit")
	})

	t.Run("missing job", func(t *testing.T) {
		f := newFixture()
		f.jobs.On("GetByID", ctx, job.ID).Return(nil, repositories.ErrNotFound)

		_, err := f.svc.Create(ctx, input)

		assert.ErrorIs(t, err, services.ErrJobNotFound)
		f.txMgr.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("job without recruiter", func(t *testing.T) {
		f := newFixture()
		f.jobs.On("GetByID", ctx, job.ID).Return(&models.Job{ID: job.ID}, nil)

		_, err := f.svc.Create(ctx, input)

		assert.ErrorIs(t, err, services.ErrJobHasNoRecruiter)
	})
}

func TestApplicationService_ListByJob(t *testing.T) {
	ctx := context.Background()
	jobID := uuid.New()

	t.Run("returns the job's applications", func(t *testing.T) {
		f := newFixture()
		f.jobs.On("GetByID", ctx, jobID).Return(&models.Job{ID: jobID}, nil)
		f.applications.On("ListByJob", ctx, jobID).Return([]*models.Application{{ID: uuid.New()}}, nil)

		apps, err := f.svc.ListByJob(ctx, jobID)

		require.NoError(t, err)
		assert.Len(t, apps, 1)
	})

	t.Run("missing job", func(t *testing.T) {
		f := newFixture()
		f.jobs.On("GetByID", ctx, jobID).Return(nil, repositories.ErrNotFound)

		_, err := f.svc.ListByJob(ctx, jobID)

		assert.ErrorIs(t, err, services.ErrJobNotFound)
		f.applications.AssertNotCalled(t, "ListByJob", mock.Anything, mock.Anything)
	})
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("sets status and timestamp", func(t *testing.T) {
		f := newFixture()
		f.applications.On("UpdateStatus", ctx, id, models.ApplicationAccepted, mock.AnythingOfType("time.Time")).Return(nil)

		require.NoError(t, f.svc.UpdateStatus(ctx, id, models.ApplicationAccepted))
		f.applications.AssertExpectations(t)
	})

	t.Run("invalid status", func(t *testing.T) {
		f := newFixture()

		err := f.svc.UpdateStatus(ctx, id, models.ApplicationStatus("hired"))

		assert.ErrorIs(t, err, services.ErrInvalidStatus)
		assert.Equal(t, "hired", services.GetErrorDetails(err)["status"])
	})

	t.Run("missing application", func(t *testing.T) {
		f := newFixture()
		f.applications.On("UpdateStatus", ctx, id, models.ApplicationRejected, mock.Anything).Return(repositories.ErrNotFound)

		err := f.svc.UpdateStatus(ctx, id, models.ApplicationRejected)

		assert.ErrorIs(t, err, services.ErrApplicationNotFound)
	})
}

func TestApplicationService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	f := newFixture()
	f.applications.On("Delete", ctx, id).Return(repositories.ErrNotFound)

	assert.ErrorIs(t, f.svc.Delete(ctx, id), services.ErrApplicationNotFound)
}

func TestApplicationService_ListByCandidateAndRecruiter(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	f := newFixture()
	f.applications.On("ListByCandidate", ctx, "cand-1").Return([]*models.Application{{ID: uuid.New(), CreatedAt: now}}, nil)
	f.applications.On("ListByRecruiter", ctx, "rec-1").Return(nil, errors.New("boom"))

	apps, err := f.svc.ListByCandidate(ctx, "cand-1")
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	_, err = f.svc.ListByRecruiter(ctx, "rec-1")
	assert.True(t, services.IsInternalError(err))
}
