package jobs

import (
	"context"
	"errors"
	"testing"

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

func strPtr(s string) *string { return &s }

func TestJobService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the job under the caller", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		repo.On("Create", ctx, mock.MatchedBy(func(j *models.Job) bool {
			return j.RecruiterID == "sub-1" && j.Title == "Go dev" && len(j.Skills) == 0
		})).Return(nil)

		job, err := NewJobService(repo, zap.NewNop()).Create(ctx, "sub-1", CreateJobInput{
			Title:       "Go dev",
			Description: "Build services",
			Company:     "UPB",
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, job.ID)
		assert.Equal(t, []string{}, job.Skills)
		repo.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		repo := new(mocks.JobRepository)

		_, err := NewJobService(repo, zap.NewNop()).Create(ctx, "sub-1", CreateJobInput{Title: "Go dev"})

		assert.ErrorIs(t, err, services.ErrMissingFields)
		assert.Equal(t, []string{"description", "company"}, services.GetErrorDetails(err)["fields"])
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("repository failure is internal", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		repo.On("Create", ctx, mock.Anything).Return(errors.New("connection reset"))

		_, err := NewJobService(repo, zap.NewNop()).Create(ctx, "sub-1", CreateJobInput{
			Title: "Go dev", Description: "d", Company: "c",
		})

		assert.True(t, services.IsInternalError(err))
	})
}

func TestJobService_Get(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		repo.On("GetByID", ctx, id).Return(&models.Job{ID: id, Title: "Go dev"}, nil)

		job, err := NewJobService(repo, zap.NewNop()).Get(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, "Go dev", job.Title)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		repo.On("GetByID", ctx, id).Return(nil, repositories.ErrNotFound)

		_, err := NewJobService(repo, zap.NewNop()).Get(ctx, id)

		assert.ErrorIs(t, err, services.ErrJobNotFound)
	})
}

func TestJobService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("applies the provided fields", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		repo.On("GetByID", ctx, id).Return(&models.Job{ID: id, Title: "Old", Company: "UPB"}, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(j *models.Job) bool {
			return j.Title == "New" && j.Company == "UPB"
		})).Return(nil)

		job, err := NewJobService(repo, zap.NewNop()).Update(ctx, id, models.JobUpdate{Title: strPtr("New")})

		require.NoError(t, err)
		assert.Equal(t, "New", job.Title)
		repo.AssertExpectations(t)
	})

	t.Run("empty update", func(t *testing.T) {
		repo := new(mocks.JobRepository)

		_, err := NewJobService(repo, zap.NewNop()).Update(ctx, id, models.JobUpdate{})

		assert.ErrorIs(t, err, services.ErrEmptyUpdate)
	})

	t.Run("missing job", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		repo.On("GetByID", ctx, id).Return(nil, repositories.ErrNotFound)

		_, err := NewJobService(repo, zap.NewNop()).Update(ctx, id, models.JobUpdate{Title: strPtr("New")})

		assert.ErrorIs(t, err, services.ErrJobNotFound)
	})
}

func TestJobService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	repo := new(mocks.JobRepository)
	repo.On("Delete", ctx, id).Return(repositories.ErrNotFound).Once()
	repo.On("Delete", ctx, id).Return(nil).Once()
	svc := NewJobService(repo, zap.NewNop())

	assert.ErrorIs(t, svc.Delete(ctx, id), services.ErrJobNotFound)
	assert.NoError(t, svc.Delete(ctx, id))
}

func TestJobService_Lists(t *testing.T) {
	ctx := context.Background()
	jobs := []*models.Job{{ID: uuid.New()}}

	repo := new(mocks.JobRepository)
	repo.On("List", ctx).Return(jobs, nil)
	repo.On("ListByRecruiter", ctx, "sub-1").Return(nil, errors.New("boom"))
	svc := NewJobService(repo, zap.NewNop())

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.ListByRecruiter(ctx, "sub-1")
	assert.True(t, services.IsInternalError(err))
}
