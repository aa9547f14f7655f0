// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/upb/recruitment-platform/models"
	"github.com/upb/recruitment-platform/repositories"
)

// TransactionManager is a mock implementation of repositories.TransactionManager
type TransactionManager struct {
	mock.Mock
}

func (m *TransactionManager) Begin(ctx context.Context) (repositories.Transaction, error) {
	args := m.Called(ctx)
	if tx := args.Get(0); tx != nil {
		return tx.(repositories.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TransactionManager) InTransaction(ctx context.Context, fn func(ctx context.Context, tx repositories.Transaction) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

// Transaction is a mock implementation of repositories.Transaction
type Transaction struct {
	mock.Mock
}

func (m *Transaction) Commit() error {
	return m.Called().Error(0)
}

func (m *Transaction) Rollback() error {
	return m.Called().Error(0)
}

func (m *Transaction) Context() context.Context {
	return m.Called().Get(0).(context.Context)
}

// ExpectTransaction wires a manager that begins a transaction on any
// context and hands out txCtx as the transaction's context
func ExpectTransaction(txCtx context.Context) (*TransactionManager, *Transaction) {
	txMgr := new(TransactionManager)
	tx := new(Transaction)
	txMgr.On("Begin", mock.Anything).Return(tx, nil)
	tx.On("Context").Return(txCtx)
	return txMgr, tx
}

// UserRepository is a mock implementation of repositories.UserRepository
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) ListByRole(ctx context.Context, role models.UserRole) ([]*models.User, error) {
	args := m.Called(ctx, role)
	if u := args.Get(0); u != nil {
		return u.([]*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) Upsert(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

// JobRepository is a mock implementation of repositories.JobRepository
type JobRepository struct {
	mock.Mock
}

func (m *JobRepository) Create(ctx context.Context, job *models.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	args := m.Called(ctx, id)
	if j := args.Get(0); j != nil {
		return j.(*models.Job), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *JobRepository) List(ctx context.Context) ([]*models.Job, error) {
	args := m.Called(ctx)
	if j := args.Get(0); j != nil {
		return j.([]*models.Job), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *JobRepository) ListByRecruiter(ctx context.Context, recruiterID string) ([]*models.Job, error) {
	args := m.Called(ctx, recruiterID)
	if j := args.Get(0); j != nil {
		return j.([]*models.Job), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *JobRepository) Update(ctx context.Context, job *models.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// ApplicationRepository is a mock implementation of repositories.ApplicationRepository
type ApplicationRepository struct {
	mock.Mock
}

func (m *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*models.Application), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID string) ([]*models.Application, error) {
	args := m.Called(ctx, candidateID)
	if a := args.Get(0); a != nil {
		return a.([]*models.Application), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*models.Application, error) {
	args := m.Called(ctx, jobID)
	if a := args.Get(0); a != nil {
		return a.([]*models.Application), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicationRepository) ListByRecruiter(ctx context.Context, recruiterID string) ([]*models.Application, error) {
	args := m.Called(ctx, recruiterID)
	if a := args.Get(0); a != nil {
		return a.([]*models.Application), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, updatedAt time.Time) error {
	return m.Called(ctx, id, status, updatedAt).Error(0)
}

func (m *ApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// NotificationRepository is a mock implementation of repositories.NotificationRepository
type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	args := m.Called(ctx, userID)
	if n := args.Get(0); n != nil {
		return n.([]*models.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// CVRepository is a mock implementation of repositories.CVRepository
type CVRepository struct {
	mock.Mock
}

func (m *CVRepository) Create(ctx context.Context, cv *models.CV) error {
	return m.Called(ctx, cv).Error(0)
}

func (m *CVRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CV, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*models.CV), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CVRepository) List(ctx context.Context) ([]*models.CV, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.([]*models.CV), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CVRepository) DeleteBySavedFilename(ctx context.Context, savedFilename string) (int64, error) {
	args := m.Called(ctx, savedFilename)
	return args.Get(0).(int64), args.Error(1)
}
