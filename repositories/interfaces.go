package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/upb/recruitment-platform/models"
)

// ErrNotFound is returned (wrapped) when a record does not exist
var ErrNotFound = errors.New("record not found")

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)

	// InTransaction executes a function within a transaction.
	// Commits if fn succeeds, rolls back on error. Repositories called with
	// the ctx handed to fn run inside the transaction.
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction represents a database transaction
type Transaction interface {
	Commit() error
	Rollback() error
	Context() context.Context
}

// UserRepository handles user records keyed by identity provider subject
type UserRepository interface {
	// GetByID retrieves a user by subject
	GetByID(ctx context.Context, id string) (*models.User, error)

	// ListByRole retrieves every user holding role
	ListByRole(ctx context.Context, role models.UserRole) ([]*models.User, error)

	// Upsert inserts the user or updates email, display name and role
	Upsert(ctx context.Context, user *models.User) error
}

// JobRepository handles job offers
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	List(ctx context.Context) ([]*models.Job, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ApplicationRepository handles job applications
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]*models.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]*models.Application, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]*models.Application, error)

	// UpdateStatus sets status and updated_at of an application
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, updatedAt time.Time) error

	Delete(ctx context.Context, id uuid.UUID) error
}

// NotificationRepository handles user notifications
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error

	// ListByUser returns the user's notifications, newest first
	ListByUser(ctx context.Context, userID string) ([]*models.Notification, error)

	MarkRead(ctx context.Context, id uuid.UUID) error
}

// CVRepository handles uploaded CV metadata
type CVRepository interface {
	Create(ctx context.Context, cv *models.CV) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CV, error)
	List(ctx context.Context) ([]*models.CV, error)

	// DeleteBySavedFilename removes every metadata row for a stored file and
	// returns how many were removed
	DeleteBySavedFilename(ctx context.Context, savedFilename string) (int64, error)
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Users         UserRepository
	Jobs          JobRepository
	Applications  ApplicationRepository
	Notifications NotificationRepository
	CVs           CVRepository
}
