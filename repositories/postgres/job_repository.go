package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/upb/recruitment-platform/models"
	"github.com/upb/recruitment-platform/repositories"
	"go.uber.org/zap"
)

const jobColumns = `id, title, description, company, location, skills, recruiter_id, recruiter_name, created_at, updated_at`

// JobRepository implements the repositories.JobRepository interface
type JobRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *DB, logger *zap.Logger) repositories.JobRepository {
	return &JobRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (*models.Job, error) {
	job := &models.Job{}
	var skills pq.StringArray
	if err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&job.Company,
		&job.Location,
		&skills,
		&job.RecruiterID,
		&job.RecruiterName,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}
	job.Skills = []string(skills)
	if job.Skills == nil {
		job.Skills = []string{}
	}
	return job, nil
}

// Create creates a new job
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		job.ID,
		job.Title,
		job.Description,
		job.Company,
		job.Location,
		pq.Array(job.Skills),
		job.RecruiterID,
		job.RecruiterName,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	r.logger.Debug("job created", zap.String("id", job.ID.String()), zap.String("recruiter_id", job.RecruiterID))
	return nil
}

// GetByID retrieves a job by ID
func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	job, err := scanJob(GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: job %s", repositories.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// List retrieves all jobs, newest first
func (r *JobRepository) List(ctx context.Context) ([]*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC`
	return r.list(ctx, query)
}

// ListByRecruiter retrieves the jobs published by a recruiter
func (r *JobRepository) ListByRecruiter(ctx context.Context, recruiterID string) ([]*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE recruiter_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, recruiterID)
}

func (r *JobRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Job, error) {
	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jobs: %w", err)
	}

	return jobs, nil
}

// Update updates a job
func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	query := `
		UPDATE jobs
		SET title = $2, description = $3, company = $4, location = $5, skills = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		job.ID,
		job.Title,
		job.Description,
		job.Company,
		job.Location,
		pq.Array(job.Skills),
		job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	if err := requireAffected(result, "job", job.ID); err != nil {
		return err
	}

	r.logger.Debug("job updated", zap.String("id", job.ID.String()))
	return nil
}

// Delete deletes a job
func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	if err := requireAffected(result, "job", id); err != nil {
		return err
	}

	r.logger.Debug("job deleted", zap.String("id", id.String()))
	return nil
}

// requireAffected maps a zero row count to repositories.ErrNotFound
func requireAffected(result sql.Result, kind string, id uuid.UUID) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s %s", repositories.ErrNotFound, kind, id)
	}
	return nil
}
