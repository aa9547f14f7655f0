package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/upb/recruitment-platform/models"
	"github.com/upb/recruitment-platform/repositories"
	"go.uber.org/zap"
)

const applicationColumns = `id, job_id, job_title, recruiter_id, recruiter_name, company,
	candidate_id, candidate_name, cv_url, status, match_score, created_at, updated_at`

// ApplicationRepository implements the repositories.ApplicationRepository interface
type ApplicationRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *DB, logger *zap.Logger) repositories.ApplicationRepository {
	return &ApplicationRepository{
		db:     db,
		logger: logger,
	}
}

func scanApplication(row rowScanner) (*models.Application, error) {
	app := &models.Application{}
	var updatedAt sql.NullTime
	if err := row.Scan(
		&app.ID,
		&app.Job.ID,
		&app.Job.Title,
		&app.Job.RecruiterID,
		&app.Job.RecruiterName,
		&app.Job.Company,
		&app.Candidate.ID,
		&app.Candidate.Name,
		&app.CVURL,
		&app.Status,
		&app.MatchScore,
		&app.CreatedAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		app.UpdatedAt = &updatedAt.Time
	}
	return app, nil
}

// Create creates a new application
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	var updatedAt sql.NullTime
	if app.UpdatedAt != nil {
		updatedAt = sql.NullTime{Time: *app.UpdatedAt, Valid: true}
	}

	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		app.ID,
		app.Job.ID,
		app.Job.Title,
		app.Job.RecruiterID,
		app.Job.RecruiterName,
		app.Job.Company,
		app.Candidate.ID,
		app.Candidate.Name,
		app.CVURL,
		app.Status,
		app.MatchScore,
		app.CreatedAt,
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	r.logger.Debug("application created",
		zap.String("id", app.ID.String()),
		zap.String("job_id", app.Job.ID.String()),
		zap.String("candidate_id", app.Candidate.ID),
	)
	return nil
}

// GetByID retrieves an application by ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	app, err := scanApplication(GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: application %s", repositories.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// ListByCandidate retrieves the applications submitted by a candidate
func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID string) ([]*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE candidate_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, candidateID)
}

// ListByJob retrieves the applications to a job
func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, jobID)
}

// ListByRecruiter retrieves the applications to a recruiter's jobs
func (r *ApplicationRepository) ListByRecruiter(ctx context.Context, recruiterID string) ([]*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE recruiter_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, recruiterID)
}

func (r *ApplicationRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Application, error) {
	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []*models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}

	return apps, nil
}

// UpdateStatus sets the status and updated_at of an application
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, updatedAt time.Time) error {
	query := `UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}

	if err := requireAffected(result, "application", id); err != nil {
		return err
	}

	r.logger.Debug("application status updated", zap.String("id", id.String()), zap.String("status", string(status)))
	return nil
}

// Delete deletes an application
func (r *ApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}

	if err := requireAffected(result, "application", id); err != nil {
		return err
	}

	r.logger.Debug("application deleted", zap.String("id", id.String()))
	return nil
}
