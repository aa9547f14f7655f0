package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/upb/recruitment-platform/models"
	"github.com/upb/recruitment-platform/repositories"
	"go.uber.org/zap"
)

const cvColumns = `id, original_filename, saved_filename, upload_time, user_id`

// CVRepository implements the repositories.CVRepository interface
type CVRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewCVRepository creates a new CV metadata repository
func NewCVRepository(db *DB, logger *zap.Logger) repositories.CVRepository {
	return &CVRepository{
		db:     db,
		logger: logger,
	}
}

func scanCV(row rowScanner) (*models.CV, error) {
	cv := &models.CV{}
	if err := row.Scan(&cv.ID, &cv.OriginalFilename, &cv.SavedFilename, &cv.UploadTime, &cv.UserID); err != nil {
		return nil, err
	}
	return cv, nil
}

// Create records the metadata of an upload
func (r *CVRepository) Create(ctx context.Context, cv *models.CV) error {
	query := `INSERT INTO cvs (` + cvColumns + `) VALUES ($1, $2, $3, $4, $5)`

	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		cv.ID,
		cv.OriginalFilename,
		cv.SavedFilename,
		cv.UploadTime,
		cv.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to create cv: %w", err)
	}

	r.logger.Debug("cv recorded", zap.String("id", cv.ID.String()), zap.String("saved_filename", cv.SavedFilename))
	return nil
}

// GetByID retrieves CV metadata by ID
func (r *CVRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CV, error) {
	query := `SELECT ` + cvColumns + ` FROM cvs WHERE id = $1`

	cv, err := scanCV(GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: cv %s", repositories.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get cv: %w", err)
	}
	return cv, nil
}

// List retrieves all CV metadata, newest first
func (r *CVRepository) List(ctx context.Context) ([]*models.CV, error) {
	query := `SELECT ` + cvColumns + ` FROM cvs ORDER BY upload_time DESC`

	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cvs: %w", err)
	}
	defer rows.Close()

	cvs := []*models.CV{}
	for rows.Next() {
		cv, err := scanCV(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cv: %w", err)
		}
		cvs = append(cvs, cv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cvs: %w", err)
	}

	return cvs, nil
}

// DeleteBySavedFilename removes every metadata row for a stored file
func (r *CVRepository) DeleteBySavedFilename(ctx context.Context, savedFilename string) (int64, error) {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM cvs WHERE saved_filename = $1`, savedFilename)
	if err != nil {
		return 0, fmt.Errorf("failed to delete cv: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	r.logger.Debug("cv metadata deleted", zap.String("saved_filename", savedFilename), zap.Int64("rows", n))
	return n, nil
}
