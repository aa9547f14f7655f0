package cvs

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/upb/recruitment-platform/models"
	"github.com/upb/recruitment-platform/repositories"
	"github.com/upb/recruitment-platform/services"
	"github.com/upb/recruitment-platform/storage"
	"go.uber.org/zap"
)

// FileStore holds the uploaded files
type FileStore interface {
	Save(name string, r io.Reader) error
	Open(name string) (storage.File, error)
	Remove(name string) (bool, error)
	FindByPrefix(prefix string) (string, error)
}

// CVService stores uploaded CVs and their metadata
type CVService struct {
	files  FileStore
	cvs    repositories.CVRepository
	logger *zap.Logger
}

// NewCVService creates a new CVService instance
func NewCVService(files FileStore, cvs repositories.CVRepository, logger *zap.Logger) *CVService {
	return &CVService{
		files:  files,
		cvs:    cvs,
		logger: logger,
	}
}

// CleanFilename reduces a client-supplied name to its base name, or "" when
// nothing usable remains
func CleanFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	base := filepath.Base(name)
	if base == "." || base == ".." || base == "/" {
		return ""
	}
	return base
}

// Upload stores r as "<uuid>_<basename>" and records its metadata
func (s *CVService) Upload(ctx context.Context, userID, filename string, r io.Reader) (*models.CV, error) {
	original := CleanFilename(filename)
	if original == "" {
		return nil, services.ErrInvalidFilename
	}

	saved := uuid.NewString() + "_" + original
	if err := s.files.Save(saved, r); err != nil {
		return nil, services.NewDomainError(services.ErrorTypeInternal, "failed to store file", err)
	}

	cv := models.NewCV(original, saved, userID)
	if err := s.cvs.Create(ctx, cv); err != nil {
		if _, rmErr := s.files.Remove(saved); rmErr != nil {
			s.logger.Error("failed to remove orphaned upload", zap.String("file", saved), zap.Error(rmErr))
		}
		return nil, services.WrapInternal("failed to record cv", err)
	}

	s.logger.Info("cv uploaded", zap.String("file", saved), zap.String("user_id", userID))
	return cv, nil
}

// Open returns a stored file by its saved name
func (s *CVService) Open(filename string) (storage.File, string, error) {
	name := CleanFilename(filename)
	if name == "" {
		return nil, "", services.ErrFileNotFound
	}
	return s.open(name)
}

// OpenByPrefix returns the first stored file whose name starts with prefix
func (s *CVService) OpenByPrefix(prefix string) (storage.File, string, error) {
	name, err := s.files.FindByPrefix(prefix)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, "", services.ErrFileNotFound
		}
		return nil, "", services.NewDomainError(services.ErrorTypeInternal, "failed to look up file", err)
	}
	return s.open(name)
}

func (s *CVService) open(name string) (storage.File, string, error) {
	f, err := s.files.Open(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, "", services.ErrFileNotFound
		}
		return nil, "", services.NewDomainError(services.ErrorTypeInternal, "failed to open file", err)
	}
	return f, name, nil
}

// Delete removes a stored file, when present, and all its metadata rows
func (s *CVService) Delete(ctx context.Context, filename string) error {
	name := CleanFilename(filename)
	if name == "" {
		return services.ErrInvalidFilename
	}

	removed, err := s.files.Remove(name)
	if err != nil {
		return services.NewDomainError(services.ErrorTypeInternal, "failed to remove file", err)
	}

	rows, err := s.cvs.DeleteBySavedFilename(ctx, name)
	if err != nil {
		return services.WrapInternal("failed to delete cv metadata", err)
	}

	s.logger.Info("cv deleted", zap.String("file", name), zap.Bool("file_removed", removed), zap.Int64("rows", rows))
	return nil
}

// List returns all CV metadata
func (s *CVService) List(ctx context.Context) ([]*models.CV, error) {
	list, err := s.cvs.List(ctx)
	if err != nil {
		return nil, services.WrapInternal("failed to list cvs", err)
	}
	return list, nil
}

// Get returns one CV's metadata
func (s *CVService) Get(ctx context.Context, id uuid.UUID) (*models.CV, error) {
	cv, err := s.cvs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrCVNotFound
		}
		return nil, services.WrapInternal("failed to get cv", err)
	}
	return cv, nil
}
