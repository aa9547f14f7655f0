// Package users keeps the platform's user records in step with the identity
// provider.
package users

import (
	"context"
	"errors"
	"time"

	"github.com/upb/recruitment-platform/cognito"
	"github.com/upb/recruitment-platform/models"
	"github.com/upb/recruitment-platform/repositories"
	"github.com/upb/recruitment-platform/services"
	"go.uber.org/zap"
)

// AttributeSource reads identity provider user attributes by subject
type AttributeSource interface {
	GetUserAttributes(ctx context.Context, subject string) (map[string]string, error)
}

// SyncInput is what the caller's verified token and profile say about them
type SyncInput struct {
	Subject     string
	Email       string
	DisplayName string
}

// UserService maintains user records keyed by subject
type UserService struct {
	users         repositories.UserRepository
	attrs         AttributeSource
	roleAttribute string
	logger        *zap.Logger
}

// NewUserService creates a UserService. attrs may be nil when no identity
// provider is configured; roles then never change through Sync.
func NewUserService(users repositories.UserRepository, attrs AttributeSource, roleAttribute string, logger *zap.Logger) *UserService {
	return &UserService{
		users:         users,
		attrs:         attrs,
		roleAttribute: roleAttribute,
		logger:        logger,
	}
}

// Get returns the record of subject
func (s *UserService) Get(ctx context.Context, subject string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, subject)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrUserNotFound
		}
		return nil, services.WrapInternal("failed to get user", err)
	}
	return user, nil
}

// Sync writes the caller's record. The role is taken from the identity
// provider's role attribute when it holds a known role, otherwise the stored
// role is kept; new users default to candidate. Callers never choose it.
func (s *UserService) Sync(ctx context.Context, in SyncInput) (*models.User, error) {
	if in.Subject == "" {
		return nil, services.ErrUnauthorized
	}

	existing, err := s.users.GetByID(ctx, in.Subject)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, services.WrapInternal("failed to get user", err)
	}

	user := models.NewUser(in.Subject, in.Email, in.DisplayName, models.RoleCandidate)
	if existing != nil {
		user.Role = existing.Role
		user.CreatedAt = existing.CreatedAt
		if user.Email == "" {
			user.Email = existing.Email
		}
		if user.DisplayName == "" {
			user.DisplayName = existing.DisplayName
		}
	}
	if user.DisplayName == "" {
		user.DisplayName = user.Email
	}
	if role, ok := s.providerRole(ctx, in.Subject); ok {
		user.Role = role
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, services.WrapInternal("failed to save user", err)
	}

	s.logger.Info("user synced",
		zap.String("sub", user.ID),
		zap.String("role", string(user.Role)))
	return user, nil
}

func (s *UserService) providerRole(ctx context.Context, subject string) (models.UserRole, bool) {
	if s.attrs == nil || s.roleAttribute == "" {
		return "", false
	}
	attrs, err := s.attrs.GetUserAttributes(ctx, subject)
	if err != nil {
		if !errors.Is(err, cognito.ErrUserNotFound) {
			s.logger.Warn("failed to read role attribute, keeping stored role",
				zap.String("sub", subject),
				zap.Error(err))
		}
		return "", false
	}
	role := models.UserRole(attrs[s.roleAttribute])
	return role, role.Valid()
}
