package app

import (
	"context"
	"fmt"

	"github.com/upb/recruitment-platform/cognito"
	"github.com/upb/recruitment-platform/config"
	"github.com/upb/recruitment-platform/middleware"
	"github.com/upb/recruitment-platform/repositories"
	"github.com/upb/recruitment-platform/repositories/postgres"
	"github.com/upb/recruitment-platform/services/applications"
	"github.com/upb/recruitment-platform/services/cvs"
	"github.com/upb/recruitment-platform/services/jobs"
	"github.com/upb/recruitment-platform/services/notifications"
	"github.com/upb/recruitment-platform/services/roles"
	"github.com/upb/recruitment-platform/services/users"
	"github.com/upb/recruitment-platform/storage"
	"go.uber.org/zap"
)

// Dependencies holds everything a service binary wires together
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	RepoFactory *postgres.RepositoryFactory
	Repos       *repositories.Repositories
	TxManager   repositories.TransactionManager

	// Auth
	Roles          *roles.Chain
	AuthMiddleware *middleware.AuthMiddleware
	UserPool       *cognito.UserPool

	// Domain services
	Jobs          *jobs.JobService
	Applications  *applications.ApplicationService
	Notifications *notifications.NotificationService
	CVs           *cvs.CVService
	Users         *users.UserService
}

// NewDependencies opens the database and builds every component the
// configured service needs
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	factory, err := postgres.NewRepositoryFactory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps, err := NewDependenciesFromFactory(ctx, cfg, factory, logger)
	if err != nil {
		_ = factory.Close()
		return nil, err
	}
	return deps, nil
}

// NewDependenciesFromFactory builds the components over an open repository factory
func NewDependenciesFromFactory(ctx context.Context, cfg *config.Config, factory *postgres.RepositoryFactory, logger *zap.Logger) (*Dependencies, error) {
	d := &Dependencies{
		Config:      cfg,
		Logger:      logger,
		RepoFactory: factory,
		DB:          factory.GetDB(),
		Repos:       factory.NewRepositories(),
		TxManager:   factory.GetTransactionManager(),
	}

	if cfg.Database.InitSchema {
		if err := d.DB.InitSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	if err := d.initAuth(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	if err := d.initServices(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	logger.Info("all dependencies initialized successfully")
	return d, nil
}

// initAuth builds the token validator and the role chain: the identity
// provider's role attribute first, then the users table
func (d *Dependencies) initAuth(ctx context.Context, cfg *config.Config) error {
	var resolvers []roles.Resolver
	var validator middleware.TokenValidator = rejectAllValidator{}

	if cfg.Cognito.AuthEnabled() {
		validator = &cognitoValidatorAdapter{validator: cognito.NewValidator(cognito.Config{
			Issuer:   cfg.Cognito.IssuerURL(),
			ClientID: cfg.Cognito.ClientID,
			JWKSURL:  cfg.Cognito.KeySetURL(),
			CacheTTL: cfg.Cognito.CacheTTL,
		})}

		pool, err := cognito.NewUserPoolFromConfig(ctx, cfg.Cognito.Region, cfg.Cognito.UserPoolID)
		if err != nil {
			return err
		}
		d.UserPool = pool
		resolvers = append(resolvers, roles.NewAttributeResolver(pool, cfg.Cognito.RoleAttribute))
	} else {
		d.Logger.Warn("cognito not configured, protected routes will reject every request")
	}
	resolvers = append(resolvers, roles.NewUserRecordResolver(d.Repos.Users))

	d.Roles = roles.NewChain(d.Logger, cfg.Auth.RoleLookupTimeout, resolvers...)
	d.AuthMiddleware = middleware.NewAuthMiddleware(validator, d.Roles, cfg.Auth.VerifyTimeout, d.Logger)
	return nil
}

func (d *Dependencies) initServices(cfg *config.Config) error {
	d.Jobs = jobs.NewJobService(d.Repos.Jobs, d.Logger)
	d.Applications = applications.NewApplicationService(d.Repos.Jobs, d.Repos.Applications, d.Repos.Notifications, d.TxManager, d.Logger)
	d.Notifications = notifications.NewNotificationService(d.Repos.Users, d.Repos.Notifications, d.TxManager, d.Logger)

	var attrs users.AttributeSource
	if d.UserPool != nil {
		attrs = d.UserPool
	}
	d.Users = users.NewUserService(d.Repos.Users, attrs, cfg.Cognito.RoleAttribute, d.Logger)

	if cfg.Service == config.ServiceCV {
		store, err := storage.NewLocalStore(cfg.Storage.UploadDir)
		if err != nil {
			return err
		}
		d.CVs = cvs.NewCVService(store, d.Repos.CVs, d.Logger)
	}
	return nil
}

// cognitoValidatorAdapter adapts cognito.Validator to middleware.TokenValidator
type cognitoValidatorAdapter struct {
	validator *cognito.Validator
}

func (a *cognitoValidatorAdapter) ValidateToken(ctx context.Context, token string) (*middleware.Identity, error) {
	parsed, err := a.validator.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return &middleware.Identity{
		Subject:  parsed.Sub,
		Email:    parsed.Email,
		Username: parsed.Username,
	}, nil
}

// rejectAllValidator rejects all tokens (used when Cognito is not configured)
type rejectAllValidator struct{}

func (rejectAllValidator) ValidateToken(context.Context, string) (*middleware.Identity, error) {
	return nil, fmt.Errorf("authentication not configured")
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close() error {
	d.Logger.Info("shutting down dependencies")

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		d.RepoFactory = nil
	}

	_ = d.Logger.Sync()
	return nil
}
