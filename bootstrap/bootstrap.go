// Package bootstrap starts one of the platform's services.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/upb/recruitment-platform/app"
	"github.com/upb/recruitment-platform/config"
	"github.com/upb/recruitment-platform/routes"
	"github.com/upb/recruitment-platform/server"
	"go.uber.org/zap"
)

// Main runs service until SIGINT or SIGTERM and returns the process exit code
func Main(service string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.New(ctx, service)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", service, err)
		return 1
	}

	logger, err := app.NewLogger(cfg.Observability, service)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", service, err)
		return 1
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("service failed", zap.Error(err))
		_ = logger.Sync()
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.Error("failed to close dependencies", zap.Error(err))
		}
	}()

	handler, err := routes.SetupRoutes(deps)
	if err != nil {
		return err
	}

	logger.Info("starting service",
		zap.String("environment", cfg.Environment),
		zap.String("addr", cfg.Server.Address()))
	return server.Run(ctx, cfg.Server, handler, logger)
}
