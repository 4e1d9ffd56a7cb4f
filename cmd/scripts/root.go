package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/scripts/internal/config"
	"github.com/deppfellow/scripts/internal/database"
	"github.com/deppfellow/scripts/internal/handler"
	"github.com/deppfellow/scripts/internal/logger"
	"github.com/deppfellow/scripts/internal/repository"
	"github.com/deppfellow/scripts/internal/router"
	"github.com/deppfellow/scripts/internal/server"
	"github.com/deppfellow/scripts/internal/service"
)

// DefaultShutdownTimeout bounds how long in-flight requests may drain.
const DefaultShutdownTimeout = 30 * time.Second

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scripts",
		Short:         "Scripts REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var migrate bool
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			loggerService := logger.NewLoggerService(cfg.Observability)
			defer loggerService.Shutdown()

			log := logger.NewLoggerWithService(cfg.Observability, loggerService)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if migrate {
				if err := database.Migrate(ctx, &log, cfg); err != nil {
					log.Error().Err(err).Msg("failed to migrate database")
					return err
				}
			}

			return serve(ctx, cfg, &log, loggerService, shutdownTimeout)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", DefaultShutdownTimeout, "time allowed for in-flight requests to finish")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *zerolog.Logger, loggerService *logger.LoggerService, shutdownTimeout time.Duration) error {
	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	repos := repository.NewRepositories(srv)
	services, err := service.NewService(srv, repos)
	if err != nil {
		log.Error().Err(err).Msg("could not create services")
		return err
	}

	srv.SetupHTTPServer(router.NewRouter(srv, handler.NewHandlers(srv, services)))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
		return errors.Join(err, srv.Shutdown(context.Background()))
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}

func newMigrateCmd() *cobra.Command {
	var to int32

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			log := logger.NewLogger(cfg.Observability)
			if err := database.MigrateTo(cmd.Context(), &log, cfg, to); err != nil {
				log.Error().Err(err).Msg("failed to migrate database")
				return err
			}
			return nil
		},
	}

	cmd.Flags().Int32Var(&to, "to", database.LatestVersion, "target schema version (-1 for latest)")
	return cmd
}
