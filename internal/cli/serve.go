package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/roundtrip/internal/config"
	"github.com/deppfellow/roundtrip/internal/handler"
	"github.com/deppfellow/roundtrip/internal/logger"
	"github.com/deppfellow/roundtrip/internal/repository"
	"github.com/deppfellow/roundtrip/internal/router"
	"github.com/deppfellow/roundtrip/internal/server"
	"github.com/deppfellow/roundtrip/internal/service"
	"github.com/spf13/cobra"
)

// DefaultShutdownTimeout bounds the wait for in-flight requests.
const DefaultShutdownTimeout = 30 * time.Second

func serveCmd() *cobra.Command {
	var shutdownTimeout time.Duration

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, shutdownTimeout)
		},
	}

	c.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", DefaultShutdownTimeout, "How long to wait for in-flight requests on shutdown")
	return c
}

// serve runs the server until ctx is cancelled, then shuts it down.
func serve(ctx context.Context, cfg *config.Config, shutdownTimeout time.Duration) error {
	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	repos, err := repository.NewRepositories(srv)
	if err != nil {
		return err
	}

	services, err := service.NewServices(srv, repos)
	if err != nil {
		return fmt.Errorf("could not create services: %w", err)
	}

	handlers := handler.NewHandlers(srv, services)
	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
		_ = srv.Shutdown(context.Background())
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	if err := <-errCh; err != nil {
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
