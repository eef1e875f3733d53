package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/petstore/internal/config"
	"github.com/deppfellow/petstore/internal/handler"
	"github.com/deppfellow/petstore/internal/logger"
	"github.com/deppfellow/petstore/internal/middleware"
	"github.com/deppfellow/petstore/internal/repository"
	"github.com/deppfellow/petstore/internal/router"
	"github.com/deppfellow/petstore/internal/server"
	"github.com/deppfellow/petstore/internal/service"
	"github.com/spf13/cobra"
)

// shutdownTimeout bounds draining in-flight requests on exit.
const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("new relic disabled")
	}
	defer loggerService.Shutdown()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	repos, err := repository.NewRepositories(ctx, srv)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize repositories")
		return shutdownAfter(srv, err)
	}

	services, err := service.NewServices(srv, repos)
	if err != nil {
		return shutdownAfter(srv, err)
	}

	handlers, err := handler.NewHandlers(srv, services, repos)
	if err != nil {
		return shutdownAfter(srv, err)
	}

	r, err := router.NewRouter(srv, handlers, middleware.NewMiddlewares(srv))
	if err != nil {
		return shutdownAfter(srv, err)
	}

	srv.SetupHTTPServer(r)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			return shutdownAfter(srv, err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}

func shutdownAfter(srv *server.Server, cause error) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	_ = srv.Shutdown(ctx)
	return cause
}
