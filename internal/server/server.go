// Package server defines the Server container that owns the application's
// shared resources and the HTTP server lifecycle.
//
// Which connections exist depends on config:
//   - PostgreSQL only when store.backend is postgres
//   - Redis whenever redis.address is set (redis store backend, audit jobs)
//   - the asynq job service whenever Redis is available
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/petstore/internal/config"
	"github.com/deppfellow/petstore/internal/database"
	"github.com/deppfellow/petstore/internal/lib/job"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/petstore/internal/logger"
)

// RedisPingTimeout bounds the startup ping.
const RedisPingTimeout = 5 * time.Second

// Server is the application container. It is not the HTTP server itself.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	// DB is nil unless the postgres backend is configured.
	DB *database.Database

	// Redis is nil when no address is configured.
	Redis *redis.Client

	// Job is nil without Redis; Auditor then falls back to logging.
	Job *job.JobService

	httpServer *http.Server
}

// New connects the dependencies the configuration asks for and starts the
// background job workers.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	s := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
	}

	if cfg.Store.Backend == config.BackendPostgres {
		db, err := database.New(cfg, logger, loggerService)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		s.DB = db
	}

	if cfg.Redis.Address != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if loggerService.GetApplication() != nil {
			redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
		}

		ctx, cancel := context.WithTimeout(context.Background(), RedisPingTimeout)
		err := redisClient.Ping(ctx).Err()
		cancel()

		switch {
		case err == nil:
		case cfg.Store.Backend == config.BackendRedis:
			_ = redisClient.Close()
			_ = s.closeDB()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		default:
			// Only audit jobs depend on Redis here.
			logger.Error().Err(err).Msg("failed to connect to redis, continuing without background jobs")
			_ = redisClient.Close()
			redisClient = nil
		}

		if redisClient != nil {
			s.Redis = redisClient

			jobService := job.NewJobService(logger, cfg)
			if err := jobService.Start(); err != nil {
				_ = redisClient.Close()
				_ = s.closeDB()
				return nil, err
			}
			s.Job = jobService
		}
	}

	return s, nil
}

// Auditor returns the job service when it is running, otherwise a
// synchronous log auditor.
func (s *Server) Auditor() job.Auditor {
	if s.Job != nil {
		return s.Job
	}
	return job.NewLogAuditor(s.Logger)
}

// SetupHTTPServer configures the HTTP server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start blocks serving HTTP until the server is shut down.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("store", s.Config.Store.Backend).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests, then stops workers and closes
// connections. Cleanup continues past failures; all of them are returned.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.Logger.Error().Err(err).Msg("failed to close redis client")
			errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
	}

	if err := s.closeDB(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *Server) closeDB() error {
	if s.DB == nil {
		return nil
	}
	if err := s.DB.Close(); err != nil {
		s.Logger.Error().Err(err).Msg("failed to close database connection")
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
