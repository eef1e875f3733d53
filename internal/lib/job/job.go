// Package job provides background processing of record audit events.
//
// With Redis configured, events are enqueued with an asynq.Client and
// processed by an asynq.Server worker pool. Without Redis, LogAuditor writes
// the same audit line synchronously.
package job

import (
	"context"
	"fmt"

	"github.com/deppfellow/petstore/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Auditor records changes to pets and orders.
type Auditor interface {
	Publish(ctx context.Context, event AuditEvent) error
}

// JobService holds the asynq client (enqueue) and server (workers).
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger
}

var _ Auditor = (*JobService)(nil)

// NewJobService creates a JobService against the configured Redis.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// Start registers task handlers and starts the worker pool. It returns once
// the workers are running.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskRecordAudit, j.handleRecordAuditTask)

	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(mux); err != nil {
		if closeErr := j.Client.Close(); closeErr != nil {
			j.logger.Error().Err(closeErr).Msg("failed to close job client")
		}
		return fmt.Errorf("starting job server: %w", err)
	}
	return nil
}

// Publish enqueues event for the workers.
func (j *JobService) Publish(ctx context.Context, event AuditEvent) error {
	task, err := NewRecordAuditTask(event)
	if err != nil {
		return fmt.Errorf("building audit task: %w", err)
	}

	if _, err := j.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueueing audit task: %w", err)
	}
	return nil
}

// Stop shuts the workers down and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}
