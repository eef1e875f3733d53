package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// handleRecordAuditTask writes the audit line for a queued event.
func (j *JobService) handleRecordAuditTask(ctx context.Context, t *asynq.Task) error {
	var event AuditEvent
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		// A payload that cannot be decoded will never succeed.
		return fmt.Errorf("failed to unmarshal audit payload: %v: %w", err, asynq.SkipRetry)
	}

	logAudit(j.logger, event)
	return nil
}

// LogAuditor writes audit lines directly, for deployments without Redis.
type LogAuditor struct {
	logger *zerolog.Logger
}

var _ Auditor = (*LogAuditor)(nil)

// NewLogAuditor returns an Auditor logging through logger.
func NewLogAuditor(logger *zerolog.Logger) *LogAuditor {
	return &LogAuditor{logger: logger}
}

func (a *LogAuditor) Publish(_ context.Context, event AuditEvent) error {
	logAudit(a.logger, event)
	return nil
}

func logAudit(logger *zerolog.Logger, event AuditEvent) {
	e := logger.Info().
		Str("kind", event.Kind).
		Int64("id", event.ID).
		Str("action", event.Action).
		Time("at", event.At)

	if event.RequestID != "" {
		e = e.Str("request_id", event.RequestID)
	}

	if len(event.Fields) > 0 {
		e = e.Fields(map[string]interface{}{"fields": event.Fields})
	}

	e.Msg("record changed")
}
