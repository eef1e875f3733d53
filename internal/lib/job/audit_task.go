package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskRecordAudit is the task type for record change events.
	TaskRecordAudit = "record:audit"
)

// Audit actions.
const (
	ActionAdd        = "add"
	ActionUpdate     = "update"
	ActionDelete     = "delete"
	ActionFormUpdate = "form_update"
)

// AuditEvent describes one change to a pet or order.
type AuditEvent struct {
	Kind      string            `json:"kind"`
	ID        int64             `json:"id"`
	Action    string            `json:"action"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	At        time.Time         `json:"at"`
}

// NewRecordAuditTask builds an asynq task carrying event.
// Audit events are low priority and retried a few times.
func NewRecordAuditTask(event AuditEvent) (*asynq.Task, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskRecordAudit,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(10*time.Second),
	), nil
}
