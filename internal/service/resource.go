package service

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/petstore/internal/errs"
	"github.com/deppfellow/petstore/internal/lib/job"
	"github.com/deppfellow/petstore/internal/model"
	"github.com/deppfellow/petstore/internal/repository"
	"github.com/rs/zerolog"
)

// resource implements the operations pets and orders share.
type resource[T model.Record] struct {
	kind    string
	label   string
	store   repository.Store[T]
	auditor job.Auditor
	withID  func(T, int64) T

	// maxID is the largest id clients can address; assigned ids above it
	// are refused.
	maxID int64
}

func (r *resource[T]) notFound() *errs.HTTPError {
	code := errs.MakeUpperCaseWithUnderscores(r.kind + " not found")
	return errs.NewNotFoundError(r.label+" not found", true, &code)
}

// idsExhausted reports that no id at or below maxID is left to assign.
func (r *resource[T]) idsExhausted() *errs.HTTPError {
	return errs.NewInvalidInputError("Invalid input", []errs.FieldError{
		{Field: "id", Error: fmt.Sprintf("no free %s id at or below %d, send an explicit id", r.kind, r.maxID)},
	})
}

func (r *resource[T]) get(ctx context.Context, id int64) (T, error) {
	record, found, err := r.store.Get(ctx, id)
	if err != nil {
		return record, fmt.Errorf("getting %s %d: %w", r.kind, id, err)
	}
	if !found {
		return record, r.notFound()
	}
	return record, nil
}

// remove is idempotent: deleting a missing id succeeds.
func (r *resource[T]) remove(ctx context.Context, id int64) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting %s %d: %w", r.kind, id, err)
	}

	r.audit(ctx, id, job.ActionDelete, nil)
	return nil
}

// save inserts or replaces record, assigning the next free id to a zero id.
func (r *resource[T]) save(ctx context.Context, record T, action string) (T, error) {
	if record.RecordID() == 0 {
		id, err := r.store.NextID(ctx)
		if err != nil {
			return record, fmt.Errorf("reserving %s id: %w", r.kind, err)
		}
		if r.maxID > 0 && id > r.maxID {
			return record, r.idsExhausted()
		}
		record = r.withID(record, id)
	}

	if err := r.store.Put(ctx, record); err != nil {
		return record, fmt.Errorf("storing %s %d: %w", r.kind, record.RecordID(), err)
	}

	r.audit(ctx, record.RecordID(), action, nil)
	return record, nil
}

func (r *resource[T]) list(ctx context.Context, keep func(T) bool) ([]T, error) {
	records, err := r.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing %ss: %w", r.kind, err)
	}

	matched := make([]T, 0, len(records))
	for _, record := range records {
		if keep(record) {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

// audit never fails the request; a lost audit event is only logged.
func (r *resource[T]) audit(ctx context.Context, id int64, action string, fields map[string]string) {
	event := job.AuditEvent{
		Kind:      r.kind,
		ID:        id,
		Action:    action,
		Fields:    fields,
		RequestID: job.RequestIDFromContext(ctx),
		At:        time.Now().UTC(),
	}

	if err := r.auditor.Publish(ctx, event); err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("kind", r.kind).
			Int64("id", id).
			Str("action", action).
			Msg("failed to publish audit event")
	}
}
