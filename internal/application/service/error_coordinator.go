package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/apperror"
	"go.uber.org/zap"
)

// DefaultErrorTTL is how long non-api errors stay visible before they
// auto-expire. API errors persist until cleared or retried.
const DefaultErrorTTL = 30 * time.Second

// ErrorRecord is a surfaced failure from an asynchronous operation.
type ErrorRecord struct {
	ID         uuid.UUID       `json:"id"`
	Kind       apperror.Kind   `json:"kind"`
	Message    string          `json:"message"`
	Step       enum.WizardStep `json:"step"`
	OccurredAt time.Time       `json:"occurred_at"`
	Critical   bool            `json:"critical"`
}

// Operation is a retryable unit of work.
type Operation func(ctx context.Context) error

type sessionErrors struct {
	records []ErrorRecord
	lastOp  Operation
}

// ErrorCoordinator records failures per wizard session and supports
// retrying the most recently failed operation. Validation failures never
// pass through here; they are resolved locally by blocked transitions.
type ErrorCoordinator struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*sessionErrors
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewErrorCoordinator creates a new error coordinator
func NewErrorCoordinator(logger *zap.Logger) *ErrorCoordinator {
	return &ErrorCoordinator{
		sessions: make(map[uuid.UUID]*sessionErrors),
		ttl:      DefaultErrorTTL,
		now:      time.Now,
		logger:   logger,
	}
}

// Record classifies err, stores it against the session with a stable id
// and the step it originated from, and remembers op for retry. At most one
// api error is critical per session at a time.
func (c *ErrorCoordinator) Record(sessionID uuid.UUID, step enum.WizardStep, err error, op Operation) ErrorRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	se := c.sessions[sessionID]
	if se == nil {
		se = &sessionErrors{}
		c.sessions[sessionID] = se
	}

	kind := apperror.Classify(err)
	record := ErrorRecord{
		ID:         uuid.New(),
		Kind:       kind,
		Message:    err.Error(),
		Step:       step,
		OccurredAt: c.now(),
	}
	if kind == apperror.KindAPI {
		record.Critical = true
		for i := range se.records {
			if se.records[i].Kind == apperror.KindAPI {
				se.records[i].Critical = false
			}
		}
	}

	se.records = append(se.records, record)
	if op != nil {
		se.lastOp = op
	}

	c.logger.Warn("operation failed",
		zap.String("session_id", sessionID.String()),
		zap.String("kind", string(kind)),
		zap.String("step", string(step)),
		zap.Error(err))
	return record
}

// Errors returns the session's live error records, dropping non-api
// records older than the TTL.
func (c *ErrorCoordinator) Errors(sessionID uuid.UUID) []ErrorRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	se := c.sessions[sessionID]
	if se == nil {
		return nil
	}

	cutoff := c.now().Add(-c.ttl)
	kept := se.records[:0]
	for _, r := range se.records {
		if r.Kind != apperror.KindAPI && r.OccurredAt.Before(cutoff) {
			continue
		}
		kept = append(kept, r)
	}
	se.records = kept

	out := make([]ErrorRecord, len(se.records))
	copy(out, se.records)
	return out
}

// Clear removes one error record by id.
func (c *ErrorCoordinator) Clear(sessionID, errorID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	se := c.sessions[sessionID]
	if se == nil {
		return
	}
	for i, r := range se.records {
		if r.ID == errorID {
			se.records = append(se.records[:i], se.records[i+1:]...)
			return
		}
	}
}

// ClearAll removes every error record for the session.
func (c *ErrorCoordinator) ClearAll(sessionID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if se := c.sessions[sessionID]; se != nil {
		se.records = nil
	}
}

// HasCriticalError reports whether the session currently has a critical
// api error blocking an affected action.
func (c *ErrorCoordinator) HasCriticalError(sessionID uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	se := c.sessions[sessionID]
	if se == nil {
		return false
	}
	for _, r := range se.records {
		if r.Critical {
			return true
		}
	}
	return false
}

// RetryLastOperation re-invokes the most recently failed operation. On
// success every error record for the session is cleared; on failure the
// new error is recorded and the operation stays retryable.
func (c *ErrorCoordinator) RetryLastOperation(ctx context.Context, sessionID uuid.UUID) error {
	c.mu.Lock()
	se := c.sessions[sessionID]
	var op Operation
	if se != nil {
		op = se.lastOp
	}
	c.mu.Unlock()

	if op == nil {
		return apperror.NewBadRequestError("No failed operation to retry")
	}

	if err := op(ctx); err != nil {
		c.Record(sessionID, "", err, op)
		return err
	}

	c.ClearAll(sessionID)
	return nil
}

// Forget drops all coordinator state for a session, used when the session
// finishes or resets.
func (c *ErrorCoordinator) Forget(sessionID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, sessionID)
}
