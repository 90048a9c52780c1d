package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/apperror"
	"go.uber.org/zap"
)

func newTestCoordinator() *ErrorCoordinator {
	return NewErrorCoordinator(zap.NewNop())
}

func TestRecordClassifiesAndStamps(t *testing.T) {
	c := newTestCoordinator()
	sessionID := uuid.New()

	rec := c.Record(sessionID, enum.StepOrderConfirmation,
		apperror.NewNetworkError("connection refused"), nil)

	if rec.ID == uuid.Nil {
		t.Error("record has no id")
	}
	if rec.Kind != apperror.KindNetwork {
		t.Errorf("Kind = %v, want network", rec.Kind)
	}
	if rec.Step != enum.StepOrderConfirmation {
		t.Errorf("Step = %v, want ORDER_CONFIRMATION", rec.Step)
	}
	if rec.OccurredAt.IsZero() {
		t.Error("record has no timestamp")
	}

	got := c.Errors(sessionID)
	if len(got) != 1 || got[0].ID != rec.ID {
		t.Errorf("Errors = %v, want the recorded entry", got)
	}
}

func TestNonAPIErrorsAutoExpire(t *testing.T) {
	c := newTestCoordinator()
	sessionID := uuid.New()

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Record(sessionID, enum.StepItemManager, apperror.NewNetworkError("timeout"), nil)
	c.Record(sessionID, enum.StepItemManager, apperror.NewAppError(502, "bad gateway"), nil)

	c.now = func() time.Time { return base.Add(DefaultErrorTTL + time.Second) }
	got := c.Errors(sessionID)

	if len(got) != 1 {
		t.Fatalf("len(Errors) = %d, want 1 (network expired, api kept)", len(got))
	}
	if got[0].Kind != apperror.KindAPI {
		t.Errorf("surviving kind = %v, want api", got[0].Kind)
	}
}

func TestSingleCriticalAPIError(t *testing.T) {
	c := newTestCoordinator()
	sessionID := uuid.New()

	c.Record(sessionID, enum.StepOrderConfirmation, apperror.NewAppError(500, "first"), nil)
	c.Record(sessionID, enum.StepOrderConfirmation, apperror.NewAppError(503, "second"), nil)

	critical := 0
	for _, r := range c.Errors(sessionID) {
		if r.Critical {
			critical++
		}
	}
	if critical != 1 {
		t.Errorf("critical errors = %d, want exactly 1", critical)
	}
	if !c.HasCriticalError(sessionID) {
		t.Error("HasCriticalError = false, want true")
	}
}

func TestClearByID(t *testing.T) {
	c := newTestCoordinator()
	sessionID := uuid.New()

	first := c.Record(sessionID, enum.StepItemManager, apperror.NewAppError(500, "first"), nil)
	second := c.Record(sessionID, enum.StepItemManager, apperror.NewAppError(500, "second"), nil)

	c.Clear(sessionID, first.ID)

	got := c.Errors(sessionID)
	if len(got) != 1 || got[0].ID != second.ID {
		t.Errorf("Errors = %v, want only the second record", got)
	}
}

func TestRetryLastOperation(t *testing.T) {
	c := newTestCoordinator()
	sessionID := uuid.New()

	attempts := 0
	op := func(ctx context.Context) error {
		attempts++
		if attempts < 2 {
			return errors.New("still failing")
		}
		return nil
	}

	c.Record(sessionID, enum.StepOrderConfirmation, errors.New("initial failure"), op)

	// First retry fails and keeps the operation retryable.
	if err := c.RetryLastOperation(context.Background(), sessionID); err == nil {
		t.Fatal("expected first retry to fail")
	}
	if len(c.Errors(sessionID)) == 0 {
		t.Fatal("failed retry left no error records")
	}

	// Second retry succeeds and clears everything.
	if err := c.RetryLastOperation(context.Background(), sessionID); err != nil {
		t.Fatalf("second retry: %v", err)
	}
	if got := c.Errors(sessionID); len(got) != 0 {
		t.Errorf("Errors after successful retry = %v, want none", got)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestRetryWithoutFailedOperation(t *testing.T) {
	c := newTestCoordinator()
	if err := c.RetryLastOperation(context.Background(), uuid.New()); err == nil {
		t.Error("expected error when nothing failed yet")
	}
}
