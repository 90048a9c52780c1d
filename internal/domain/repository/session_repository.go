package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/wizard"
)

// WizardSessionRepository persists wizard sessions so an in-progress order
// survives a process restart. Save is an upsert; last write wins.
type WizardSessionRepository interface {
	Save(ctx context.Context, session *wizard.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*wizard.Session, error)
	// GetActiveByOperator returns the operator's most recent unfinished
	// session, or nil when there is none.
	GetActiveByOperator(ctx context.Context, operatorID uuid.UUID) (*wizard.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
