package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
)

// WizardSessionRecord persists a wizard session between requests so an
// in-progress order survives a process restart. The snapshot column holds
// the serialized session state; last write wins.
type WizardSessionRecord struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OperatorID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CurrentStep enum.WizardStep `gorm:"size:50;not null"`
	Snapshot    json.RawMessage `gorm:"type:jsonb;not null"`
	StartedAt   time.Time       `gorm:"not null"`
	FinishedAt  *time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for the WizardSessionRecord model
func (WizardSessionRecord) TableName() string {
	return "wizard_sessions"
}
