package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	domainRepo "github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/repository"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/wizard"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type wizardSessionRepository struct {
	db *gorm.DB
}

// NewWizardSessionRepository creates a new wizard session repository
func NewWizardSessionRepository(db *gorm.DB) domainRepo.WizardSessionRepository {
	return &wizardSessionRepository{db: db}
}

// Save upserts the whole session as a JSON snapshot. Last write wins.
func (r *wizardSessionRepository) Save(ctx context.Context, session *wizard.Session) error {
	snapshot, err := json.Marshal(session)
	if err != nil {
		return err
	}

	record := &entity.WizardSessionRecord{
		ID:          session.ID,
		OperatorID:  session.OperatorID,
		CurrentStep: session.CurrentStep,
		Snapshot:    snapshot,
		StartedAt:   session.StartedAt,
		FinishedAt:  session.FinishedAt,
		UpdatedAt:   time.Now(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"current_step", "snapshot", "finished_at", "updated_at"}),
		}).
		Create(record).Error
}

func (r *wizardSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*wizard.Session, error) {
	var record entity.WizardSessionRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeSession(&record)
}

func (r *wizardSessionRepository) GetActiveByOperator(ctx context.Context, operatorID uuid.UUID) (*wizard.Session, error) {
	var record entity.WizardSessionRecord
	err := r.db.WithContext(ctx).
		Where("operator_id = ? AND finished_at IS NULL", operatorID).
		Order("updated_at DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeSession(&record)
}

func (r *wizardSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.WizardSessionRecord{}, "id = ?", id).Error
}

func decodeSession(record *entity.WizardSessionRecord) (*wizard.Session, error) {
	var session wizard.Session
	if err := json.Unmarshal(record.Snapshot, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
