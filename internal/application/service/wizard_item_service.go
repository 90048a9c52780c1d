package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/pricing"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/wizard"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/apperror"
	"go.uber.org/zap"
)

// Item sub-wizard orchestration. Each sub-step has its own setter so the
// draft accumulates exactly what the operator entered; navigation and
// completion go through the state machine.

// StartItem opens a fresh item draft on the session.
func (s *WizardService) StartItem(ctx context.Context, id uuid.UUID) (*wizard.Session, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := session.StartItem(); err != nil {
		return nil, apperror.NewConflictError(err.Error())
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// StartItemEdit opens a draft copying the item at index; completion
// replaces it in place.
func (s *WizardService) StartItemEdit(ctx context.Context, id uuid.UUID, index int) (*wizard.Session, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := session.StartItemEdit(index); err != nil {
		if err == wizard.ErrDraftOpen {
			return nil, apperror.NewConflictError(err.Error())
		}
		return nil, apperror.NewBadRequestError(err.Error())
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ItemBasicInfoInput carries the first sub-step inputs.
type ItemBasicInfoInput struct {
	CategoryCode  string
	CatalogItemID *uuid.UUID
	Name          string
	Quantity      float64
	Unit          enum.UnitOfMeasure
}

// SetItemBasicInfo fills the draft's category, name, quantity and unit.
// The category is resolved against the catalog so the item carries its
// group, and the unit is checked against the chosen catalog entry.
func (s *WizardService) SetItemBasicInfo(ctx context.Context, id uuid.UUID, input *ItemBasicInfoInput) (*wizard.Session, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.ItemDraft == nil {
		return nil, apperror.NewBadRequestError("No item draft is open")
	}

	category, err := s.catalogRepo.GetCategoryByCode(ctx, input.CategoryCode)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Service category")
	}

	item := &session.ItemDraft.Item
	item.CategoryCode = category.Code
	item.CategoryGroup = category.Group
	item.Name = input.Name
	item.Quantity = input.Quantity
	item.Unit = input.Unit

	if input.CatalogItemID != nil {
		supported, err := s.catalogRepo.SupportsUnit(ctx, *input.CatalogItemID, input.Unit)
		if err != nil {
			return nil, err
		}
		if !supported {
			return nil, apperror.NewBadRequestError("Catalog item does not support this unit of measure")
		}
		item.CatalogItemID = *input.CatalogItemID
	}

	session.Dirty = true
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetItemProperties fills the draft's physical characteristics.
func (s *WizardService) SetItemProperties(ctx context.Context, id uuid.UUID, props *entity.ItemCharacteristics) (*wizard.Session, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.ItemDraft == nil {
		return nil, apperror.NewBadRequestError("No item draft is open")
	}

	session.ItemDraft.Item.Properties = *props
	session.Dirty = true

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ItemDefectsInput carries the defects/stains sub-step inputs.
type ItemDefectsInput struct {
	Stains            []entity.Stain
	Defects           []entity.Defect
	NoGuarantee       bool
	NoGuaranteeReason string
	Notes             string
}

// SetItemDefects fills the draft's stains, defects and guarantee waiver.
func (s *WizardService) SetItemDefects(ctx context.Context, id uuid.UUID, input *ItemDefectsInput) (*wizard.Session, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.ItemDraft == nil {
		return nil, apperror.NewBadRequestError("No item draft is open")
	}

	item := &session.ItemDraft.Item
	item.Stains = input.Stains
	item.Defects = input.Defects
	item.NoGuarantee = input.NoGuarantee
	item.NoGuaranteeReason = input.NoGuaranteeReason
	item.Notes = input.Notes
	session.Dirty = true

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ItemPricingInput carries the price-calculator sub-step inputs.
type ItemPricingInput struct {
	CatalogItemID uuid.UUID
	ModifierCodes []string
}

// SetItemPricing resolves the catalog price and applies the selected
// modifiers by value. Only modifiers applicable to the item's category
// group are accepted.
func (s *WizardService) SetItemPricing(ctx context.Context, id uuid.UUID, input *ItemPricingInput) (*wizard.Session, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.ItemDraft == nil {
		return nil, apperror.NewBadRequestError("No item draft is open")
	}
	item := &session.ItemDraft.Item

	catalogItem, err := s.catalogRepo.GetItemByID(ctx, input.CatalogItemID)
	if err != nil {
		return nil, err
	}
	if catalogItem == nil {
		return nil, apperror.NewNotFoundError("Catalog item")
	}

	item.CatalogItemID = catalogItem.ID
	item.UnitPrice = catalogItem.BasePrice

	selected := make([]entity.SelectedModifier, 0, len(input.ModifierCodes))
	for _, code := range input.ModifierCodes {
		modifier, err := s.catalogRepo.GetModifierByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if modifier == nil || !modifier.Active {
			return nil, apperror.NewNotFoundError("Price modifier " + code)
		}
		if !pricing.ModifierApplies(modifier.Group, item.CategoryGroup) {
			return nil, apperror.NewBadRequestError(
				"Modifier " + code + " does not apply to this item's category")
		}
		selected = append(selected, entity.SelectedModifier{
			Code:    modifier.Code,
			Name:    modifier.Name,
			Type:    modifier.Type,
			Percent: modifier.Percent,
			Amount:  modifier.Amount,
		})
	}
	item.Modifiers = selected

	p := pricing.CalculateItem(item)
	item.BasePrice = p.BasePrice
	item.ModifiersAmount = p.ModifiersAmount
	item.FinalPrice = p.FinalPrice

	session.Dirty = true
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ItemNavigateForward advances the draft one sub-step.
func (s *WizardService) ItemNavigateForward(ctx context.Context, id uuid.UUID) (*wizard.Session, []wizard.RuleViolation, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	violations, err := session.ItemNavigateForward(s.rules)
	if err != nil {
		return nil, nil, apperror.NewBadRequestError(err.Error())
	}
	if wizard.Blocking(violations) {
		return session, violations, nil
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, nil, err
	}
	return session, violations, nil
}

// ItemNavigateBack moves the draft one sub-step back.
func (s *WizardService) ItemNavigateBack(ctx context.Context, id uuid.UUID) (*wizard.Session, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := session.ItemNavigateBack(); err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CompleteItem validates the whole draft, stores it in the order and
// refreshes order financials.
func (s *WizardService) CompleteItem(ctx context.Context, id uuid.UUID) (*wizard.Session, []wizard.RuleViolation, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	violations, err := session.CompleteItem(s.rules)
	if err != nil {
		return nil, nil, apperror.NewBadRequestError(err.Error())
	}
	if wizard.Blocking(violations) {
		return session, violations, nil
	}

	if err := s.recalculate(ctx, session); err != nil {
		return nil, nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, nil, err
	}
	s.logger.Debug("item completed",
		zap.String("session_id", id.String()),
		zap.Int("items", len(session.Items)))
	return session, violations, nil
}

// CancelItem discards the draft; the order's items are untouched.
func (s *WizardService) CancelItem(ctx context.Context, id uuid.UUID) (*wizard.Session, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	session.CancelItem()
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// RemoveItem deletes an item from the order and refreshes financials.
func (s *WizardService) RemoveItem(ctx context.Context, id uuid.UUID, index int) (*wizard.Session, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := session.RemoveItem(index); err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}
	if err := s.recalculate(ctx, session); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
