package wizard

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/pricing"
)

// ItemDraft is the state of the nested item sub-wizard. The draft is a
// private working copy; nothing reaches the session's item collection
// until Complete.
type ItemDraft struct {
	Item           entity.OrderItem             `json:"item"`
	Step           enum.ItemWizardStep          `json:"step"`
	CompletedSteps map[enum.ItemWizardStep]bool `json:"completed_steps"`
	// EditIndex is the position being replaced, or -1 when appending.
	EditIndex int `json:"edit_index"`
}

// cloneItem returns a deep copy so edits to a draft never alias the
// session's stored item.
func cloneItem(src *entity.OrderItem) entity.OrderItem {
	dst := *src
	dst.Stains = append([]entity.Stain(nil), src.Stains...)
	dst.Defects = append([]entity.Defect(nil), src.Defects...)
	dst.Modifiers = append([]entity.SelectedModifier(nil), src.Modifiers...)
	dst.Photos = append([]entity.ItemPhoto(nil), src.Photos...)
	return dst
}

// StartItem opens a fresh item draft. Only one draft may be open at a
// time.
func (s *Session) StartItem() error {
	if s.ItemDraft != nil {
		return ErrDraftOpen
	}
	s.ItemDraft = &ItemDraft{
		// The ID is assigned up front so photos taken during the draft
		// already reference their item.
		Item:           entity.OrderItem{ID: uuid.New()},
		Step:           enum.ItemStepBasicInfo,
		CompletedSteps: make(map[enum.ItemWizardStep]bool),
		EditIndex:      -1,
	}
	return nil
}

// StartItemEdit opens a draft that is a copy of the item at index.
// Completing the draft replaces the original by position.
func (s *Session) StartItemEdit(index int) error {
	if s.ItemDraft != nil {
		return ErrDraftOpen
	}
	if index < 0 || index >= len(s.Items) {
		return fmt.Errorf("item index %d out of range", index)
	}
	s.ItemDraft = &ItemDraft{
		Item:           cloneItem(&s.Items[index]),
		Step:           enum.ItemStepBasicInfo,
		CompletedSteps: make(map[enum.ItemWizardStep]bool),
		EditIndex:      index,
	}
	return nil
}

// ItemNavigateForward advances the draft to the next sub-step if the
// current one passes validation.
func (s *Session) ItemNavigateForward(v StepValidator) ([]RuleViolation, error) {
	d := s.ItemDraft
	if d == nil {
		return nil, ErrNoDraft
	}

	violations := v.ValidateItemStep(d, d.Step)
	if Blocking(violations) {
		return violations, nil
	}

	d.CompletedSteps[d.Step] = true
	if i := d.Step.Index(); i >= 0 && i < len(enum.ItemWizardStepOrder)-1 {
		d.Step = enum.ItemWizardStepOrder[i+1]
	}
	return violations, nil
}

// ItemNavigateBack moves the draft to the previous sub-step. A no-op on
// the first.
func (s *Session) ItemNavigateBack() error {
	d := s.ItemDraft
	if d == nil {
		return ErrNoDraft
	}
	if i := d.Step.Index(); i > 0 {
		d.Step = enum.ItemWizardStepOrder[i-1]
	}
	return nil
}

// CompleteItem validates the accumulated draft as a whole, recomputes its
// price breakdown, and appends it to the session's items (or replaces the
// edited position). The wizard cursor returns to the item manager. The
// photo sub-step is skippable; completion does not require it.
func (s *Session) CompleteItem(v StepValidator) ([]RuleViolation, error) {
	d := s.ItemDraft
	if d == nil {
		return nil, ErrNoDraft
	}

	var violations []RuleViolation
	for _, step := range enum.ItemWizardStepOrder {
		if step == enum.ItemStepPhotos {
			continue
		}
		violations = append(violations, v.ValidateItemStep(d, step)...)
	}
	if Blocking(violations) {
		return violations, nil
	}

	p := pricing.CalculateItem(&d.Item)
	d.Item.BasePrice = p.BasePrice
	d.Item.ModifiersAmount = p.ModifiersAmount
	d.Item.FinalPrice = p.FinalPrice

	if d.EditIndex >= 0 && d.EditIndex < len(s.Items) {
		s.Items[d.EditIndex] = d.Item
	} else {
		s.Items = append(s.Items, d.Item)
	}

	s.ItemDraft = nil
	s.CurrentStep = enum.StepItemManager
	s.Dirty = true
	return violations, nil
}

// CancelItem discards the draft unconditionally. The session's item
// collection is left exactly as it was before the draft was opened.
func (s *Session) CancelItem() {
	s.ItemDraft = nil
}

// RemoveItem deletes the item at index from the session.
func (s *Session) RemoveItem(index int) error {
	if index < 0 || index >= len(s.Items) {
		return fmt.Errorf("item index %d out of range", index)
	}
	s.Items = append(s.Items[:index], s.Items[index+1:]...)
	s.Dirty = true
	return nil
}
