package wizard_test

import (
	"reflect"
	"testing"

	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/wizard"
)

func TestStartItemSingleDraft(t *testing.T) {
	s := newSession()
	if err := s.StartItem(); err != nil {
		t.Fatalf("StartItem: %v", err)
	}
	if err := s.StartItem(); err != wizard.ErrDraftOpen {
		t.Errorf("second StartItem error = %v, want ErrDraftOpen", err)
	}
}

func TestItemSubWizardWalk(t *testing.T) {
	s := newSession()
	if err := s.StartItem(); err != nil {
		t.Fatal(err)
	}
	fillDraft(s.ItemDraft)

	want := []enum.ItemWizardStep{
		enum.ItemStepProperties,
		enum.ItemStepDefects,
		enum.ItemStepPricing,
		enum.ItemStepPhotos,
	}
	for _, step := range want {
		violations, err := s.ItemNavigateForward(rules)
		if err != nil {
			t.Fatalf("ItemNavigateForward: %v", err)
		}
		if wizard.Blocking(violations) {
			t.Fatalf("blocked before %v: %v", step, violations)
		}
		if s.ItemDraft.Step != step {
			t.Fatalf("Step = %v, want %v", s.ItemDraft.Step, step)
		}
	}

	// Forward from the last sub-step stays put.
	if _, err := s.ItemNavigateForward(rules); err != nil {
		t.Fatal(err)
	}
	if s.ItemDraft.Step != enum.ItemStepPhotos {
		t.Errorf("Step = %v, want PHOTO_DOCUMENTATION", s.ItemDraft.Step)
	}

	s.ItemNavigateBack()
	if s.ItemDraft.Step != enum.ItemStepPricing {
		t.Errorf("Step = %v after back, want PRICE_CALCULATOR", s.ItemDraft.Step)
	}
}

func TestItemForwardBlockedOnMissingBasics(t *testing.T) {
	s := newSession()
	if err := s.StartItem(); err != nil {
		t.Fatal(err)
	}

	violations, err := s.ItemNavigateForward(rules)
	if err != nil {
		t.Fatal(err)
	}
	if !wizard.Blocking(violations) {
		t.Fatal("expected empty basic info to block")
	}
	if s.ItemDraft.Step != enum.ItemStepBasicInfo {
		t.Errorf("Step = %v, want ITEM_BASIC_INFO", s.ItemDraft.Step)
	}
}

func TestCompleteItemAppendsAndPrices(t *testing.T) {
	s := newSession()
	addItem(t, s)

	if len(s.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(s.Items))
	}
	if s.ItemDraft != nil {
		t.Error("draft still open after completion")
	}
	if s.CurrentStep != enum.StepItemManager {
		t.Errorf("CurrentStep = %v, want ITEM_MANAGER", s.CurrentStep)
	}
	if !s.Dirty {
		t.Error("completing an item did not mark the session dirty")
	}
	if s.Items[0].FinalPrice != 25000 {
		t.Errorf("FinalPrice = %d, want 25000", s.Items[0].FinalPrice)
	}
}

func TestCompleteItemSkipsPhotoStep(t *testing.T) {
	s := newSession()
	if err := s.StartItem(); err != nil {
		t.Fatal(err)
	}
	fillDraft(s.ItemDraft)
	// No photos attached and the photo step never visited.
	violations, err := s.CompleteItem(rules)
	if err != nil {
		t.Fatal(err)
	}
	if wizard.Blocking(violations) {
		t.Fatalf("photo-less completion blocked: %v", violations)
	}
	if len(s.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(s.Items))
	}
}

func TestCompleteItemValidatesWholeDraft(t *testing.T) {
	s := newSession()
	if err := s.StartItem(); err != nil {
		t.Fatal(err)
	}
	fillDraft(s.ItemDraft)
	s.ItemDraft.Item.Stains = []entity.Stain{{Type: enum.StainOther}}

	violations, err := s.CompleteItem(rules)
	if err != nil {
		t.Fatal(err)
	}
	if !wizard.Blocking(violations) {
		t.Fatal("expected OTHER stain without description to block completion")
	}
	if len(s.Items) != 0 {
		t.Errorf("blocked completion still stored the item")
	}
	if s.ItemDraft == nil {
		t.Error("blocked completion discarded the draft")
	}
}

func TestCancelItemLeavesCollectionUntouched(t *testing.T) {
	s := newSession()
	addItem(t, s)
	before := make([]entity.OrderItem, len(s.Items))
	copy(before, s.Items)

	if err := s.StartItem(); err != nil {
		t.Fatal(err)
	}
	fillDraft(s.ItemDraft)
	s.ItemDraft.Item.Name = "Jacket"
	for i := 0; i < 3; i++ {
		if _, err := s.ItemNavigateForward(rules); err != nil {
			t.Fatal(err)
		}
	}

	s.CancelItem()

	if s.ItemDraft != nil {
		t.Error("draft survived cancel")
	}
	if !reflect.DeepEqual(before, s.Items) {
		t.Errorf("item collection changed by cancelled draft:\nbefore %+v\nafter  %+v", before, s.Items)
	}
}

func TestEditReplacesByPosition(t *testing.T) {
	s := newSession()
	addItem(t, s)
	addItem(t, s)

	if err := s.StartItemEdit(0); err != nil {
		t.Fatalf("StartItemEdit: %v", err)
	}
	if s.ItemDraft.Item.Name != "Coat" {
		t.Fatalf("draft name = %q, want copy of original", s.ItemDraft.Item.Name)
	}

	s.ItemDraft.Item.Name = "Winter coat"
	s.ItemDraft.Item.UnitPrice = 40000
	violations, err := s.CompleteItem(rules)
	if err != nil {
		t.Fatal(err)
	}
	if wizard.Blocking(violations) {
		t.Fatalf("edit completion blocked: %v", violations)
	}

	if len(s.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2 (replace, not append)", len(s.Items))
	}
	if s.Items[0].Name != "Winter coat" || s.Items[0].FinalPrice != 40000 {
		t.Errorf("position 0 not replaced: %+v", s.Items[0])
	}
	if s.Items[1].Name != "Coat" {
		t.Errorf("position 1 disturbed: %+v", s.Items[1])
	}
}

func TestEditDraftDoesNotAliasStoredItem(t *testing.T) {
	s := newSession()
	if err := s.StartItem(); err != nil {
		t.Fatal(err)
	}
	fillDraft(s.ItemDraft)
	s.ItemDraft.Item.Stains = []entity.Stain{{Type: enum.StainGrease}}
	if _, err := s.CompleteItem(rules); err != nil {
		t.Fatal(err)
	}

	if err := s.StartItemEdit(0); err != nil {
		t.Fatal(err)
	}
	s.ItemDraft.Item.Stains[0].Type = enum.StainInk
	s.CancelItem()

	if s.Items[0].Stains[0].Type != enum.StainGrease {
		t.Error("editing a cancelled draft mutated the stored item")
	}
}

func TestStartItemEditOutOfRange(t *testing.T) {
	s := newSession()
	if err := s.StartItemEdit(0); err == nil {
		t.Error("expected error for out-of-range edit index")
	}
}

func TestRemoveItem(t *testing.T) {
	s := newSession()
	addItem(t, s)
	addItem(t, s)

	if err := s.RemoveItem(0); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if len(s.Items) != 1 {
		t.Errorf("len(Items) = %d, want 1", len(s.Items))
	}
	if err := s.RemoveItem(5); err == nil {
		t.Error("expected error for out-of-range remove index")
	}
}
