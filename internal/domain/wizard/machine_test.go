package wizard_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/validation"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/wizard"
)

var rules = validation.Rules{}

func newSession() *wizard.Session {
	return wizard.NewSession(uuid.New())
}

func selectExistingClient(s *wizard.Session) {
	id := uuid.New()
	s.Client = wizard.ClientSelection{Mode: enum.ClientModeExisting, ClientID: &id}
}

func selectBranch(s *wizard.Session) {
	id := uuid.New()
	s.Branch = wizard.BranchSelection{BranchID: &id, Name: "Main"}
}

func fillDraft(d *wizard.ItemDraft) {
	d.Item.CategoryCode = "CLOTHING"
	d.Item.CategoryGroup = enum.GroupTextile
	d.Item.Name = "Coat"
	d.Item.Quantity = 1
	d.Item.Unit = enum.UnitPiece
	d.Item.UnitPrice = 25000
	d.Item.Properties.Material = enum.MaterialWool
	d.Item.Properties.Color = "black"
}

func addItem(t *testing.T, s *wizard.Session) {
	t.Helper()
	if err := s.StartItem(); err != nil {
		t.Fatalf("StartItem: %v", err)
	}
	fillDraft(s.ItemDraft)
	violations, err := s.CompleteItem(rules)
	if err != nil {
		t.Fatalf("CompleteItem: %v", err)
	}
	if wizard.Blocking(violations) {
		t.Fatalf("CompleteItem blocked: %v", violations)
	}
}

func TestNavigateForwardBlockedByValidation(t *testing.T) {
	s := newSession()

	violations, err := s.NavigateForward(rules)
	if err != nil {
		t.Fatalf("NavigateForward: %v", err)
	}
	if len(violations) == 0 {
		t.Fatal("expected violations for empty client selection")
	}
	if s.CurrentStep != enum.StepClientSelection {
		t.Errorf("step changed to %v despite violations", s.CurrentStep)
	}
	if len(s.CompletedSteps) != 0 {
		t.Errorf("blocked transition marked steps completed: %v", s.CompletedSteps)
	}
}

func TestNavigateForwardHappyPath(t *testing.T) {
	s := newSession()

	selectExistingClient(s)
	mustForward(t, s, enum.StepBranchSelection)

	selectBranch(s)
	mustForward(t, s, enum.StepItemManager)

	addItem(t, s)
	mustForward(t, s, enum.StepOrderParameters)

	mustForward(t, s, enum.StepOrderConfirmation)

	s.Confirmation.TermsAccepted = true
	s.Confirmation.SignatureData = []byte("sig")
	mustForward(t, s, enum.StepOrderConfirmation)

	if got := s.Progress(); got != 100 {
		t.Errorf("Progress = %v, want 100", got)
	}
}

func mustForward(t *testing.T, s *wizard.Session, want enum.WizardStep) {
	t.Helper()
	violations, err := s.NavigateForward(rules)
	if err != nil {
		t.Fatalf("NavigateForward from %v: %v", s.CurrentStep, err)
	}
	if wizard.Blocking(violations) {
		t.Fatalf("NavigateForward blocked: %v", violations)
	}
	if s.CurrentStep != want {
		t.Fatalf("CurrentStep = %v, want %v", s.CurrentStep, want)
	}
}

func TestNavigateBackNoOpOnFirstStep(t *testing.T) {
	s := newSession()
	s.NavigateBack()
	if s.CurrentStep != enum.StepClientSelection {
		t.Errorf("CurrentStep = %v, want CLIENT_SELECTION", s.CurrentStep)
	}
}

func TestNavigateBackKeepsData(t *testing.T) {
	s := newSession()
	selectExistingClient(s)
	mustForward(t, s, enum.StepBranchSelection)

	s.NavigateBack()
	if s.CurrentStep != enum.StepClientSelection {
		t.Fatalf("CurrentStep = %v, want CLIENT_SELECTION", s.CurrentStep)
	}
	if s.Client.ClientID == nil {
		t.Error("going back cleared the client selection")
	}
}

func TestProgressMonotonic(t *testing.T) {
	s := newSession()
	last := s.Progress()

	selectExistingClient(s)
	if _, err := s.NavigateForward(rules); err != nil {
		t.Fatal(err)
	}
	if p := s.Progress(); p < last {
		t.Fatalf("progress decreased from %v to %v", last, p)
	}
	last = s.Progress()

	s.NavigateBack()
	if p := s.Progress(); p < last {
		t.Errorf("progress decreased from %v to %v after NavigateBack", last, p)
	}

	// Marking an already-completed step again changes nothing.
	s.MarkStepCompleted(enum.StepClientSelection)
	if p := s.Progress(); p != last {
		t.Errorf("progress = %v after idempotent mark, want %v", p, last)
	}
}

func TestReset(t *testing.T) {
	s := newSession()
	selectExistingClient(s)
	mustForward(t, s, enum.StepBranchSelection)
	selectBranch(s)
	mustForward(t, s, enum.StepItemManager)
	addItem(t, s)

	s.Reset()

	if s.CurrentStep != enum.StepClientSelection {
		t.Errorf("CurrentStep = %v, want CLIENT_SELECTION", s.CurrentStep)
	}
	if len(s.CompletedSteps) != 0 || len(s.Items) != 0 || s.Client.ClientID != nil {
		t.Error("Reset did not clear session state")
	}
	if s.Progress() != 0 {
		t.Errorf("Progress = %v after reset, want 0", s.Progress())
	}
	if s.Params.DiscountType != enum.DiscountNone || s.Params.ExpediteType != enum.ExpediteStandard {
		t.Error("Reset did not restore default order parameters")
	}
}

func TestPrepaymentGatedByTotal(t *testing.T) {
	s := newSession()
	s.CurrentStep = enum.StepOrderParameters
	s.Financials.TotalAmount = 10000
	s.Params.PrepaymentAmount = 15000

	violations, err := s.NavigateForward(rules)
	if err != nil {
		t.Fatal(err)
	}
	if !wizard.Blocking(violations) {
		t.Fatal("expected prepayment over total to block")
	}
	if s.CurrentStep != enum.StepOrderParameters {
		t.Errorf("step advanced to %v", s.CurrentStep)
	}
}

func TestConfirmationRequiresTermsAndSignature(t *testing.T) {
	s := newSession()
	s.CurrentStep = enum.StepOrderConfirmation

	s.Confirmation.TermsAccepted = true
	violations, err := s.NavigateForward(rules)
	if err != nil {
		t.Fatal(err)
	}
	if !wizard.Blocking(violations) {
		t.Error("expected missing signature to block confirmation")
	}

	s.Confirmation.SignatureData = []byte("sig")
	s.Confirmation.TermsAccepted = false
	violations, err = s.NavigateForward(rules)
	if err != nil {
		t.Fatal(err)
	}
	if !wizard.Blocking(violations) {
		t.Error("expected unaccepted terms to block confirmation")
	}
}

func TestItemManagerBlocksOnOpenDraft(t *testing.T) {
	s := newSession()
	s.CurrentStep = enum.StepItemManager
	s.Items = []entity.OrderItem{{Name: "Coat"}}
	if err := s.StartItem(); err != nil {
		t.Fatal(err)
	}

	violations, err := s.NavigateForward(rules)
	if err != nil {
		t.Fatal(err)
	}
	if !wizard.Blocking(violations) {
		t.Error("expected open draft to block leaving the item manager")
	}
}
