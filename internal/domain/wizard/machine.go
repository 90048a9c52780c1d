package wizard

import (
	"errors"

	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
)

// Severity of a violated rule. Errors block forward navigation; warnings
// are surfaced but do not gate.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// RuleViolation describes one violated validation rule for a step.
type RuleViolation struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Blocking reports whether any violation in the list has error severity.
func Blocking(violations []RuleViolation) bool {
	for _, v := range violations {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}

// StepValidator gates forward transitions of both machines. Implementations
// are pure and synchronous.
type StepValidator interface {
	ValidateStep(s *Session, step enum.WizardStep) []RuleViolation
	ValidateItemStep(d *ItemDraft, step enum.ItemWizardStep) []RuleViolation
}

var (
	ErrSessionFinished = errors.New("wizard session already finished")
	ErrDraftOpen       = errors.New("an item draft is already open")
	ErrNoDraft         = errors.New("no item draft is open")
)

// NavigateForward advances the session to the next step if the current
// step passes validation. A non-empty blocking violation list leaves the
// current step unchanged. Forward from the final step marks it completed
// without moving.
func (s *Session) NavigateForward(v StepValidator) ([]RuleViolation, error) {
	if s.Finished() {
		return nil, ErrSessionFinished
	}

	violations := v.ValidateStep(s, s.CurrentStep)
	if Blocking(violations) {
		return violations, nil
	}

	s.MarkStepCompleted(s.CurrentStep)
	if i := s.CurrentStep.Index(); i >= 0 && i < len(enum.WizardStepOrder)-1 {
		s.CurrentStep = enum.WizardStepOrder[i+1]
	}
	return violations, nil
}

// NavigateBack moves to the previous step. A no-op on the first step.
// Entered data is never cleared by going back.
func (s *Session) NavigateBack() {
	if i := s.CurrentStep.Index(); i > 0 {
		s.CurrentStep = enum.WizardStepOrder[i-1]
	}
}
