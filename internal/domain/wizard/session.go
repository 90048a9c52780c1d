package wizard

import (
	"time"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/pricing"
)

// ClientDraft holds the fields of a client being created or edited inside
// the wizard, before anything is persisted.
type ClientDraft struct {
	FirstName       string                 `json:"first_name"`
	LastName        string                 `json:"last_name"`
	Phone           string                 `json:"phone"`
	Email           string                 `json:"email,omitempty"`
	Address         string                 `json:"address,omitempty"`
	ContactChannels []enum.ContactChannel  `json:"contact_channels,omitempty"`
	Source          enum.ClientSource      `json:"source,omitempty"`
	DiscountCardNo  string                 `json:"discount_card_no,omitempty"`
}

// ClientSelection is exclusive: ClientID is meaningful for mode "existing",
// Draft for modes "new" and "edit".
type ClientSelection struct {
	Mode     enum.ClientMode `json:"mode"`
	ClientID *uuid.UUID      `json:"client_id,omitempty"`
	Draft    *ClientDraft    `json:"draft,omitempty"`
}

// BranchSelection references the chosen branch.
type BranchSelection struct {
	BranchID *uuid.UUID `json:"branch_id,omitempty"`
	Name     string     `json:"name,omitempty"`
	Address  string     `json:"address,omitempty"`
}

// OrderParams are the order-level inputs entered on the parameters step.
// Money is kopecks.
type OrderParams struct {
	DiscountType          enum.DiscountType  `json:"discount_type"`
	CustomDiscountPercent float64            `json:"custom_discount_percent,omitempty"`
	ExpediteType          enum.ExpediteType  `json:"expedite_type"`
	PaymentMethod         enum.PaymentMethod `json:"payment_method"`
	PrepaymentAmount      int64              `json:"prepayment_amount"`
	Comments              string             `json:"comments,omitempty"`
}

// Confirmation holds the terms/signature state collected on the final step.
type Confirmation struct {
	TermsAccepted bool       `json:"terms_accepted"`
	SignatureData []byte     `json:"signature_data,omitempty"`
	SignedAt      *time.Time `json:"signed_at,omitempty"`
}

// Session is the full wizard state for one in-progress order. It is
// serialized as a whole into the session store; last write wins.
type Session struct {
	ID             uuid.UUID                `json:"id"`
	OperatorID     uuid.UUID                `json:"operator_id"`
	CurrentStep    enum.WizardStep          `json:"current_step"`
	CompletedSteps map[enum.WizardStep]bool `json:"completed_steps"`
	Dirty          bool                     `json:"dirty"`
	StartedAt      time.Time                `json:"started_at"`
	FinishedAt     *time.Time               `json:"finished_at,omitempty"`

	Client       ClientSelection    `json:"client"`
	Branch       BranchSelection    `json:"branch"`
	Items        []entity.OrderItem `json:"items"`
	Params       OrderParams        `json:"params"`
	Confirmation Confirmation       `json:"confirmation"`
	Financials   pricing.Financials `json:"financials"`

	// ItemDraft is the single open item sub-wizard, nil when none is open.
	ItemDraft *ItemDraft `json:"item_draft,omitempty"`

	FinalizedOrderID *uuid.UUID `json:"finalized_order_id,omitempty"`
}

// NewSession starts a wizard at the client-selection step with default
// order parameters.
func NewSession(operatorID uuid.UUID) *Session {
	return &Session{
		ID:             uuid.New(),
		OperatorID:     operatorID,
		CurrentStep:    enum.StepClientSelection,
		CompletedSteps: make(map[enum.WizardStep]bool),
		StartedAt:      time.Now(),
		Params: OrderParams{
			DiscountType:  enum.DiscountNone,
			ExpediteType:  enum.ExpediteStandard,
			PaymentMethod: enum.PaymentCash,
		},
	}
}

// Reset clears all entered state and returns the session to the initial
// step. Identity and start time are preserved.
func (s *Session) Reset() {
	s.CurrentStep = enum.StepClientSelection
	s.CompletedSteps = make(map[enum.WizardStep]bool)
	s.Dirty = false
	s.FinishedAt = nil
	s.Client = ClientSelection{}
	s.Branch = BranchSelection{}
	s.Items = nil
	s.Params = OrderParams{
		DiscountType:  enum.DiscountNone,
		ExpediteType:  enum.ExpediteStandard,
		PaymentMethod: enum.PaymentCash,
	}
	s.Confirmation = Confirmation{}
	s.Financials = pricing.Financials{}
	s.ItemDraft = nil
	s.FinalizedOrderID = nil
}

// MarkStepCompleted records a step as done. Calling it again for the same
// step has no effect.
func (s *Session) MarkStepCompleted(step enum.WizardStep) {
	if !step.IsValid() {
		return
	}
	s.CompletedSteps[step] = true
}

// Progress is the share of completed steps as a percentage. Because
// completed steps are never un-marked, it is monotonically non-decreasing
// over a session's lifetime.
func (s *Session) Progress() float64 {
	return float64(len(s.CompletedSteps)) / float64(len(enum.WizardStepOrder)) * 100
}

// Finished reports whether the order behind this session has been
// finalized.
func (s *Session) Finished() bool {
	return s.FinishedAt != nil
}
