package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/pricing"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/repository"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/validation"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/wizard"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/apperror"
	"go.uber.org/zap"
)

// WizardService orchestrates the order wizard: it loads the session,
// applies a state machine operation, recomputes financials where inputs
// changed, and saves the session back. The machines themselves stay pure.
type WizardService struct {
	sessionRepo  repository.WizardSessionRepository
	clientRepo   repository.ClientRepository
	branchRepo   repository.BranchRepository
	catalogRepo  repository.CatalogRepository
	discountRepo repository.DiscountRuleRepository
	expediteRepo repository.ExpediteRuleRepository
	rules        validation.Rules
	logger       *zap.Logger
}

// NewWizardService creates a new wizard service
func NewWizardService(
	sessionRepo repository.WizardSessionRepository,
	clientRepo repository.ClientRepository,
	branchRepo repository.BranchRepository,
	catalogRepo repository.CatalogRepository,
	discountRepo repository.DiscountRuleRepository,
	expediteRepo repository.ExpediteRuleRepository,
	logger *zap.Logger,
) *WizardService {
	return &WizardService{
		sessionRepo:  sessionRepo,
		clientRepo:   clientRepo,
		branchRepo:   branchRepo,
		catalogRepo:  catalogRepo,
		discountRepo: discountRepo,
		expediteRepo: expediteRepo,
		logger:       logger,
	}
}

// StartSession resumes the operator's unfinished session if one exists,
// otherwise starts a fresh one.
func (s *WizardService) StartSession(ctx context.Context, operatorID uuid.UUID) (*wizard.Session, error) {
	existing, err := s.sessionRepo.GetActiveByOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	session := wizard.NewSession(operatorID)
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Info("wizard session started",
		zap.String("session_id", session.ID.String()),
		zap.String("operator_id", operatorID.String()))
	return session, nil
}

// GetSession returns a session by ID.
func (s *WizardService) GetSession(ctx context.Context, id uuid.UUID) (*wizard.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Wizard session")
	}
	return session, nil
}

// NavigateForward advances the wizard one step if the current step is
// valid. Financials are recomputed first so step gating sees current
// numbers.
func (s *WizardService) NavigateForward(ctx context.Context, id uuid.UUID) (*wizard.Session, []wizard.RuleViolation, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if err := s.recalculate(ctx, session); err != nil {
		return nil, nil, err
	}

	violations, err := session.NavigateForward(s.rules)
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

// NavigateBack moves the wizard one step back. Entered data is kept.
func (s *WizardService) NavigateBack(ctx context.Context, id uuid.UUID) (*wizard.Session, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	session.NavigateBack()
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ResetSession clears all entered state and returns to the first step.
func (s *WizardService) ResetSession(ctx context.Context, id uuid.UUID) (*wizard.Session, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Reset()
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Info("wizard session reset", zap.String("session_id", id.String()))
	return session, nil
}

// ClientSelectionInput carries the client-step inputs
type ClientSelectionInput struct {
	Mode     enum.ClientMode
	ClientID *uuid.UUID
	Draft    *wizard.ClientDraft
}

// SelectClient records the client choice. For mode "existing" the client
// must exist; for "new"/"edit" the draft is kept on the session and only
// persisted at finalize.
func (s *WizardService) SelectClient(ctx context.Context, id uuid.UUID, input *ClientSelectionInput) (*wizard.Session, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if !input.Mode.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown client selection mode")
	}

	switch input.Mode {
	case enum.ClientModeExisting:
		if input.ClientID == nil {
			return nil, apperror.NewBadRequestError("Client ID is required")
		}
		client, err := s.clientRepo.GetByID(ctx, *input.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, apperror.NewNotFoundError("Client")
		}
	case enum.ClientModeEdit:
		if input.ClientID == nil {
			return nil, apperror.NewBadRequestError("Client ID is required for edit mode")
		}
	}

	session.Client = wizard.ClientSelection{
		Mode:     input.Mode,
		ClientID: input.ClientID,
		Draft:    input.Draft,
	}
	session.Dirty = true

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectBranch records the branch choice after checking it exists and is
// active.
func (s *WizardService) SelectBranch(ctx context.Context, id, branchID uuid.UUID) (*wizard.Session, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	branch, err := s.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}
	if !branch.Active {
		return nil, apperror.NewBadRequestError("Branch is not active")
	}

	session.Branch = wizard.BranchSelection{
		BranchID: &branch.ID,
		Name:     branch.Name,
		Address:  branch.Address,
	}
	session.Dirty = true

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// OrderParamsInput carries the order-parameters step inputs. Money is
// kopecks.
type OrderParamsInput struct {
	DiscountType          enum.DiscountType
	CustomDiscountPercent float64
	ExpediteType          enum.ExpediteType
	PaymentMethod         enum.PaymentMethod
	PrepaymentAmount      int64
	Comments              string
}

// SetOrderParams applies order-level parameters and recomputes financials.
// A prepayment above the resulting total is rejected and the previous
// parameters and financials are kept unchanged.
func (s *WizardService) SetOrderParams(ctx context.Context, id uuid.UUID, input *OrderParamsInput) (*wizard.Session, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if !input.DiscountType.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown discount type")
	}
	if !input.ExpediteType.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown expedite type")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown payment method")
	}
	if input.PrepaymentAmount < 0 {
		return nil, apperror.NewBadRequestError("Prepayment cannot be negative")
	}

	prevParams := session.Params
	prevFinancials := session.Financials

	session.Params = wizard.OrderParams{
		DiscountType:          input.DiscountType,
		CustomDiscountPercent: input.CustomDiscountPercent,
		ExpediteType:          input.ExpediteType,
		PaymentMethod:         input.PaymentMethod,
		PrepaymentAmount:      input.PrepaymentAmount,
		Comments:              input.Comments,
	}

	if err := s.recalculate(ctx, session); err != nil {
		session.Params = prevParams
		session.Financials = prevFinancials
		return nil, err
	}

	if input.PrepaymentAmount > session.Financials.TotalAmount {
		session.Params = prevParams
		session.Financials = prevFinancials
		return nil, apperror.NewBadRequestError("Prepayment cannot exceed the order total")
	}

	session.Dirty = true
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetConfirmation records terms acceptance and the client signature.
func (s *WizardService) SetConfirmation(ctx context.Context, id uuid.UUID, termsAccepted bool, signature []byte) (*wizard.Session, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Confirmation.TermsAccepted = termsAccepted
	if len(signature) > 0 {
		now := time.Now()
		session.Confirmation.SignatureData = signature
		session.Confirmation.SignedAt = &now
	}
	session.Dirty = true

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// recalculate refreshes the session's financial snapshot from the full
// current input set.
func (s *WizardService) recalculate(ctx context.Context, session *wizard.Session) error {
	in := &pricing.Input{
		Items:                 session.Items,
		DiscountType:          session.Params.DiscountType,
		CustomDiscountPercent: session.Params.CustomDiscountPercent,
		ExpediteType:          session.Params.ExpediteType,
		PrepaymentAmount:      session.Params.PrepaymentAmount,
		PaymentMethod:         session.Params.PaymentMethod,
	}

	switch session.Params.DiscountType {
	case enum.DiscountNone, enum.DiscountCustom:
	default:
		rule, err := s.discountRepo.GetByType(ctx, session.Params.DiscountType)
		if err != nil {
			return err
		}
		in.DiscountRule = rule
	}

	if session.Params.ExpediteType == enum.ExpediteCustom {
		rule, err := s.expediteRepo.GetByType(ctx, session.Params.ExpediteType)
		if err != nil {
			return err
		}
		in.ExpediteRule = rule
	}

	session.Financials = pricing.Calculate(in)
	return nil
}
