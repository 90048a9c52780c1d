package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/pricing"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/repository"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/wizard"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/apperror"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/utils"
	"go.uber.org/zap"
)

// OrderService turns a confirmed wizard session into a persisted order
// and answers order queries afterwards.
type OrderService struct {
	orderRepo    repository.OrderRepository
	sessionRepo  repository.WizardSessionRepository
	clientRepo   repository.ClientRepository
	discountRepo repository.DiscountRuleRepository
	expediteRepo repository.ExpediteRuleRepository
	logger       *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	sessionRepo repository.WizardSessionRepository,
	clientRepo repository.ClientRepository,
	discountRepo repository.DiscountRuleRepository,
	expediteRepo repository.ExpediteRuleRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		sessionRepo:  sessionRepo,
		clientRepo:   clientRepo,
		discountRepo: discountRepo,
		expediteRepo: expediteRepo,
		logger:       logger,
	}
}

// CanFinalize reports whether the session is ready to be finalized and
// the reasons it is not.
func (s *OrderService) CanFinalize(session *wizard.Session) (bool, []string) {
	var reasons []string
	if !session.Confirmation.TermsAccepted {
		reasons = append(reasons, "terms not accepted")
	}
	if len(session.Confirmation.SignatureData) == 0 {
		reasons = append(reasons, "signature missing")
	}
	if len(session.Items) == 0 {
		reasons = append(reasons, "order has no items")
	}
	if session.Branch.BranchID == nil {
		reasons = append(reasons, "branch not selected")
	}
	if session.Client.ClientID == nil && session.Client.Draft == nil {
		reasons = append(reasons, "client not selected")
	}
	return len(reasons) == 0, reasons
}

// FinalizeOrder persists the order described by the session. Calling it
// again on an already-finalized session returns the existing order without
// re-submitting. On failure the session is left untouched so the operator
// can retry without re-entering anything.
func (s *OrderService) FinalizeOrder(ctx context.Context, sessionID uuid.UUID) (*entity.Order, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Wizard session")
	}

	if session.FinalizedOrderID != nil {
		return s.GetOrder(ctx, *session.FinalizedOrderID)
	}

	if ok, reasons := s.CanFinalize(session); !ok {
		fieldErrors := make([]apperror.FieldError, 0, len(reasons))
		for _, r := range reasons {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "order", Message: r})
		}
		return nil, apperror.NewValidationError(fieldErrors)
	}

	clientID, err := s.resolveClient(ctx, session)
	if err != nil {
		return nil, err
	}

	financials, expediteRule, err := s.computeFinancials(ctx, session)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	due := time.Unix(pricing.CompletionDue(session.Items, session.Params.ExpediteType, expediteRule, now.Unix()), 0)

	items := make([]entity.OrderItem, len(session.Items))
	copy(items, session.Items)
	pricing.ApplyItemPrices(items)

	order := &entity.Order{
		ID:          uuid.New(),
		OrderNumber: utils.GenerateOrderNumber(),
		ClientID:    clientID,
		BranchID:    *session.Branch.BranchID,
		OperatorID:  session.OperatorID,
		Status:      enum.OrderStatusCompleted,

		BasePrice:          financials.BasePrice,
		ModifiersAmount:    financials.ModifiersAmount,
		Subtotal:           financials.Subtotal,
		DiscountType:       financials.DiscountType,
		DiscountPercentage: financials.DiscountPercentage,
		DiscountAmount:     financials.DiscountAmount,
		ExpediteType:       financials.ExpediteType,
		ExpediteAmount:     financials.ExpediteAmount,
		TotalAmount:        financials.TotalAmount,
		PrepaymentAmount:   financials.PrepaymentAmount,
		BalanceAmount:      financials.BalanceAmount,
		PaymentMethod:      financials.PaymentMethod,
		PaymentStatus:      financials.PaymentStatus,

		TermsAccepted: session.Confirmation.TermsAccepted,
		SignatureData: session.Confirmation.SignatureData,
		SignedAt:      session.Confirmation.SignedAt,
		ReceiptNumber: utils.GenerateReceiptNumber(),
		Comments:      session.Params.Comments,
		CompletionDue: &due,
		CompletedAt:   &now,
		Items:         items,
	}
	// Item IDs assigned in the wizard are kept so photos stay attached.
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	session.FinalizedOrderID = &order.ID
	session.FinishedAt = &now
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		// The order exists; a later finalize call will find it through the
		// session once the save succeeds on retry.
		s.logger.Error("failed to mark session finished after finalize",
			zap.String("session_id", sessionID.String()),
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
	}

	s.logger.Info("order finalized",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.Int64("total_kopecks", order.TotalAmount))
	return order, nil
}

// resolveClient returns the persisted client id for the session, creating
// or updating the client from the draft when needed.
func (s *OrderService) resolveClient(ctx context.Context, session *wizard.Session) (uuid.UUID, error) {
	switch session.Client.Mode {
	case enum.ClientModeExisting:
		if session.Client.ClientID == nil {
			return uuid.Nil, apperror.NewBadRequestError("Client ID missing")
		}
		return *session.Client.ClientID, nil

	case enum.ClientModeNew:
		d := session.Client.Draft
		if d == nil {
			return uuid.Nil, apperror.NewBadRequestError("Client details missing")
		}
		client := &entity.Client{
			FirstName:       d.FirstName,
			LastName:        d.LastName,
			Phone:           d.Phone,
			ContactChannels: d.ContactChannels,
			Source:          d.Source,
		}
		if d.Email != "" {
			client.Email = &d.Email
		}
		if d.Address != "" {
			client.Address = &d.Address
		}
		if d.DiscountCardNo != "" {
			client.DiscountCardNo = &d.DiscountCardNo
		}
		if err := s.clientRepo.Create(ctx, client); err != nil {
			return uuid.Nil, err
		}
		return client.ID, nil

	case enum.ClientModeEdit:
		if session.Client.ClientID == nil || session.Client.Draft == nil {
			return uuid.Nil, apperror.NewBadRequestError("Client details missing")
		}
		client, err := s.clientRepo.GetByID(ctx, *session.Client.ClientID)
		if err != nil {
			return uuid.Nil, err
		}
		if client == nil {
			return uuid.Nil, apperror.NewNotFoundError("Client")
		}
		d := session.Client.Draft
		client.FirstName = d.FirstName
		client.LastName = d.LastName
		client.Phone = d.Phone
		client.ContactChannels = d.ContactChannels
		if d.Email != "" {
			client.Email = &d.Email
		}
		if d.Address != "" {
			client.Address = &d.Address
		}
		if err := s.clientRepo.Update(ctx, client); err != nil {
			return uuid.Nil, err
		}
		return client.ID, nil
	}

	return uuid.Nil, apperror.NewBadRequestError("Unknown client selection mode")
}

// computeFinancials recomputes the snapshot from the session's full input
// set at finalize time.
func (s *OrderService) computeFinancials(ctx context.Context, session *wizard.Session) (pricing.Financials, *entity.ExpediteRule, error) {
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
			return pricing.Financials{}, nil, err
		}
		in.DiscountRule = rule
	}

	var expediteRule *entity.ExpediteRule
	if session.Params.ExpediteType == enum.ExpediteCustom {
		rule, err := s.expediteRepo.GetByType(ctx, session.Params.ExpediteType)
		if err != nil {
			return pricing.Financials{}, nil, err
		}
		expediteRule = rule
		in.ExpediteRule = rule
	}

	f := pricing.Calculate(in)
	if f.PrepaymentAmount > f.TotalAmount {
		return pricing.Financials{}, nil, apperror.NewBadRequestError("Prepayment exceeds the order total")
	}
	return f, expediteRule, nil
}

// GetOrder returns an order with client, branch, items and photos.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders returns orders matching the filter.
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	return s.orderRepo.List(ctx, params)
}

// CancelOrder marks an order cancelled.
func (s *OrderService) CancelOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	return s.orderRepo.UpdateStatus(ctx, id, enum.OrderStatusCancelled)
}

// MarkRefunded records an explicit external refund event on an order.
func (s *OrderService) MarkRefunded(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	order.PaymentStatus = enum.PaymentStatusRefunded
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
