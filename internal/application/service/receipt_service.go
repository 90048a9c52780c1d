package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/repository"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/apperror"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/email"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/printer"
	"go.uber.org/zap"
)

// Receipt actions are independent commands. Each order+action pair has its
// own in-flight flag so a failing email does not block printing.
const (
	actionGenerate = "generate"
	actionEmail    = "email"
	actionPrint    = "print"
)

// ReceiptService builds receipts from finalized orders and drives the
// delivery channels: PDF rendering, email and ESC/POS printing.
type ReceiptService struct {
	orderRepo    repository.OrderRepository
	renderer     repository.ReceiptRenderer
	emailService *email.EmailService
	printer      printer.Printer
	businessName string
	logger       *zap.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	orderRepo repository.OrderRepository,
	renderer repository.ReceiptRenderer,
	emailService *email.EmailService,
	p printer.Printer,
	businessName string,
	logger *zap.Logger,
) *ReceiptService {
	return &ReceiptService{
		orderRepo:    orderRepo,
		renderer:     renderer,
		emailService: emailService,
		printer:      p,
		businessName: businessName,
		logger:       logger,
		inFlight:     make(map[string]bool),
	}
}

func (s *ReceiptService) acquire(orderID uuid.UUID, action string) error {
	key := orderID.String() + ":" + action
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[key] {
		return apperror.NewConflictError("Receipt " + action + " already in progress for this order")
	}
	s.inFlight[key] = true
	return nil
}

func (s *ReceiptService) release(orderID uuid.UUID, action string) {
	key := orderID.String() + ":" + action
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, key)
}

// BuildReceipt composes the receipt value object from a finalized order.
func (s *ReceiptService) BuildReceipt(ctx context.Context, orderID uuid.UUID) (*entity.Receipt, error) {
	order, err := s.loadFinalized(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.composeReceipt(order), nil
}

func (s *ReceiptService) loadFinalized(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.CompletedAt == nil {
		return nil, apperror.NewBadRequestError("Order is not finalized")
	}
	return order, nil
}

func kopecks(v int64) float64 { return float64(v) / 100 }

func (s *ReceiptService) composeReceipt(order *entity.Order) *entity.Receipt {
	r := &entity.Receipt{
		Header:        entity.ReceiptHeader{BusinessName: s.businessName},
		ReceiptNumber: order.ReceiptNumber,
		OrderNumber:   order.OrderNumber,
		Date:          order.CreatedAt.Format("02.01.2006 15:04"),
		Subtotal:      kopecks(order.Subtotal),
		Discount:      kopecks(order.DiscountAmount),
		Expedite:      kopecks(order.ExpediteAmount),
		Total:         kopecks(order.TotalAmount),
		Prepaid:       kopecks(order.PrepaymentAmount),
		Balance:       kopecks(order.BalanceAmount),
		PaymentMethod: string(order.PaymentMethod),
	}
	if order.Branch != nil {
		r.Header.BranchName = order.Branch.Name
		r.Header.Address = order.Branch.Address
		if order.Branch.Phone != nil {
			r.Header.Phone = *order.Branch.Phone
		}
	}
	if order.Client != nil {
		r.Client = order.Client.FullName()
	}
	if order.Operator != nil {
		r.Operator = order.Operator.FirstName + " " + order.Operator.LastName
	}
	if order.CompletionDue != nil {
		r.CompletionDue = order.CompletionDue.Format("02.01.2006")
	}
	if len(order.SignatureData) > 0 {
		r.SignatureNote = "Signed by client"
	}

	for _, item := range order.Items {
		line := entity.ReceiptItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			Unit:      string(item.Unit),
			UnitPrice: kopecks(item.UnitPrice),
			Total:     kopecks(item.FinalPrice),
		}
		for _, m := range item.Modifiers {
			line.Modifiers = append(line.Modifiers, m.Name)
		}
		r.Items = append(r.Items, line)
	}
	return r
}

// GeneratePDF renders the receipt as a PDF through the rendering gateway.
func (s *ReceiptService) GeneratePDF(ctx context.Context, orderID uuid.UUID) ([]byte, error) {
	if err := s.acquire(orderID, actionGenerate); err != nil {
		return nil, err
	}
	defer s.release(orderID, actionGenerate)

	order, err := s.loadFinalized(ctx, orderID)
	if err != nil {
		return nil, err
	}

	pdf, err := s.renderer.RenderPDF(ctx, s.composeReceipt(order))
	if err != nil {
		s.logger.Error("receipt render failed",
			zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, err
	}
	return pdf, nil
}

// EmailReceipt renders the receipt and sends it to the client's email.
func (s *ReceiptService) EmailReceipt(ctx context.Context, orderID uuid.UUID) error {
	if err := s.acquire(orderID, actionEmail); err != nil {
		return err
	}
	defer s.release(orderID, actionEmail)

	order, err := s.loadFinalized(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Client == nil || order.Client.Email == nil {
		return apperror.NewBadRequestError("Client has no email address")
	}

	pdf, err := s.renderer.RenderPDF(ctx, s.composeReceipt(order))
	if err != nil {
		// Send without the attachment rather than failing outright.
		s.logger.Warn("receipt render failed, emailing without attachment",
			zap.String("order_id", orderID.String()), zap.Error(err))
		pdf = nil
	}

	completionBy := ""
	if order.CompletionDue != nil {
		completionBy = order.CompletionDue.Format("02.01.2006")
	}
	data := email.ReceiptEmailData{
		ClientName:    order.Client.FullName(),
		OrderNumber:   order.OrderNumber,
		ReceiptNumber: order.ReceiptNumber,
		BranchName:    s.businessName,
		TotalAmount:   fmt.Sprintf("%.2f", kopecks(order.TotalAmount)),
		BalanceAmount: fmt.Sprintf("%.2f", kopecks(order.BalanceAmount)),
		CompletionBy:  completionBy,
	}
	if order.Branch != nil {
		data.BranchName = order.Branch.Name
	}

	if err := s.emailService.SendReceiptEmail(*order.Client.Email, data, pdf); err != nil {
		return apperror.NewNetworkError("Failed to send receipt email: " + err.Error())
	}

	if err := s.orderRepo.MarkEmailed(ctx, orderID); err != nil {
		s.logger.Error("failed to mark order emailed",
			zap.String("order_id", orderID.String()), zap.Error(err))
	}
	return nil
}

// PrintReceipt formats the receipt as an ESC/POS document and sends it to
// the configured printer.
func (s *ReceiptService) PrintReceipt(ctx context.Context, orderID uuid.UUID) error {
	if err := s.acquire(orderID, actionPrint); err != nil {
		return err
	}
	defer s.release(orderID, actionPrint)

	order, err := s.loadFinalized(ctx, orderID)
	if err != nil {
		return err
	}
	if !s.printer.IsConnected() {
		return apperror.NewBadRequestError("No receipt printer connected")
	}

	doc := s.formatDocument(s.composeReceipt(order))
	if err := s.printer.Print(doc); err != nil {
		return apperror.NewNetworkError("Failed to print receipt: " + err.Error())
	}

	if err := s.orderRepo.MarkPrinted(ctx, orderID); err != nil {
		s.logger.Error("failed to mark order printed",
			zap.String("order_id", orderID.String()), zap.Error(err))
	}
	return nil
}

func (s *ReceiptService) formatDocument(r *entity.Receipt) []byte {
	money := func(v float64) string { return fmt.Sprintf("%.2f", v) }

	doc := printer.NewDocument(32).
		SetAlign(printer.AlignCenter).
		SetBold(true).
		Text(r.Header.BusinessName).
		SetBold(false)
	if r.Header.BranchName != "" {
		doc.Text(r.Header.BranchName)
	}
	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	doc.SetAlign(printer.AlignLeft).
		Separator('=').
		KeyValue("Receipt", r.ReceiptNumber).
		KeyValue("Order", r.OrderNumber).
		KeyValue("Date", r.Date).
		KeyValue("Client", r.Client).
		Separator('-')

	for _, item := range r.Items {
		qty := fmt.Sprintf("%g", item.Quantity)
		doc.ItemLine(qty, item.Name, money(item.Total))
		for _, m := range item.Modifiers {
			doc.Text("  + " + m)
		}
	}

	doc.Separator('-').
		KeyValue("Subtotal", money(r.Subtotal))
	if r.Discount > 0 {
		doc.KeyValue("Discount", "-"+money(r.Discount))
	}
	if r.Expedite > 0 {
		doc.KeyValue("Expedite", "+"+money(r.Expedite))
	}
	doc.SetBold(true).
		KeyValue("TOTAL", money(r.Total)).
		SetBold(false).
		KeyValue("Prepaid", money(r.Prepaid)).
		KeyValue("Balance", money(r.Balance)).
		KeyValue("Payment", r.PaymentMethod)
	if r.CompletionDue != "" {
		doc.Separator('-').KeyValue("Ready by", r.CompletionDue)
	}
	doc.FeedLines(2).
		SetAlign(printer.AlignCenter).
		Text("Thank you!").
		FeedLines(3).
		Cut()

	return doc.Bytes()
}

// Close releases the printer connection.
func (s *ReceiptService) Close() error {
	return s.printer.Close()
}
