package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/apperror"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/email"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// blockingRenderer parks inside RenderPDF until released, so tests can hold
// one receipt action in flight while exercising the others.
type blockingRenderer struct {
	entered chan struct{}
	release chan struct{}
}

func newBlockingRenderer() *blockingRenderer {
	return &blockingRenderer{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (r *blockingRenderer) RenderPDF(ctx context.Context, receipt *entity.Receipt) ([]byte, error) {
	r.entered <- struct{}{}
	<-r.release
	return []byte("%PDF-1.4"), nil
}

type recordingPrinter struct {
	prints int
}

func (p *recordingPrinter) Print(data []byte) error { p.prints++; return nil }
func (p *recordingPrinter) Close() error            { return nil }
func (p *recordingPrinter) IsConnected() bool       { return true }

func finalizedOrder(t *testing.T, repo *fakeOrderRepo) *entity.Order {
	t.Helper()

	now := time.Now()
	clientEmail := "olena@example.com"
	order := &entity.Order{
		ID:            uuid.New(),
		OrderNumber:   "ORD-AB12CD34",
		ReceiptNumber: "R-AB12CD34",
		Subtotal:      100000,
		TotalAmount:   100000,
		BalanceAmount: 100000,
		CompletedAt:   &now,
		CreatedAt:     now,
		Client: &entity.Client{
			FirstName: "Olena",
			LastName:  "Kovalenko",
			Email:     &clientEmail,
		},
	}
	if err := repo.Create(context.Background(), order); err != nil {
		t.Fatal(err)
	}
	return order
}

func newTestReceiptService(t *testing.T) (*ReceiptService, *fakeOrderRepo, *blockingRenderer, *recordingPrinter) {
	t.Helper()
	orderRepo := newFakeOrderRepo()
	renderer := newBlockingRenderer()
	p := &recordingPrinter{}
	svc := NewReceiptService(orderRepo, renderer, email.NewEmailService(email.EmailConfig{}), p, "AKSI", zap.NewNop())
	return svc, orderRepo, renderer, p
}

func TestBlockedEmailDoesNotBlockPrint(t *testing.T) {
	svc, orderRepo, renderer, p := newTestReceiptService(t)
	order := finalizedOrder(t, orderRepo)

	emailDone := make(chan error, 1)
	go func() {
		emailDone <- svc.EmailReceipt(context.Background(), order.ID)
	}()

	// Wait until the email command is parked inside the renderer.
	select {
	case <-renderer.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("email command never reached the renderer")
	}

	// Printing the same order must not wait on the email command.
	printDone := make(chan error, 1)
	go func() {
		printDone <- svc.PrintReceipt(context.Background(), order.ID)
	}()
	select {
	case err := <-printDone:
		if err != nil {
			t.Fatalf("PrintReceipt: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("PrintReceipt blocked behind the in-flight email command")
	}
	if p.prints != 1 {
		t.Fatalf("prints = %d, want 1", p.prints)
	}

	close(renderer.release)
	// The SMTP send fails against the empty test config; what matters here
	// is that the command terminates and releases its flag.
	if err := <-emailDone; err == nil {
		t.Fatal("expected email send to fail with the empty SMTP config")
	}
	if err := svc.acquire(order.ID, actionEmail); err != nil {
		t.Fatalf("email flag not released after the command finished: %v", err)
	}
	svc.release(order.ID, actionEmail)
}

func TestSameReceiptActionConflicts(t *testing.T) {
	svc, orderRepo, renderer, _ := newTestReceiptService(t)
	order := finalizedOrder(t, orderRepo)

	emailDone := make(chan error, 1)
	go func() {
		emailDone <- svc.EmailReceipt(context.Background(), order.ID)
	}()
	select {
	case <-renderer.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("email command never reached the renderer")
	}

	err := svc.EmailReceipt(context.Background(), order.ID)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != http.StatusConflict {
		t.Fatalf("second email while one is in flight: got %v, want conflict", err)
	}

	close(renderer.release)
	<-emailDone
}

func TestAcquireIsScopedPerOrderAndAction(t *testing.T) {
	svc, _, _, _ := newTestReceiptService(t)
	orderA := uuid.New()
	orderB := uuid.New()

	if err := svc.acquire(orderA, actionEmail); err != nil {
		t.Fatal(err)
	}
	if err := svc.acquire(orderA, actionEmail); err == nil {
		t.Fatal("second acquire of the same order+action should conflict")
	}
	if err := svc.acquire(orderA, actionPrint); err != nil {
		t.Fatalf("different action on the same order conflicted: %v", err)
	}
	if err := svc.acquire(orderB, actionEmail); err != nil {
		t.Fatalf("same action on a different order conflicted: %v", err)
	}

	svc.release(orderA, actionEmail)
	if err := svc.acquire(orderA, actionEmail); err != nil {
		t.Fatalf("acquire after release failed: %v", err)
	}
}
