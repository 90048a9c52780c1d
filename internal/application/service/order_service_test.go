package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/repository"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/wizard"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/apperror"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/pagination"
	"go.uber.org/zap"
)

type fakeOrderRepo struct {
	orders  map[uuid.UUID]*entity.Order
	creates int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	r.creates++
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) GetByNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	out := make([]entity.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	if o := r.orders[id]; o != nil {
		o.Status = status
	}
	return nil
}

func (r *fakeOrderRepo) MarkPrinted(ctx context.Context, id uuid.UUID) error { return nil }
func (r *fakeOrderRepo) MarkEmailed(ctx context.Context, id uuid.UUID) error { return nil }

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*wizard.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*wizard.Session)}
}

func (r *fakeSessionRepo) Save(ctx context.Context, session *wizard.Session) error {
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*wizard.Session, error) {
	return r.sessions[id], nil
}

func (r *fakeSessionRepo) GetActiveByOperator(ctx context.Context, operatorID uuid.UUID) (*wizard.Session, error) {
	for _, s := range r.sessions {
		if s.OperatorID == operatorID && !s.Finished() {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.sessions, id)
	return nil
}

type fakeClientRepo struct {
	clients map[uuid.UUID]*entity.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]*entity.Client)}
}

func (r *fakeClientRepo) Create(ctx context.Context, client *entity.Client) error {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	r.clients[client.ID] = client
	return nil
}

func (r *fakeClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	return r.clients[id], nil
}

func (r *fakeClientRepo) GetByPhone(ctx context.Context, phone string) (*entity.Client, error) {
	for _, c := range r.clients {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) Update(ctx context.Context, client *entity.Client) error {
	r.clients[client.ID] = client
	return nil
}

func (r *fakeClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.clients, id)
	return nil
}

func (r *fakeClientRepo) Search(ctx context.Context, query string, params *pagination.PaginationParams) ([]entity.Client, int64, error) {
	return nil, 0, nil
}

type fakeDiscountRepo struct{ rules map[enum.DiscountType]*entity.DiscountRule }

func (r *fakeDiscountRepo) GetByType(ctx context.Context, t enum.DiscountType) (*entity.DiscountRule, error) {
	return r.rules[t], nil
}

func (r *fakeDiscountRepo) List(ctx context.Context, activeOnly bool) ([]entity.DiscountRule, error) {
	return nil, nil
}

type fakeExpediteRepo struct{ rules map[enum.ExpediteType]*entity.ExpediteRule }

func (r *fakeExpediteRepo) GetByType(ctx context.Context, t enum.ExpediteType) (*entity.ExpediteRule, error) {
	return r.rules[t], nil
}

func (r *fakeExpediteRepo) List(ctx context.Context, activeOnly bool) ([]entity.ExpediteRule, error) {
	return nil, nil
}

func confirmedSession(t *testing.T, clientRepo *fakeClientRepo) *wizard.Session {
	t.Helper()

	client := &entity.Client{FirstName: "Olena", LastName: "Kovalenko", Phone: "+380501234567"}
	if err := clientRepo.Create(context.Background(), client); err != nil {
		t.Fatal(err)
	}

	branchID := uuid.New()
	now := time.Now()
	s := wizard.NewSession(uuid.New())
	s.Client = wizard.ClientSelection{Mode: enum.ClientModeExisting, ClientID: &client.ID}
	s.Branch = wizard.BranchSelection{BranchID: &branchID, Name: "Main"}
	s.Items = []entity.OrderItem{{
		CategoryCode:  "CLOTHING",
		CategoryGroup: enum.GroupTextile,
		Name:          "Coat",
		Quantity:      1,
		Unit:          enum.UnitPiece,
		UnitPrice:     100000,
	}}
	s.Params = wizard.OrderParams{
		DiscountType:     enum.DiscountEvercard,
		ExpediteType:     enum.ExpediteExpress48,
		PaymentMethod:    enum.PaymentCash,
		PrepaymentAmount: 50000,
	}
	s.Confirmation = wizard.Confirmation{
		TermsAccepted: true,
		SignatureData: []byte("signature"),
		SignedAt:      &now,
	}
	return s
}

func newTestOrderService(t *testing.T) (*OrderService, *fakeOrderRepo, *fakeSessionRepo, *fakeClientRepo) {
	t.Helper()
	orderRepo := newFakeOrderRepo()
	sessionRepo := newFakeSessionRepo()
	clientRepo := newFakeClientRepo()
	discountRepo := &fakeDiscountRepo{rules: map[enum.DiscountType]*entity.DiscountRule{
		enum.DiscountEvercard: {Type: enum.DiscountEvercard, Percentage: 10},
	}}
	expediteRepo := &fakeExpediteRepo{rules: map[enum.ExpediteType]*entity.ExpediteRule{}}

	svc := NewOrderService(orderRepo, sessionRepo, clientRepo, discountRepo, expediteRepo, zap.NewNop())
	return svc, orderRepo, sessionRepo, clientRepo
}

func TestFinalizeOrder(t *testing.T) {
	svc, orderRepo, sessionRepo, clientRepo := newTestOrderService(t)
	session := confirmedSession(t, clientRepo)
	if err := sessionRepo.Save(context.Background(), session); err != nil {
		t.Fatal(err)
	}

	order, err := svc.FinalizeOrder(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("FinalizeOrder: %v", err)
	}

	// 1000.00 - 10% = 900.00, +50% expedite = 1350.00; 500.00 prepaid.
	if order.TotalAmount != 135000 {
		t.Errorf("TotalAmount = %d, want 135000", order.TotalAmount)
	}
	if order.BalanceAmount != 85000 {
		t.Errorf("BalanceAmount = %d, want 85000", order.BalanceAmount)
	}
	if order.PaymentStatus != enum.PaymentStatusPartial {
		t.Errorf("PaymentStatus = %v, want PARTIAL", order.PaymentStatus)
	}
	if order.Status != enum.OrderStatusCompleted {
		t.Errorf("Status = %v, want COMPLETED", order.Status)
	}
	if order.OrderNumber == "" || order.ReceiptNumber == "" {
		t.Error("order or receipt number missing")
	}
	if order.CompletionDue == nil {
		t.Fatal("CompletionDue not set")
	}
	// 48h expedite tier.
	want := time.Now().Add(48 * time.Hour)
	if diff := order.CompletionDue.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Errorf("CompletionDue = %v, want about %v", order.CompletionDue, want)
	}
	if !session.Finished() {
		t.Error("session not marked finished")
	}
	if orderRepo.creates != 1 {
		t.Errorf("creates = %d, want 1", orderRepo.creates)
	}
}

func TestFinalizeOrderIdempotent(t *testing.T) {
	svc, orderRepo, sessionRepo, clientRepo := newTestOrderService(t)
	session := confirmedSession(t, clientRepo)
	if err := sessionRepo.Save(context.Background(), session); err != nil {
		t.Fatal(err)
	}

	first, err := svc.FinalizeOrder(context.Background(), session.ID)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.FinalizeOrder(context.Background(), session.ID)
	if err != nil {
		t.Fatal(err)
	}

	if first.ID != second.ID {
		t.Errorf("second finalize returned a different order: %v vs %v", first.ID, second.ID)
	}
	if orderRepo.creates != 1 {
		t.Errorf("creates = %d, want 1 (no duplicate submission)", orderRepo.creates)
	}
}

func TestFinalizeOrderGate(t *testing.T) {
	svc, orderRepo, sessionRepo, clientRepo := newTestOrderService(t)
	session := confirmedSession(t, clientRepo)
	session.Confirmation.TermsAccepted = false
	if err := sessionRepo.Save(context.Background(), session); err != nil {
		t.Fatal(err)
	}

	_, err := svc.FinalizeOrder(context.Background(), session.ID)
	if err == nil {
		t.Fatal("expected finalize to be blocked")
	}
	appErr := apperror.GetAppError(err)
	if appErr.Kind != apperror.KindValidation {
		t.Errorf("error kind = %v, want validation", appErr.Kind)
	}
	if orderRepo.creates != 0 {
		t.Errorf("creates = %d, want 0", orderRepo.creates)
	}
	if session.Finished() {
		t.Error("blocked finalize marked the session finished")
	}
}

func TestFinalizeCreatesNewClientFromDraft(t *testing.T) {
	svc, _, sessionRepo, clientRepo := newTestOrderService(t)
	session := confirmedSession(t, clientRepo)
	session.Client = wizard.ClientSelection{
		Mode: enum.ClientModeNew,
		Draft: &wizard.ClientDraft{
			FirstName: "Ivan",
			LastName:  "Shevchenko",
			Phone:     "+380671112233",
			Source:    enum.SourceRecommendation,
		},
	}
	if err := sessionRepo.Save(context.Background(), session); err != nil {
		t.Fatal(err)
	}

	order, err := svc.FinalizeOrder(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("FinalizeOrder: %v", err)
	}

	created, err := clientRepo.GetByPhone(context.Background(), "+380671112233")
	if err != nil {
		t.Fatal(err)
	}
	if created == nil {
		t.Fatal("draft client was not persisted")
	}
	if order.ClientID != created.ID {
		t.Errorf("order.ClientID = %v, want %v", order.ClientID, created.ID)
	}
}

func TestCompletionDueLeatherWithoutExpedite(t *testing.T) {
	svc, _, sessionRepo, clientRepo := newTestOrderService(t)
	session := confirmedSession(t, clientRepo)
	session.Items[0].CategoryGroup = enum.GroupLeather
	session.Params.ExpediteType = enum.ExpediteStandard
	session.Params.DiscountType = enum.DiscountNone
	session.Params.PrepaymentAmount = 0
	if err := sessionRepo.Save(context.Background(), session); err != nil {
		t.Fatal(err)
	}

	order, err := svc.FinalizeOrder(context.Background(), session.ID)
	if err != nil {
		t.Fatal(err)
	}

	want := time.Now().Add(14 * 24 * time.Hour)
	if diff := order.CompletionDue.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Errorf("CompletionDue = %v, want about 14 days out", order.CompletionDue)
	}
}
