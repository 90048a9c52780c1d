package pricing

import (
	"testing"

	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
)

func pctMod(name string, pct float64) entity.SelectedModifier {
	return entity.SelectedModifier{Code: name, Name: name, Type: enum.ModifierPercentage, Percent: pct}
}

func fixedMod(name string, amount int64) entity.SelectedModifier {
	return entity.SelectedModifier{Code: name, Name: name, Type: enum.ModifierFixed, Amount: amount}
}

func TestCalculateItem(t *testing.T) {
	tests := []struct {
		name      string
		item      entity.OrderItem
		wantBase  int64
		wantFinal int64
	}{
		{
			name: "base price with percentage modifier",
			item: entity.OrderItem{
				UnitPrice: 10000, Quantity: 2,
				Modifiers: []entity.SelectedModifier{pctMod("hand_cleaning", 20)},
			},
			wantBase:  20000,
			wantFinal: 24000,
		},
		{
			name:      "no modifiers",
			item:      entity.OrderItem{UnitPrice: 15050, Quantity: 1},
			wantBase:  15050,
			wantFinal: 15050,
		},
		{
			name: "fractional quantity by weight",
			item: entity.OrderItem{UnitPrice: 20000, Quantity: 2.5},
			// 200.00/kg * 2.5kg
			wantBase:  50000,
			wantFinal: 50000,
		},
		{
			name: "mixed percentage and fixed modifiers",
			item: entity.OrderItem{
				UnitPrice: 10000, Quantity: 1,
				Modifiers: []entity.SelectedModifier{pctMod("urgent", 10), fixedMod("button", 500)},
			},
			wantBase:  10000,
			wantFinal: 11500,
		},
		{
			name: "negative modifiers floor at zero",
			item: entity.OrderItem{
				UnitPrice: 1000, Quantity: 1,
				Modifiers: []entity.SelectedModifier{fixedMod("writeoff", -5000)},
			},
			wantBase:  1000,
			wantFinal: 0,
		},
		{
			name: "rounding to whole kopecks",
			item: entity.OrderItem{
				UnitPrice: 10001, Quantity: 1,
				Modifiers: []entity.SelectedModifier{pctMod("half", 0.5)},
			},
			// 10001 * 1.005 = 10051.005 -> 10051
			wantBase:  10001,
			wantFinal: 10051,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateItem(&tt.item)
			if got.BasePrice != tt.wantBase {
				t.Errorf("BasePrice = %d, want %d", got.BasePrice, tt.wantBase)
			}
			if got.FinalPrice != tt.wantFinal {
				t.Errorf("FinalPrice = %d, want %d", got.FinalPrice, tt.wantFinal)
			}
			if got.ModifiersAmount != got.FinalPrice-got.BasePrice {
				t.Errorf("ModifiersAmount = %d, want %d", got.ModifiersAmount, got.FinalPrice-got.BasePrice)
			}
		})
	}
}

func TestCalculateDiscountThenExpedite(t *testing.T) {
	in := &Input{
		Items: []entity.OrderItem{
			{UnitPrice: 100000, Quantity: 1, CategoryGroup: enum.GroupTextile},
		},
		DiscountType: enum.DiscountEvercard,
		DiscountRule: &entity.DiscountRule{Type: enum.DiscountEvercard, Percentage: 10},
		ExpediteType: enum.ExpediteExpress48,
	}

	got := Calculate(in)

	if got.Subtotal != 100000 {
		t.Fatalf("Subtotal = %d, want 100000", got.Subtotal)
	}
	if got.DiscountAmount != 10000 {
		t.Errorf("DiscountAmount = %d, want 10000", got.DiscountAmount)
	}
	// Expedite applies to the post-discount amount: 900.00 * 50%.
	if got.ExpediteAmount != 45000 {
		t.Errorf("ExpediteAmount = %d, want 45000", got.ExpediteAmount)
	}
	if got.TotalAmount != 135000 {
		t.Errorf("TotalAmount = %d, want 135000", got.TotalAmount)
	}
}

func TestCalculatePaymentBreakdown(t *testing.T) {
	base := func() *Input {
		return &Input{
			Items: []entity.OrderItem{
				{UnitPrice: 100000, Quantity: 1, CategoryGroup: enum.GroupTextile},
			},
			DiscountType: enum.DiscountEvercard,
			DiscountRule: &entity.DiscountRule{Type: enum.DiscountEvercard, Percentage: 10},
			ExpediteType: enum.ExpediteExpress48,
		}
	}

	t.Run("partial prepayment", func(t *testing.T) {
		in := base()
		in.PrepaymentAmount = 50000
		got := Calculate(in)
		if got.BalanceAmount != 85000 {
			t.Errorf("BalanceAmount = %d, want 85000", got.BalanceAmount)
		}
		if got.PaymentStatus != enum.PaymentStatusPartial {
			t.Errorf("PaymentStatus = %v, want PARTIAL", got.PaymentStatus)
		}
	})

	t.Run("no prepayment is pending", func(t *testing.T) {
		got := Calculate(base())
		if got.PaymentStatus != enum.PaymentStatusPending {
			t.Errorf("PaymentStatus = %v, want PENDING", got.PaymentStatus)
		}
		if got.BalanceAmount != got.TotalAmount {
			t.Errorf("BalanceAmount = %d, want %d", got.BalanceAmount, got.TotalAmount)
		}
	})

	t.Run("full prepayment is paid", func(t *testing.T) {
		in := base()
		in.PrepaymentAmount = 135000
		got := Calculate(in)
		if got.PaymentStatus != enum.PaymentStatusPaid {
			t.Errorf("PaymentStatus = %v, want PAID", got.PaymentStatus)
		}
		if got.BalanceAmount != 0 {
			t.Errorf("BalanceAmount = %d, want 0", got.BalanceAmount)
		}
	})

	t.Run("refunded is explicit", func(t *testing.T) {
		in := base()
		in.PrepaymentAmount = 135000
		in.Refunded = true
		got := Calculate(in)
		if got.PaymentStatus != enum.PaymentStatusRefunded {
			t.Errorf("PaymentStatus = %v, want REFUNDED", got.PaymentStatus)
		}
	})
}

func TestCalculateDiscountExclusions(t *testing.T) {
	in := &Input{
		Items: []entity.OrderItem{
			{UnitPrice: 60000, Quantity: 1, CategoryGroup: enum.GroupTextile},
			{UnitPrice: 40000, Quantity: 1, CategoryGroup: enum.GroupIroning},
		},
		DiscountType: enum.DiscountMilitary,
		DiscountRule: &entity.DiscountRule{
			Type:           enum.DiscountMilitary,
			Percentage:     10,
			ExcludedGroups: []enum.CategoryGroup{enum.GroupIroning, enum.GroupLaundry, enum.GroupDyeing},
		},
	}

	got := Calculate(in)

	// Only the textile item participates: 600.00 * 10%.
	if got.DiscountAmount != 6000 {
		t.Errorf("DiscountAmount = %d, want 6000", got.DiscountAmount)
	}
	if got.TotalAmount != 94000 {
		t.Errorf("TotalAmount = %d, want 94000", got.TotalAmount)
	}
}

func TestCalculateCustomDiscountClamped(t *testing.T) {
	in := &Input{
		Items:                 []entity.OrderItem{{UnitPrice: 10000, Quantity: 1}},
		DiscountType:          enum.DiscountCustom,
		CustomDiscountPercent: 150,
	}
	got := Calculate(in)
	if got.DiscountPercentage != 100 {
		t.Errorf("DiscountPercentage = %v, want 100", got.DiscountPercentage)
	}
	if got.TotalAmount != 0 {
		t.Errorf("TotalAmount = %d, want 0", got.TotalAmount)
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	in := &Input{
		Items: []entity.OrderItem{
			{UnitPrice: 33333, Quantity: 3, CategoryGroup: enum.GroupLeather,
				Modifiers: []entity.SelectedModifier{pctMod("color_restore", 15), fixedMod("zipper", 2500)}},
			{UnitPrice: 12500, Quantity: 0.8, CategoryGroup: enum.GroupLaundry},
		},
		DiscountType:     enum.DiscountSocialMedia,
		DiscountRule:     &entity.DiscountRule{Type: enum.DiscountSocialMedia, Percentage: 5},
		ExpediteType:     enum.ExpediteExpress24,
		PrepaymentAmount: 10000,
	}

	first := Calculate(in)
	for i := 0; i < 10; i++ {
		if got := Calculate(in); got != first {
			t.Fatalf("run %d: got %+v, want %+v", i, got, first)
		}
	}
}

func TestCalculateEmptyOrder(t *testing.T) {
	got := Calculate(&Input{DiscountType: enum.DiscountNone, ExpediteType: enum.ExpediteStandard})
	if got.Subtotal != 0 || got.TotalAmount != 0 || got.BalanceAmount != 0 {
		t.Errorf("empty order produced non-zero amounts: %+v", got)
	}
	if got.PaymentStatus != enum.PaymentStatusPending {
		t.Errorf("PaymentStatus = %v, want PENDING", got.PaymentStatus)
	}
}

func TestCompletionDue(t *testing.T) {
	const start = int64(1_700_000_000)
	const hour = int64(3600)

	leather := []entity.OrderItem{{CategoryGroup: enum.GroupLeather}}
	textile := []entity.OrderItem{{CategoryGroup: enum.GroupTextile}}

	tests := []struct {
		name     string
		items    []entity.OrderItem
		expedite enum.ExpediteType
		rule     *entity.ExpediteRule
		want     int64
	}{
		{"standard textile", textile, enum.ExpediteStandard, nil, start + 2*24*hour},
		{"standard leather", leather, enum.ExpediteStandard, nil, start + 14*24*hour},
		{"express 48h overrides leather", leather, enum.ExpediteExpress48, nil, start + 48*hour},
		{"express 24h", textile, enum.ExpediteExpress24, nil, start + 24*hour},
		{"custom deadline", textile, enum.ExpediteCustom, &entity.ExpediteRule{Hours: 72}, start + 72*hour},
		{"custom without rule falls back", textile, enum.ExpediteCustom, nil, start + 2*24*hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletionDue(tt.items, tt.expedite, tt.rule, start); got != tt.want {
				t.Errorf("CompletionDue = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestApplyItemPrices(t *testing.T) {
	items := []entity.OrderItem{
		{UnitPrice: 10000, Quantity: 2, Modifiers: []entity.SelectedModifier{pctMod("urgent", 20)}},
	}
	ApplyItemPrices(items)
	if items[0].BasePrice != 20000 || items[0].FinalPrice != 24000 || items[0].ModifiersAmount != 4000 {
		t.Errorf("item prices = %d/%d/%d, want 20000/4000/24000",
			items[0].BasePrice, items[0].ModifiersAmount, items[0].FinalPrice)
	}
}
