package pricing

import (
	"math"

	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
)

// All money values are kopecks (int64). Percentage math is done in
// float64 and rounded back to whole kopecks at every published figure, so
// recomputing from the same inputs always yields bit-identical results.

// ItemPrice is the computed price breakdown for a single item.
type ItemPrice struct {
	BasePrice       int64 `json:"base_price"`
	ModifiersAmount int64 `json:"modifiers_amount"`
	FinalPrice      int64 `json:"final_price"`
}

// Financials is the order-level financial snapshot. It is derived in full
// on every relevant input change and replaces the previous snapshot.
type Financials struct {
	BasePrice          int64              `json:"base_price"`
	ModifiersAmount    int64              `json:"modifiers_amount"`
	Subtotal           int64              `json:"subtotal"`
	DiscountType       enum.DiscountType  `json:"discount_type"`
	DiscountPercentage float64            `json:"discount_percentage"`
	DiscountAmount     int64              `json:"discount_amount"`
	ExpediteType       enum.ExpediteType  `json:"expedite_type"`
	ExpediteAmount     int64              `json:"expedite_amount"`
	TotalAmount        int64              `json:"total_amount"`
	PrepaymentAmount   int64              `json:"prepayment_amount"`
	BalanceAmount      int64              `json:"balance_amount"`
	PaymentMethod      enum.PaymentMethod `json:"payment_method"`
	PaymentStatus      enum.PaymentStatus `json:"payment_status"`
}

// Input is the full snapshot the engine computes from. The engine never
// reads anything outside of it.
type Input struct {
	Items []entity.OrderItem

	DiscountType enum.DiscountType
	DiscountRule *entity.DiscountRule // nil when DiscountType is NONE
	// CustomDiscountPercent is used only when DiscountType is CUSTOM.
	CustomDiscountPercent float64

	ExpediteType enum.ExpediteType
	ExpediteRule *entity.ExpediteRule // consulted only for a CUSTOM deadline

	PrepaymentAmount int64
	PaymentMethod    enum.PaymentMethod
	// Refunded marks an explicit external refund event; it is never
	// derived from the amounts.
	Refunded bool
}

func roundKopecks(v float64) int64 {
	return int64(math.Round(v))
}

// ModifierApplies reports whether a modifier scoped to group applies to an
// item in itemGroup. General modifiers always apply; everything else must
// match the item's category group.
func ModifierApplies(group, itemGroup enum.CategoryGroup) bool {
	return group == enum.GroupGeneral || group == itemGroup
}

// CalculateItem computes the price breakdown for one item:
//
//	final = round(unitPrice*qty*(1 + Σ pct/100) + Σ fixed)
//
// Only modifiers applicable to the item's category group participate.
// The result is floored at zero.
func CalculateItem(item *entity.OrderItem) ItemPrice {
	base := roundKopecks(float64(item.UnitPrice) * item.Quantity)

	var pctSum float64
	var fixedSum int64
	for _, m := range item.Modifiers {
		switch m.Type {
		case enum.ModifierPercentage:
			pctSum += m.Percent
		case enum.ModifierFixed:
			fixedSum += m.Amount
		}
	}

	final := roundKopecks(float64(base)*(1+pctSum/100)) + fixedSum
	if final < 0 {
		final = 0
	}

	return ItemPrice{
		BasePrice:       base,
		ModifiersAmount: final - base,
		FinalPrice:      final,
	}
}

// ClampPercentage forces a discount percentage into [0, 100].
func ClampPercentage(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// discountPercentage resolves the effective percentage for the input.
func discountPercentage(in *Input) float64 {
	switch in.DiscountType {
	case enum.DiscountNone:
		return 0
	case enum.DiscountCustom:
		return ClampPercentage(in.CustomDiscountPercent)
	default:
		if in.DiscountRule != nil {
			return ClampPercentage(in.DiscountRule.Percentage)
		}
		return ClampPercentage(in.DiscountType.DefaultPercentage())
	}
}

// discountApplicableAmount is the part of the subtotal the discount may be
// applied to: item totals whose category group is excluded by the rule are
// subtracted. The result is floored at zero.
func discountApplicableAmount(in *Input, subtotal int64) int64 {
	if in.DiscountType == enum.DiscountNone {
		return 0
	}

	applicable := subtotal
	if in.DiscountRule != nil {
		for i := range in.Items {
			item := &in.Items[i]
			if !in.DiscountRule.AppliesToGroup(item.CategoryGroup) {
				applicable -= CalculateItem(item).FinalPrice
			}
		}
	}
	if applicable < 0 {
		applicable = 0
	}
	return applicable
}

// expeditePercentage resolves the surcharge percentage for the input.
func expeditePercentage(in *Input) float64 {
	if in.ExpediteType == enum.ExpediteCustom {
		if in.ExpediteRule != nil {
			return in.ExpediteRule.Percentage
		}
		return 0
	}
	return in.ExpediteType.SurchargePercentage()
}

// Calculate derives the full financial snapshot from the input. It is a
// pure function: callers replace their previous snapshot with the result
// rather than patching individual fields.
//
// Order of operations: items → subtotal → discount on the applicable
// amount → expedite on the post-discount amount → total (floored at 0)
// → payment breakdown.
func Calculate(in *Input) Financials {
	var basePrice, modifiersAmount int64
	for i := range in.Items {
		p := CalculateItem(&in.Items[i])
		basePrice += p.BasePrice
		modifiersAmount += p.ModifiersAmount
	}
	subtotal := basePrice + modifiersAmount

	pct := discountPercentage(in)
	applicable := discountApplicableAmount(in, subtotal)
	discountAmount := roundKopecks(float64(applicable) * pct / 100)

	afterDiscount := subtotal - discountAmount
	expediteAmount := roundKopecks(float64(afterDiscount) * expeditePercentage(in) / 100)

	total := subtotal - discountAmount + expediteAmount
	if total < 0 {
		total = 0
	}

	prepaid := in.PrepaymentAmount
	status := enum.PaymentStatusPending
	switch {
	case in.Refunded:
		status = enum.PaymentStatusRefunded
	case prepaid >= total && prepaid > 0:
		status = enum.PaymentStatusPaid
	case prepaid > 0:
		status = enum.PaymentStatusPartial
	}

	return Financials{
		BasePrice:          basePrice,
		ModifiersAmount:    modifiersAmount,
		Subtotal:           subtotal,
		DiscountType:       in.DiscountType,
		DiscountPercentage: pct,
		DiscountAmount:     discountAmount,
		ExpediteType:       in.ExpediteType,
		ExpediteAmount:     expediteAmount,
		TotalAmount:        total,
		PrepaymentAmount:   prepaid,
		BalanceAmount:      total - prepaid,
		PaymentMethod:      in.PaymentMethod,
		PaymentStatus:      status,
	}
}

// ApplyItemPrices recomputes and writes the per-item breakdown onto the
// items in place, so the persisted rows match the snapshot.
func ApplyItemPrices(items []entity.OrderItem) {
	for i := range items {
		p := CalculateItem(&items[i])
		items[i].BasePrice = p.BasePrice
		items[i].ModifiersAmount = p.ModifiersAmount
		items[i].FinalPrice = p.FinalPrice
	}
}

// CompletionDue computes the promised completion time for an order:
// 14 days when any leather-group item is present, 2 days otherwise;
// expedite tiers shorten it to 48 or 24 hours, a custom deadline uses the
// rule's hour count.
func CompletionDue(items []entity.OrderItem, expedite enum.ExpediteType, rule *entity.ExpediteRule, start int64) int64 {
	const hour = int64(3600)

	switch expedite {
	case enum.ExpediteExpress48:
		return start + 48*hour
	case enum.ExpediteExpress24:
		return start + 24*hour
	case enum.ExpediteCustom:
		if rule != nil && rule.Hours > 0 {
			return start + int64(rule.Hours)*hour
		}
	}

	days := int64(2)
	for i := range items {
		if items[i].CategoryGroup == enum.GroupLeather {
			days = 14
			break
		}
	}
	return start + days*24*hour
}
