package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/wizard"
)

func fields(violations []wizard.RuleViolation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Field)
	}
	return out
}

func hasField(violations []wizard.RuleViolation, field string) bool {
	for _, v := range violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

func TestValidPhone(t *testing.T) {
	valid := []string{"+380501234567", "0501234567", "+38 (050) 123-45-67", "380501234567"}
	for _, p := range valid {
		if !ValidPhone(p) {
			t.Errorf("ValidPhone(%q) = false, want true", p)
		}
	}

	invalid := []string{"", "12345", "+380-abc-123456", "+1234567890123456"}
	for _, p := range invalid {
		if ValidPhone(p) {
			t.Errorf("ValidPhone(%q) = true, want false", p)
		}
	}
}

func TestClientSelectionModes(t *testing.T) {
	r := Rules{}

	t.Run("existing requires client id", func(t *testing.T) {
		s := &wizard.Session{Client: wizard.ClientSelection{Mode: enum.ClientModeExisting}}
		got := r.ValidateStep(s, enum.StepClientSelection)
		if !hasField(got, "client.client_id") {
			t.Errorf("violations = %v, want client.client_id", fields(got))
		}

		id := uuid.New()
		s.Client.ClientID = &id
		if got := r.ValidateStep(s, enum.StepClientSelection); len(got) != 0 {
			t.Errorf("unexpected violations: %v", fields(got))
		}
	})

	t.Run("new requires names and phone", func(t *testing.T) {
		s := &wizard.Session{Client: wizard.ClientSelection{
			Mode:  enum.ClientModeNew,
			Draft: &wizard.ClientDraft{FirstName: "  ", Phone: "123"},
		}}
		got := r.ValidateStep(s, enum.StepClientSelection)
		for _, f := range []string{"client.first_name", "client.last_name", "client.phone"} {
			if !hasField(got, f) {
				t.Errorf("violations = %v, want %s", fields(got), f)
			}
		}
	})

	t.Run("missing mode", func(t *testing.T) {
		s := &wizard.Session{}
		got := r.ValidateStep(s, enum.StepClientSelection)
		if !hasField(got, "client.mode") {
			t.Errorf("violations = %v, want client.mode", fields(got))
		}
	})
}

func TestCustomDiscountBounds(t *testing.T) {
	r := Rules{}
	base := func(pct float64) *wizard.Session {
		return &wizard.Session{Params: wizard.OrderParams{
			DiscountType:          enum.DiscountCustom,
			CustomDiscountPercent: pct,
			ExpediteType:          enum.ExpediteStandard,
			PaymentMethod:         enum.PaymentCash,
		}}
	}

	for _, pct := range []float64{0, -5, 101} {
		got := r.ValidateStep(base(pct), enum.StepOrderParameters)
		if !hasField(got, "params.custom_discount_percent") {
			t.Errorf("pct=%v: violations = %v, want custom_discount_percent", pct, fields(got))
		}
	}

	if got := r.ValidateStep(base(15), enum.StepOrderParameters); len(got) != 0 {
		t.Errorf("pct=15: unexpected violations: %v", fields(got))
	}
}

func TestDefectsStepRules(t *testing.T) {
	r := Rules{}

	d := &wizard.ItemDraft{Item: entity.OrderItem{
		Stains:      []entity.Stain{{Type: enum.StainOther}},
		Defects:     []entity.Defect{{Type: enum.DefectOther}},
		NoGuarantee: true,
		Notes:       strings.Repeat("x", MaxNotesLength+1),
	}}

	got := r.ValidateItemStep(d, enum.ItemStepDefects)
	for _, f := range []string{
		"item.stains[0].description",
		"item.defects[0].description",
		"item.no_guarantee_reason",
		"item.notes",
	} {
		if !hasField(got, f) {
			t.Errorf("violations = %v, want %s", fields(got), f)
		}
	}

	d.Item.Stains[0].Description = "unknown origin"
	d.Item.Defects[0].Description = "loose seam"
	d.Item.NoGuaranteeReason = "heavy wear"
	d.Item.Notes = "ok"
	if got := r.ValidateItemStep(d, enum.ItemStepDefects); len(got) != 0 {
		t.Errorf("unexpected violations: %v", fields(got))
	}
}

func TestColorWarningDoesNotBlock(t *testing.T) {
	r := Rules{}
	d := &wizard.ItemDraft{Item: entity.OrderItem{
		Properties: entity.ItemCharacteristics{Material: enum.MaterialCotton},
	}}

	got := r.ValidateItemStep(d, enum.ItemStepProperties)
	if wizard.Blocking(got) {
		t.Errorf("missing color should warn, not block: %v", got)
	}
	if !hasField(got, "item.color") {
		t.Errorf("violations = %v, want item.color warning", fields(got))
	}
}
