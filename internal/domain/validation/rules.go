package validation

import (
	"fmt"
	"strings"

	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/wizard"
)

// MaxNotesLength bounds the free-text notes on an item.
const MaxNotesLength = 1000

// Rules is the step validator for both wizard machines. All checks are
// pure and synchronous; no I/O happens here.
type Rules struct{}

var _ wizard.StepValidator = Rules{}

func errv(field, message string) wizard.RuleViolation {
	return wizard.RuleViolation{Field: field, Message: message, Severity: wizard.SeverityError}
}

func warnv(field, message string) wizard.RuleViolation {
	return wizard.RuleViolation{Field: field, Message: message, Severity: wizard.SeverityWarning}
}

// ValidateStep checks the required fields of a top-level wizard step.
func (Rules) ValidateStep(s *wizard.Session, step enum.WizardStep) []wizard.RuleViolation {
	var out []wizard.RuleViolation

	switch step {
	case enum.StepClientSelection:
		out = append(out, validateClientSelection(&s.Client)...)

	case enum.StepBranchSelection:
		if s.Branch.BranchID == nil {
			out = append(out, errv("branch_id", "branch must be selected"))
		}

	case enum.StepItemManager:
		if len(s.Items) == 0 {
			out = append(out, errv("items", "order must contain at least one item"))
		}
		if s.ItemDraft != nil {
			out = append(out, errv("item_draft", "finish or cancel the open item before continuing"))
		}

	case enum.StepOrderParameters:
		out = append(out, validateOrderParams(s)...)

	case enum.StepOrderConfirmation:
		if !s.Confirmation.TermsAccepted {
			out = append(out, errv("terms_accepted", "terms must be accepted"))
		}
		if len(s.Confirmation.SignatureData) == 0 {
			out = append(out, errv("signature", "client signature is required"))
		}
	}

	return out
}

func validateClientSelection(c *wizard.ClientSelection) []wizard.RuleViolation {
	var out []wizard.RuleViolation

	if !c.Mode.IsValid() {
		return append(out, errv("client.mode", "client selection mode is required"))
	}

	switch c.Mode {
	case enum.ClientModeExisting:
		if c.ClientID == nil {
			out = append(out, errv("client.client_id", "an existing client must be selected"))
		}
	case enum.ClientModeNew, enum.ClientModeEdit:
		d := c.Draft
		if d == nil {
			return append(out, errv("client.draft", "client details are required"))
		}
		if strings.TrimSpace(d.FirstName) == "" {
			out = append(out, errv("client.first_name", "first name is required"))
		}
		if strings.TrimSpace(d.LastName) == "" {
			out = append(out, errv("client.last_name", "last name is required"))
		}
		if !ValidPhone(d.Phone) {
			out = append(out, errv("client.phone", "a valid phone number is required"))
		}
		if d.Email != "" && !strings.Contains(d.Email, "@") {
			out = append(out, errv("client.email", "email address is invalid"))
		}
	}

	return out
}

func validateOrderParams(s *wizard.Session) []wizard.RuleViolation {
	var out []wizard.RuleViolation
	p := &s.Params

	if !p.DiscountType.IsValid() {
		out = append(out, errv("params.discount_type", "unknown discount type"))
	}
	if p.DiscountType == enum.DiscountCustom {
		if p.CustomDiscountPercent <= 0 || p.CustomDiscountPercent > 100 {
			out = append(out, errv("params.custom_discount_percent",
				"custom discount must be between 0 and 100 percent"))
		}
	}
	if !p.ExpediteType.IsValid() {
		out = append(out, errv("params.expedite_type", "unknown expedite type"))
	}
	if !p.PaymentMethod.IsValid() {
		out = append(out, errv("params.payment_method", "unknown payment method"))
	}
	if p.PrepaymentAmount < 0 {
		out = append(out, errv("params.prepayment_amount", "prepayment cannot be negative"))
	}
	if p.PrepaymentAmount > s.Financials.TotalAmount {
		out = append(out, errv("params.prepayment_amount", "prepayment cannot exceed the order total"))
	}

	return out
}

// ValidateItemStep checks the required fields of an item sub-wizard step.
func (Rules) ValidateItemStep(d *wizard.ItemDraft, step enum.ItemWizardStep) []wizard.RuleViolation {
	var out []wizard.RuleViolation
	item := &d.Item

	switch step {
	case enum.ItemStepBasicInfo:
		if strings.TrimSpace(item.CategoryCode) == "" {
			out = append(out, errv("item.category_code", "service category is required"))
		}
		if strings.TrimSpace(item.Name) == "" {
			out = append(out, errv("item.name", "item name is required"))
		}
		if item.Quantity <= 0 {
			out = append(out, errv("item.quantity", "quantity must be greater than zero"))
		}
		if !item.Unit.IsValid() {
			out = append(out, errv("item.unit", "unit of measure is required"))
		}

	case enum.ItemStepProperties:
		props := &item.Properties
		if !props.Material.IsValid() {
			out = append(out, errv("item.material", "material is required"))
		}
		if strings.TrimSpace(props.Color) == "" {
			out = append(out, warnv("item.color", "color is not set"))
		}
		if props.FillerCondition != "" && !props.FillerCondition.IsValid() {
			out = append(out, errv("item.filler_condition", "unknown filler condition"))
		}
		if props.WearLevel != "" && !props.WearLevel.IsValid() {
			out = append(out, errv("item.wear_level", "unknown wear level"))
		}

	case enum.ItemStepDefects:
		for i, st := range item.Stains {
			if st.Type == enum.StainOther && strings.TrimSpace(st.Description) == "" {
				out = append(out, errv(fmt.Sprintf("item.stains[%d].description", i),
					"a stain of type OTHER requires a description"))
			}
		}
		for i, df := range item.Defects {
			if df.Type == enum.DefectOther && strings.TrimSpace(df.Description) == "" {
				out = append(out, errv(fmt.Sprintf("item.defects[%d].description", i),
					"a defect of type OTHER requires a description"))
			}
		}
		if item.NoGuarantee && strings.TrimSpace(item.NoGuaranteeReason) == "" {
			out = append(out, errv("item.no_guarantee_reason",
				"a reason is required when guarantees are waived"))
		}
		if len(item.Notes) > MaxNotesLength {
			out = append(out, errv("item.notes",
				fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength)))
		}

	case enum.ItemStepPricing:
		if item.UnitPrice <= 0 {
			out = append(out, errv("item.unit_price", "a price must be selected from the price list"))
		}

	case enum.ItemStepPhotos:
		// Optional step, nothing is required here. Photo limits are
		// enforced at upload time.
	}

	return out
}

// ValidPhone accepts an optional leading plus followed by 10 to 15 digits,
// ignoring spaces, dashes and parentheses.
func ValidPhone(phone string) bool {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, phone)

	if strings.HasPrefix(cleaned, "+") {
		cleaned = cleaned[1:]
	}
	if len(cleaned) < 10 || len(cleaned) > 15 {
		return false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
