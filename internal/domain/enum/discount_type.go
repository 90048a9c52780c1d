package enum

// DiscountType identifies the active discount rule for an order.
type DiscountType string

const (
	DiscountNone        DiscountType = "NONE"
	DiscountEvercard    DiscountType = "EVERCARD"
	DiscountSocialMedia DiscountType = "SOCIAL_MEDIA"
	DiscountMilitary    DiscountType = "MILITARY"
	DiscountCustom      DiscountType = "CUSTOM"
)

// DefaultPercentage returns the seeded percentage for standard discount
// types. Custom discounts carry an operator-entered percentage instead.
func (t DiscountType) DefaultPercentage() float64 {
	switch t {
	case DiscountEvercard, DiscountMilitary:
		return 10
	case DiscountSocialMedia:
		return 5
	default:
		return 0
	}
}

// IsValid reports whether the value is a known discount type.
func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountNone, DiscountEvercard, DiscountSocialMedia, DiscountMilitary, DiscountCustom:
		return true
	}
	return false
}

// ExpediteType identifies the urgency surcharge tier for an order.
type ExpediteType string

const (
	ExpediteStandard  ExpediteType = "STANDARD"
	ExpediteExpress48 ExpediteType = "EXPRESS_48H"
	ExpediteExpress24 ExpediteType = "EXPRESS_24H"
	ExpediteCustom    ExpediteType = "CUSTOM"
)

// SurchargePercentage returns the fixed surcharge for the standard tiers.
// A custom deadline takes its percentage from the expedite rule instead.
func (t ExpediteType) SurchargePercentage() float64 {
	switch t {
	case ExpediteExpress48:
		return 50
	case ExpediteExpress24:
		return 100
	default:
		return 0
	}
}

// IsValid reports whether the value is a known expedite type.
func (t ExpediteType) IsValid() bool {
	switch t {
	case ExpediteStandard, ExpediteExpress48, ExpediteExpress24, ExpediteCustom:
		return true
	}
	return false
}
