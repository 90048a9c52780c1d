package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"gorm.io/gorm"
)

// DiscountConditions restricts when a discount rule may be applied.
// Zero values mean "no restriction".
type DiscountConditions struct {
	MinAmount  int64       `json:"min_amount"` // kopecks
	MinItems   int         `json:"min_items"`
	DaysOfWeek []int       `json:"days_of_week,omitempty"` // 0=Sunday .. 6=Saturday
	BranchIDs  []uuid.UUID `json:"branch_ids,omitempty"`
}

// DiscountRule is read-only reference data consumed by the calculation
// engine. It is seeded at startup and managed outside the wizard.
type DiscountRule struct {
	ID             uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Type           enum.DiscountType    `gorm:"size:50;unique;not null" json:"type"`
	Name           string               `gorm:"size:255;not null" json:"name"`
	Percentage     float64              `gorm:"not null" json:"percentage"`
	ExcludedGroups []enum.CategoryGroup `gorm:"serializer:json;type:jsonb" json:"excluded_groups"`
	CombinableWith []enum.DiscountType  `gorm:"serializer:json;type:jsonb" json:"combinable_with"`
	Priority       int                  `gorm:"default:0" json:"priority"`
	MaxUsage       int                  `gorm:"default:0" json:"max_usage"` // 0 = unlimited
	Conditions     DiscountConditions   `gorm:"serializer:json;type:jsonb" json:"conditions"`
	Active         bool                 `gorm:"default:true" json:"active"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// AppliesToGroup reports whether the rule covers the given category group.
func (r *DiscountRule) AppliesToGroup(group enum.CategoryGroup) bool {
	for _, excluded := range r.ExcludedGroups {
		if excluded == group {
			return false
		}
	}
	return true
}

// BeforeCreate generates a UUID before creating a new discount rule
func (r *DiscountRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DiscountRule model
func (DiscountRule) TableName() string {
	return "discount_rules"
}

// ExpediteRule maps an expedite tier to its surcharge percentage and
// promised turnaround. Standard tiers are seeded; a custom deadline is
// priced by its own rule row.
type ExpediteRule struct {
	ID         uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Type       enum.ExpediteType `gorm:"size:50;unique;not null" json:"type"`
	Name       string            `gorm:"size:255;not null" json:"name"`
	Percentage float64           `gorm:"not null" json:"percentage"`
	Hours      int               `gorm:"default:0" json:"hours"` // 0 = standard turnaround
	Active     bool              `gorm:"default:true" json:"active"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new expedite rule
func (r *ExpediteRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ExpediteRule model
func (ExpediteRule) TableName() string {
	return "expedite_rules"
}
