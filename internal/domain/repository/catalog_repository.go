package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
)

// CatalogRepository defines the interface for the service catalog: categories,
// priced items and modifiers. Write operations exist for the price-list
// importer; the wizard itself only reads.
type CatalogRepository interface {
	ListCategories(ctx context.Context, activeOnly bool) ([]entity.ServiceCategory, error)
	GetCategoryByCode(ctx context.Context, code string) (*entity.ServiceCategory, error)
	ListItemsByCategory(ctx context.Context, categoryID uuid.UUID, activeOnly bool) ([]entity.CatalogItem, error)
	GetItemByID(ctx context.Context, id uuid.UUID) (*entity.CatalogItem, error)
	// ListModifiersForGroup returns active modifiers applicable to a category
	// group: general modifiers plus those scoped to the group.
	ListModifiersForGroup(ctx context.Context, group enum.CategoryGroup) ([]entity.PriceModifier, error)
	GetModifierByCode(ctx context.Context, code string) (*entity.PriceModifier, error)
	// SupportsUnit reports whether a catalog item may be billed in the unit.
	SupportsUnit(ctx context.Context, itemID uuid.UUID, unit enum.UnitOfMeasure) (bool, error)

	UpsertCategory(ctx context.Context, category *entity.ServiceCategory) error
	UpsertItem(ctx context.Context, item *entity.CatalogItem) error
	UpsertModifier(ctx context.Context, modifier *entity.PriceModifier) error
}

// DiscountRuleRepository provides read access to discount reference data
type DiscountRuleRepository interface {
	GetByType(ctx context.Context, discountType enum.DiscountType) (*entity.DiscountRule, error)
	List(ctx context.Context, activeOnly bool) ([]entity.DiscountRule, error)
}

// ExpediteRuleRepository provides read access to expedite reference data
type ExpediteRuleRepository interface {
	GetByType(ctx context.Context, expediteType enum.ExpediteType) (*entity.ExpediteRule, error)
	List(ctx context.Context, activeOnly bool) ([]entity.ExpediteRule, error)
}
