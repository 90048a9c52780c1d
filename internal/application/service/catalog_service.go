package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/repository"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/apperror"
)

// CatalogService answers catalog lookups for the wizard: categories,
// priced items, applicable modifiers and unit support.
type CatalogService struct {
	catalogRepo  repository.CatalogRepository
	discountRepo repository.DiscountRuleRepository
	expediteRepo repository.ExpediteRuleRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	catalogRepo repository.CatalogRepository,
	discountRepo repository.DiscountRuleRepository,
	expediteRepo repository.ExpediteRuleRepository,
) *CatalogService {
	return &CatalogService{
		catalogRepo:  catalogRepo,
		discountRepo: discountRepo,
		expediteRepo: expediteRepo,
	}
}

// ListCategories returns service categories
func (s *CatalogService) ListCategories(ctx context.Context, activeOnly bool) ([]entity.ServiceCategory, error) {
	return s.catalogRepo.ListCategories(ctx, activeOnly)
}

// ListItems returns the priced items of a category
func (s *CatalogService) ListItems(ctx context.Context, categoryCode string) ([]entity.CatalogItem, error) {
	category, err := s.catalogRepo.GetCategoryByCode(ctx, categoryCode)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Service category")
	}
	return s.catalogRepo.ListItemsByCategory(ctx, category.ID, true)
}

// ListModifiers returns the modifiers applicable to a category's group
func (s *CatalogService) ListModifiers(ctx context.Context, categoryCode string) ([]entity.PriceModifier, error) {
	category, err := s.catalogRepo.GetCategoryByCode(ctx, categoryCode)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Service category")
	}
	return s.catalogRepo.ListModifiersForGroup(ctx, category.Group)
}

// SupportsUnit reports whether a catalog item may be billed in the unit
func (s *CatalogService) SupportsUnit(ctx context.Context, itemID uuid.UUID, unit enum.UnitOfMeasure) (bool, error) {
	if !unit.IsValid() {
		return false, apperror.NewBadRequestError("Unknown unit of measure")
	}
	return s.catalogRepo.SupportsUnit(ctx, itemID, unit)
}

// ListDiscountRules returns the active discount reference data
func (s *CatalogService) ListDiscountRules(ctx context.Context) ([]entity.DiscountRule, error) {
	return s.discountRepo.List(ctx, true)
}

// ListExpediteRules returns the active expedite reference data
func (s *CatalogService) ListExpediteRules(ctx context.Context) ([]entity.ExpediteRule, error) {
	return s.expediteRepo.List(ctx, true)
}
