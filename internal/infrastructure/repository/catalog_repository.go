package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	domainRepo "github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) domainRepo.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListCategories(ctx context.Context, activeOnly bool) ([]entity.ServiceCategory, error) {
	var categories []entity.ServiceCategory
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Order("sort_order ASC, name ASC").Find(&categories).Error
	return categories, err
}

func (r *catalogRepository) GetCategoryByCode(ctx context.Context, code string) (*entity.ServiceCategory, error) {
	var category entity.ServiceCategory
	err := r.db.WithContext(ctx).First(&category, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *catalogRepository) ListItemsByCategory(ctx context.Context, categoryID uuid.UUID, activeOnly bool) ([]entity.CatalogItem, error) {
	var items []entity.CatalogItem
	q := r.db.WithContext(ctx).Where("category_id = ?", categoryID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Order("name ASC").Find(&items).Error
	return items, err
}

func (r *catalogRepository) GetItemByID(ctx context.Context, id uuid.UUID) (*entity.CatalogItem, error) {
	var item entity.CatalogItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *catalogRepository) ListModifiersForGroup(ctx context.Context, group enum.CategoryGroup) ([]entity.PriceModifier, error) {
	var modifiers []entity.PriceModifier
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("\"group\" = ? OR \"group\" = ?", enum.GroupGeneral, group).
		Order("name ASC").
		Find(&modifiers).Error
	return modifiers, err
}

func (r *catalogRepository) GetModifierByCode(ctx context.Context, code string) (*entity.PriceModifier, error) {
	var modifier entity.PriceModifier
	err := r.db.WithContext(ctx).First(&modifier, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &modifier, err
}

func (r *catalogRepository) SupportsUnit(ctx context.Context, itemID uuid.UUID, unit enum.UnitOfMeasure) (bool, error) {
	item, err := r.GetItemByID(ctx, itemID)
	if err != nil {
		return false, err
	}
	if item == nil {
		return false, nil
	}
	return item.Unit == unit, nil
}

func (r *catalogRepository) UpsertCategory(ctx context.Context, category *entity.ServiceCategory) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "group", "sort_order", "active"}),
		}).
		Create(category).Error
}

func (r *catalogRepository) UpsertItem(ctx context.Context, item *entity.CatalogItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "category_id"}, {Name: "name"}, {Name: "unit"}},
			DoUpdates: clause.AssignmentColumns([]string{"base_price", "active"}),
		}).
		Create(item).Error
}

func (r *catalogRepository) UpsertModifier(ctx context.Context, modifier *entity.PriceModifier) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "type", "percent", "amount", "group", "active"}),
		}).
		Create(modifier).Error
}

type discountRuleRepository struct {
	db *gorm.DB
}

// NewDiscountRuleRepository creates a new discount rule repository
func NewDiscountRuleRepository(db *gorm.DB) domainRepo.DiscountRuleRepository {
	return &discountRuleRepository{db: db}
}

func (r *discountRuleRepository) GetByType(ctx context.Context, discountType enum.DiscountType) (*entity.DiscountRule, error) {
	var rule entity.DiscountRule
	err := r.db.WithContext(ctx).First(&rule, "type = ? AND active = ?", discountType, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rule, err
}

func (r *discountRuleRepository) List(ctx context.Context, activeOnly bool) ([]entity.DiscountRule, error) {
	var rules []entity.DiscountRule
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Order("priority ASC").Find(&rules).Error
	return rules, err
}

type expediteRuleRepository struct {
	db *gorm.DB
}

// NewExpediteRuleRepository creates a new expedite rule repository
func NewExpediteRuleRepository(db *gorm.DB) domainRepo.ExpediteRuleRepository {
	return &expediteRuleRepository{db: db}
}

func (r *expediteRuleRepository) GetByType(ctx context.Context, expediteType enum.ExpediteType) (*entity.ExpediteRule, error) {
	var rule entity.ExpediteRule
	err := r.db.WithContext(ctx).First(&rule, "type = ? AND active = ?", expediteType, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rule, err
}

func (r *expediteRuleRepository) List(ctx context.Context, activeOnly bool) ([]entity.ExpediteRule, error) {
	var rules []entity.ExpediteRule
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Order("hours ASC").Find(&rules).Error
	return rules, err
}
