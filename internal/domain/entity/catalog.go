package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"gorm.io/gorm"
)

// ServiceCategory groups catalog items (e.g. outerwear, leather, laundry)
type ServiceCategory struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Code      string             `gorm:"size:50;unique;not null" json:"code"`
	Name      string             `gorm:"size:255;not null" json:"name"`
	Group     enum.CategoryGroup `gorm:"size:50;not null;default:'GENERAL'" json:"group"`
	SortOrder int                `gorm:"default:0" json:"sort_order"`
	Active    bool               `gorm:"default:true" json:"active"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	DeletedAt gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Items []CatalogItem `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *ServiceCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ServiceCategory model
func (ServiceCategory) TableName() string {
	return "service_categories"
}

// CatalogItem is a priced service position from the price list
type CatalogItem struct {
	ID         uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID uuid.UUID          `gorm:"type:uuid;not null;index" json:"category_id"`
	Name       string             `gorm:"size:255;not null" json:"name"`
	Unit       enum.UnitOfMeasure `gorm:"size:50;not null;default:'PIECE'" json:"unit"`
	BasePrice  int64              `gorm:"not null" json:"-"` // Stored in kopecks, excluded from JSON
	Active     bool               `gorm:"default:true" json:"active"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	DeletedAt  gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Category ServiceCategory `gorm:"foreignKey:CategoryID" json:"-"`
}

// MarshalJSON custom marshaler to convert kopecks to decimal for API responses
func (i CatalogItem) MarshalJSON() ([]byte, error) {
	type Alias CatalogItem
	return json.Marshal(&struct {
		Alias
		BasePrice float64 `json:"base_price"`
	}{
		Alias:     Alias(i),
		BasePrice: float64(i.BasePrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new catalog item
func (i *CatalogItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CatalogItem model
func (CatalogItem) TableName() string {
	return "catalog_items"
}

// PriceModifier is a named price adjustment applicable to specific
// category groups. General modifiers apply to every item; textile and
// leather modifiers apply only to items in the matching group.
type PriceModifier struct {
	ID         uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Code       string             `gorm:"size:50;unique;not null" json:"code"`
	Name       string             `gorm:"size:255;not null" json:"name"`
	Type       enum.ModifierType  `gorm:"size:20;not null" json:"type"`
	Percent    float64            `gorm:"default:0" json:"percent"` // for PERCENTAGE modifiers, may be negative
	Amount     int64              `gorm:"default:0" json:"-"`       // kopecks, for FIXED modifiers
	Group      enum.CategoryGroup `gorm:"size:50;not null;default:'GENERAL'" json:"group"`
	Active     bool               `gorm:"default:true" json:"active"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	DeletedAt  gorm.DeletedAt     `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert kopecks to decimal for API responses
func (m PriceModifier) MarshalJSON() ([]byte, error) {
	type Alias PriceModifier
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(m),
		Amount: float64(m.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new modifier
func (m *PriceModifier) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PriceModifier model
func (PriceModifier) TableName() string {
	return "price_modifiers"
}
