package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Stain is a single stain recorded on an item. A free-text description is
// mandatory when the type is OTHER.
type Stain struct {
	Type        enum.StainType `json:"type"`
	Description string         `json:"description,omitempty"`
}

// Defect is a pre-existing defect or processing risk recorded on an item.
// A free-text description is mandatory when the type is OTHER-like
// (NO_GUARANTEE carries its reason on the item level instead).
type Defect struct {
	Type        enum.DefectType `json:"type"`
	Description string          `json:"description,omitempty"`
}

// SelectedModifier is a price modifier the operator applied to an item,
// captured by value so later price-list edits do not rewrite history.
type SelectedModifier struct {
	Code    string            `json:"code"`
	Name    string            `json:"name"`
	Type    enum.ModifierType `json:"type"`
	Percent float64           `json:"percent,omitempty"`
	Amount  int64             `json:"amount,omitempty"` // kopecks for FIXED modifiers
}

// ItemCharacteristics describes the physical properties of an item.
type ItemCharacteristics struct {
	Material        enum.MaterialType    `json:"material,omitempty"`
	Color           string               `json:"color,omitempty"`
	Filler          string               `json:"filler,omitempty"`
	FillerCondition enum.FillerCondition `json:"filler_condition,omitempty"`
	WearLevel       enum.WearLevel       `json:"wear_level,omitempty"`
}

// OrderItem is a single item within a dry-cleaning order
type OrderItem struct {
	ID            uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	OrderID       uuid.UUID           `gorm:"type:uuid;index" json:"order_id"`
	CategoryCode  string              `gorm:"size:50;not null" json:"category_code"`
	CategoryGroup enum.CategoryGroup  `gorm:"size:50;not null;default:'GENERAL'" json:"category_group"`
	CatalogItemID uuid.UUID           `gorm:"type:uuid" json:"catalog_item_id"`
	Name          string              `gorm:"size:255;not null" json:"name"`
	Quantity      float64             `gorm:"not null;default:1" json:"quantity"`
	Unit          enum.UnitOfMeasure  `gorm:"size:50;not null;default:'PIECE'" json:"unit"`
	UnitPrice     int64               `gorm:"not null" json:"-"` // kopecks
	Properties    ItemCharacteristics `gorm:"serializer:json;type:jsonb" json:"properties"`
	Stains        []Stain             `gorm:"serializer:json;type:jsonb" json:"stains"`
	Defects       []Defect            `gorm:"serializer:json;type:jsonb" json:"defects"`
	NoGuarantee   bool                `gorm:"default:false" json:"no_guarantee"`
	NoGuaranteeReason string          `gorm:"type:text" json:"no_guarantee_reason,omitempty"`
	Notes         string              `gorm:"type:text" json:"notes,omitempty"`
	Modifiers     []SelectedModifier  `gorm:"serializer:json;type:jsonb" json:"modifiers"`

	// Computed by the calculation engine, kopecks
	BasePrice       int64 `gorm:"not null;default:0" json:"-"`
	ModifiersAmount int64 `gorm:"not null;default:0" json:"-"`
	FinalPrice      int64 `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Photos []ItemPhoto `gorm:"foreignKey:OrderItemID" json:"photos,omitempty"`
}

// MarshalJSON custom marshaler to convert kopecks to decimal for API responses
func (i OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice       float64 `json:"unit_price"`
		BasePrice       float64 `json:"base_price"`
		ModifiersAmount float64 `json:"modifiers_amount"`
		FinalPrice      float64 `json:"final_price"`
	}{
		Alias:           Alias(i),
		UnitPrice:       float64(i.UnitPrice) / 100,
		BasePrice:       float64(i.BasePrice) / 100,
		ModifiersAmount: float64(i.ModifiersAmount) / 100,
		FinalPrice:      float64(i.FinalPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// ItemPhoto is one of up to five photos documenting an item's condition.
// The image itself is stored on disk after compression; only metadata and
// the storage path live in the database.
type ItemPhoto struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderItemID uuid.UUID `gorm:"type:uuid;not null;index" json:"order_item_id"`
	FileName    string    `gorm:"size:255;not null" json:"file_name"`
	ContentType string    `gorm:"size:100;not null" json:"content_type"`
	Path        string    `gorm:"size:512;not null" json:"-"`
	SizeBytes   int64     `gorm:"not null" json:"size_bytes"`
	Width       int       `gorm:"not null" json:"width"`
	Height      int       `gorm:"not null" json:"height"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new photo record
func (p *ItemPhoto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ItemPhoto model
func (ItemPhoto) TableName() string {
	return "item_photos"
}
