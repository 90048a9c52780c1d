package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Order represents a finalized (or in-flight) dry-cleaning order
type Order struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber string           `gorm:"size:100;unique;not null" json:"order_number"`
	ClientID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"client_id"`
	BranchID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"branch_id"`
	OperatorID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"operator_id"`
	Status      enum.OrderStatus `gorm:"default:0" json:"status"`

	// Financial snapshot, kopecks. Always recomputed from the full input
	// set by the calculation engine, never patched incrementally.
	BasePrice          int64              `gorm:"default:0" json:"-"`
	ModifiersAmount    int64              `gorm:"default:0" json:"-"`
	Subtotal           int64              `gorm:"default:0" json:"-"`
	DiscountType       enum.DiscountType  `gorm:"size:50;default:'NONE'" json:"discount_type"`
	DiscountPercentage float64            `gorm:"default:0" json:"discount_percentage"`
	DiscountAmount     int64              `gorm:"default:0" json:"-"`
	ExpediteType       enum.ExpediteType  `gorm:"size:50;default:'STANDARD'" json:"expedite_type"`
	ExpediteAmount     int64              `gorm:"default:0" json:"-"`
	TotalAmount        int64              `gorm:"default:0" json:"-"`
	PrepaymentAmount   int64              `gorm:"default:0" json:"-"`
	BalanceAmount      int64              `gorm:"default:0" json:"-"`
	PaymentMethod      enum.PaymentMethod `gorm:"size:50;default:'CASH'" json:"payment_method"`
	PaymentStatus      enum.PaymentStatus `gorm:"default:0" json:"payment_status"`

	// Confirmation
	TermsAccepted bool       `gorm:"default:false" json:"terms_accepted"`
	SignatureData []byte     `gorm:"type:bytea" json:"-"`
	SignedAt      *time.Time `json:"signed_at,omitempty"`
	ReceiptNumber string     `gorm:"size:100" json:"receipt_number,omitempty"`
	Comments      string     `gorm:"type:text" json:"comments,omitempty"`

	CompletionDue *time.Time `json:"completion_due,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	Printed       bool       `gorm:"default:false" json:"printed"`
	Emailed       bool       `gorm:"default:false" json:"emailed"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Client   *Client     `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Branch   *Branch     `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Operator *Operator   `gorm:"foreignKey:OperatorID" json:"-"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert kopecks to decimal for API
// responses and expose whether a signature is present without the blob.
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		BasePrice        float64 `json:"base_price"`
		ModifiersAmount  float64 `json:"modifiers_amount"`
		Subtotal         float64 `json:"subtotal"`
		DiscountAmount   float64 `json:"discount_amount"`
		ExpediteAmount   float64 `json:"expedite_amount"`
		TotalAmount      float64 `json:"total_amount"`
		PrepaymentAmount float64 `json:"prepayment_amount"`
		BalanceAmount    float64 `json:"balance_amount"`
		SignaturePresent bool    `json:"signature_present"`
	}{
		Alias:            Alias(o),
		BasePrice:        float64(o.BasePrice) / 100,
		ModifiersAmount:  float64(o.ModifiersAmount) / 100,
		Subtotal:         float64(o.Subtotal) / 100,
		DiscountAmount:   float64(o.DiscountAmount) / 100,
		ExpediteAmount:   float64(o.ExpediteAmount) / 100,
		TotalAmount:      float64(o.TotalAmount) / 100,
		PrepaymentAmount: float64(o.PrepaymentAmount) / 100,
		BalanceAmount:    float64(o.BalanceAmount) / 100,
		SignaturePresent: len(o.SignatureData) > 0,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
