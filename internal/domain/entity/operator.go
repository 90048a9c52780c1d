package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Operator represents a counter operator who creates orders
type Operator struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	FirstName string         `gorm:"size:255;not null" json:"first_name"`
	LastName  string         `gorm:"size:255;not null" json:"last_name"`
	Email     string         `gorm:"size:255;unique;not null" json:"email"`
	Password  string         `gorm:"size:255" json:"-"`
	Role      string         `gorm:"size:50;default:'operator'" json:"role"`
	BranchID  *uuid.UUID     `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Branch *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Orders []Order `gorm:"foreignKey:OperatorID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new operator
func (o *Operator) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Operator model
func (Operator) TableName() string {
	return "operators"
}
