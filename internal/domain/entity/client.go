package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Client represents a dry-cleaning client
type Client struct {
	ID              uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	FirstName       string                `gorm:"size:255;not null" json:"first_name"`
	LastName        string                `gorm:"size:255;not null" json:"last_name"`
	Phone           string                `gorm:"size:50;not null;index" json:"phone"`
	Email           *string               `gorm:"size:255" json:"email,omitempty"`
	Address         *string               `gorm:"type:text" json:"address,omitempty"`
	ContactChannels []enum.ContactChannel `gorm:"serializer:json;type:jsonb" json:"contact_channels"`
	Source          enum.ClientSource     `gorm:"size:50;default:'RECOMMENDATION'" json:"source"`
	DiscountCardNo  *string               `gorm:"size:50" json:"discount_card_no,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
	DeletedAt       gorm.DeletedAt        `gorm:"index" json:"-"`

	// Relationships
	Orders []Order `gorm:"foreignKey:ClientID" json:"-"`
}

// FullName returns the client's display name
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// BeforeCreate generates a UUID before creating a new client
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Client model
func (Client) TableName() string {
	return "clients"
}
