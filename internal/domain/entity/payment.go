package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Payment is a single transaction against one invoice. Payments are owned
// by their invoice; deleting the invoice deletes them.
type Payment struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Amount      int64              `gorm:"not null" json:"amount"`
	Method      enum.PaymentMethod `gorm:"size:20;not null;default:'cash'" json:"method"`
	PaymentDate time.Time          `gorm:"not null" json:"payment_date"`
	Notes       string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`

	// Relationships
	Invoice *Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
