package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UtilityService is a reference tariff (electricity, water, internet, ...).
// It only feeds default unit prices into invoice forms; billing math never
// reads the catalog directly.
type UtilityService struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"size:50;not null" json:"name"`
	Unit        string    `gorm:"size:20" json:"unit,omitempty"`
	Price       int64     `gorm:"not null" json:"price"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new utility service
func (s *UtilityService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the UtilityService model
func (UtilityService) TableName() string {
	return "utility_services"
}
