package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Tenant represents a person renting a room
type Tenant struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	RoomID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"room_id"`
	FullName     string            `gorm:"size:100;not null" json:"full_name"`
	IDNumber     string            `gorm:"size:20;unique;not null" json:"id_number"`
	Phone        string            `gorm:"size:15;not null" json:"phone"`
	Email        string            `gorm:"size:120" json:"email,omitempty"`
	DateOfBirth  *time.Time        `gorm:"type:date" json:"date_of_birth,omitempty"`
	Hometown     string            `gorm:"size:200" json:"hometown,omitempty"`
	MoveInDate   time.Time         `gorm:"type:date;not null" json:"move_in_date"`
	MoveOutDate  *time.Time        `gorm:"type:date" json:"move_out_date,omitempty"`
	Deposit      int64             `gorm:"default:0" json:"deposit"`
	IsMainTenant bool              `gorm:"default:true" json:"is_main_tenant"`
	Status       enum.TenantStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	Notes        string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`

	// Relationships
	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

// BeforeCreate generates a UUID before creating a new tenant
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Tenant model
func (Tenant) TableName() string {
	return "tenants"
}
