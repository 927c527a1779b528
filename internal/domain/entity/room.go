package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Room represents a rentable room
type Room struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	RoomNumber  string          `gorm:"size:20;unique;not null" json:"room_number"`
	Floor       int             `gorm:"default:1" json:"floor"`
	Area        float64         `gorm:"default:0" json:"area"`
	Price       int64           `gorm:"not null" json:"price"`
	Deposit     int64           `gorm:"default:0" json:"deposit"`
	Status      enum.RoomStatus `gorm:"size:20;not null;default:'available'" json:"status"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Tenants  []Tenant  `gorm:"foreignKey:RoomID" json:"tenants,omitempty"`
	Invoices []Invoice `gorm:"foreignKey:RoomID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new room
func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Room model
func (Room) TableName() string {
	return "rooms"
}
