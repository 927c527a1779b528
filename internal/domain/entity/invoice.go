package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice represents one billing period (month, year) for one room.
// At most one invoice may exist per room and period; the composite unique
// index is the serialization point for concurrent creations.
//
// Monetary amounts are whole VND stored as int64. Meter readings are float64
// because some meters report fractional units.
type Invoice struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	RoomID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_invoices_room_period" json:"room_id"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	Month     int        `gorm:"not null;uniqueIndex:uq_invoices_room_period" json:"month"`
	Year      int        `gorm:"not null;uniqueIndex:uq_invoices_room_period" json:"year"`

	// RoomCharge is snapshotted from the room's price at creation time.
	// Later room price changes never touch issued invoices.
	RoomCharge int64 `gorm:"not null;default:0" json:"room_charge"`

	ElectricOld       float64 `gorm:"default:0" json:"electric_old"`
	ElectricNew       float64 `gorm:"default:0" json:"electric_new"`
	ElectricUnitPrice int64   `gorm:"default:0" json:"electric_unit_price"`

	WaterOld       float64 `gorm:"default:0" json:"water_old"`
	WaterNew       float64 `gorm:"default:0" json:"water_new"`
	WaterUnitPrice int64   `gorm:"default:0" json:"water_unit_price"`

	OtherFees int64 `gorm:"default:0" json:"other_fees"`

	// TotalAmount is persisted rather than recomputed on read so historical
	// invoices stay stable when reference tariffs change.
	TotalAmount int64 `gorm:"not null;default:0" json:"total_amount"`

	Status enum.InvoiceStatus `gorm:"size:20;not null;default:'unpaid'" json:"status"`

	DueDate *time.Time `json:"due_date,omitempty"`
	// PaymentDate is set exactly once, the first instant cumulative payments
	// reach the total; cleared again if the status regresses below paid.
	PaymentDate *time.Time `json:"payment_date,omitempty"`

	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Room     *Room     `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Payments []Payment `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// ElectricUsage returns the metered electricity usage, clamped at zero
func (i *Invoice) ElectricUsage() float64 {
	return math.Max(0, i.ElectricNew-i.ElectricOld)
}

// WaterUsage returns the metered water usage, clamped at zero
func (i *Invoice) WaterUsage() float64 {
	return math.Max(0, i.WaterNew-i.WaterOld)
}

// ElectricCost returns the electricity charge in VND
func (i *Invoice) ElectricCost() int64 {
	return int64(math.Round(i.ElectricUsage() * float64(i.ElectricUnitPrice)))
}

// WaterCost returns the water charge in VND
func (i *Invoice) WaterCost() int64 {
	return int64(math.Round(i.WaterUsage() * float64(i.WaterUnitPrice)))
}

// CalculateTotal recomputes and stores the invoice total:
// room charge + electricity + water + other fees. Must be called after every
// change to readings, unit prices, room charge or fees.
func (i *Invoice) CalculateTotal() int64 {
	i.TotalAmount = i.RoomCharge + i.ElectricCost() + i.WaterCost() + i.OtherFees
	return i.TotalAmount
}

// PaidAmount sums the loaded payments. Callers that mutate payments should
// pass an authoritative sum to RefreshStatus instead of relying on a
// possibly stale preloaded slice.
func (i *Invoice) PaidAmount() int64 {
	var paid int64
	for _, p := range i.Payments {
		paid += p.Amount
	}
	return paid
}

// RemainingAmount returns the unpaid balance, never negative
func (i *Invoice) RemainingAmount() int64 {
	if rem := i.TotalAmount - i.PaidAmount(); rem > 0 {
		return rem
	}
	return 0
}

// OverpaidAmount returns how far payments exceed the total, never negative
func (i *Invoice) OverpaidAmount() int64 {
	if over := i.PaidAmount() - i.TotalAmount; over > 0 {
		return over
	}
	return 0
}

// RefreshStatus is the single authoritative writer of Status and PaymentDate.
// It derives both from the cumulative paid amount:
//
//	paid == 0      -> unpaid, PaymentDate cleared
//	paid >= total  -> paid, PaymentDate set once (re-entering paid keeps it)
//	otherwise      -> partial, PaymentDate cleared
func (i *Invoice) RefreshStatus(paid int64, now time.Time) {
	switch {
	case paid == 0:
		i.Status = enum.InvoiceStatusUnpaid
		i.PaymentDate = nil
	case paid >= i.TotalAmount:
		i.Status = enum.InvoiceStatusPaid
		if i.PaymentDate == nil {
			t := now
			i.PaymentDate = &t
		}
	default:
		i.Status = enum.InvoiceStatusPartial
		i.PaymentDate = nil
	}
}

// DaysOverdue returns whole days past the due date, truncated down.
// A fully paid invoice, or one without a due date, is never overdue.
func (i *Invoice) DaysOverdue(now time.Time) int {
	if i.Status == enum.InvoiceStatusPaid {
		return 0
	}
	if i.DueDate == nil {
		return 0
	}
	if !now.After(*i.DueDate) {
		return 0
	}
	return int(now.Sub(*i.DueDate).Hours() / 24)
}

// IsOverdue reports whether the invoice is past due and not fully paid
func (i *Invoice) IsOverdue(now time.Time) bool {
	return i.DaysOverdue(now) > 0
}
