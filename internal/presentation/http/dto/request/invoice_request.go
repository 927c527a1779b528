package request

import "time"

// CreateInvoiceRequest represents the create invoice request body. Omitted
// unit prices fall back to the configured defaults; an omitted due date
// defaults to the configured payment window from today.
type CreateInvoiceRequest struct {
	RoomID            string     `json:"room_id" binding:"required,uuid"`
	Month             int        `json:"month" binding:"required,min=1,max=12"`
	Year              int        `json:"year" binding:"required,min=2000,max=2100"`
	ElectricOld       float64    `json:"electric_old" binding:"gte=0"`
	ElectricNew       float64    `json:"electric_new" binding:"gte=0"`
	ElectricUnitPrice *int64     `json:"electric_unit_price" binding:"omitempty,gte=0"`
	WaterOld          float64    `json:"water_old" binding:"gte=0"`
	WaterNew          float64    `json:"water_new" binding:"gte=0"`
	WaterUnitPrice    *int64     `json:"water_unit_price" binding:"omitempty,gte=0"`
	OtherFees         int64      `json:"other_fees" binding:"gte=0"`
	DueDate           *time.Time `json:"due_date"`
	Notes             string     `json:"notes"`
}

// UpdateInvoiceRequest represents the update invoice request body
type UpdateInvoiceRequest struct {
	ElectricOld       *float64   `json:"electric_old" binding:"omitempty,gte=0"`
	ElectricNew       *float64   `json:"electric_new" binding:"omitempty,gte=0"`
	ElectricUnitPrice *int64     `json:"electric_unit_price" binding:"omitempty,gte=0"`
	WaterOld          *float64   `json:"water_old" binding:"omitempty,gte=0"`
	WaterNew          *float64   `json:"water_new" binding:"omitempty,gte=0"`
	WaterUnitPrice    *int64     `json:"water_unit_price" binding:"omitempty,gte=0"`
	RoomCharge        *int64     `json:"room_charge" binding:"omitempty,gte=0"`
	OtherFees         *int64     `json:"other_fees" binding:"omitempty,gte=0"`
	DueDate           *time.Time `json:"due_date"`
	Notes             *string    `json:"notes"`
}

// BulkCreateInvoiceRequest represents the bulk invoice creation request body
type BulkCreateInvoiceRequest struct {
	Month   int        `json:"month" binding:"required,min=1,max=12"`
	Year    int        `json:"year" binding:"required,min=2000,max=2100"`
	DueDate *time.Time `json:"due_date"`
}
