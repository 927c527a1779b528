package request

import "time"

// RecordPaymentRequest represents the record payment request body
type RecordPaymentRequest struct {
	Amount      int64      `json:"amount" binding:"required,gt=0"`
	Method      string     `json:"method" binding:"omitempty,oneof=cash bank_transfer momo zalopay other"`
	PaymentDate *time.Time `json:"payment_date"`
	Notes       string     `json:"notes"`
}

// UpdatePaymentRequest represents the update payment request body
type UpdatePaymentRequest struct {
	Amount      *int64     `json:"amount" binding:"omitempty,gt=0"`
	Method      *string    `json:"method" binding:"omitempty,oneof=cash bank_transfer momo zalopay other"`
	PaymentDate *time.Time `json:"payment_date"`
	Notes       *string    `json:"notes"`
}
