package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/domain/entity"
)

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error)
	// SumByInvoice returns the authoritative paid amount straight from the
	// database, so status recomputation never trusts a stale preload.
	SumByInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error)
	DeleteByInvoice(ctx context.Context, invoiceID uuid.UUID) error
	Statistics(ctx context.Context, month, year int) (*PaymentStats, error)
}

// PaymentMethodStats aggregates payments for one method
type PaymentMethodStats struct {
	Count  int64 `json:"count"`
	Amount int64 `json:"amount"`
}

// PaymentStats aggregates payment counts and amounts for a period
type PaymentStats struct {
	TotalPayments int64                         `json:"total_payments"`
	TotalAmount   int64                         `json:"total_amount"`
	ByMethod      map[string]PaymentMethodStats `json:"by_method"`
}
