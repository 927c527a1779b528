package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/domain/entity"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	"github.com/minhvu/roomledger-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	ExistsForPeriod(ctx context.Context, roomID uuid.UUID, month, year int) (bool, error)
	ListOverdue(ctx context.Context, now time.Time) ([]entity.Invoice, error)
	Statistics(ctx context.Context, month, year int) (*InvoiceStats, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.InvoiceStatus
	Month      *int
	Year       *int
	RoomID     *uuid.UUID
	RoomNumber string
}

// InvoiceStats aggregates invoice counts and amounts for a period
type InvoiceStats struct {
	Total           int64 `json:"total"`
	Unpaid          int64 `json:"unpaid"`
	Partial         int64 `json:"partial"`
	Paid            int64 `json:"paid"`
	TotalAmount     int64 `json:"total_amount"`
	PaidAmount      int64 `json:"paid_amount"`
	RemainingAmount int64 `json:"remaining_amount"`
}
