package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/domain/entity"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	domainRepo "github.com/minhvu/roomledger-api/internal/domain/repository"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return conn(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := conn(ctx, r.db).
		Preload("Room").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date DESC")
		}).
		First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return conn(ctx, r.db).Save(invoice).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Invoice{}, "id = ?", id).Error
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := conn(ctx, r.db).Model(&entity.Invoice{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.Month != nil {
		query = query.Where("month = ?", *params.Month)
	}

	if params.Year != nil {
		query = query.Where("year = ?", *params.Year)
	}

	if params.RoomID != nil {
		query = query.Where("room_id = ?", *params.RoomID)
	}

	if params.RoomNumber != "" {
		query = query.Joins("JOIN rooms ON rooms.id = invoices.room_id").
			Where("rooms.room_number ILIKE ?", "%"+params.RoomNumber+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Room").
		Preload("Payments").
		Order("year DESC, month DESC, created_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) ExistsForPeriod(ctx context.Context, roomID uuid.UUID, month, year int) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.Invoice{}).
		Where("room_id = ? AND month = ? AND year = ?", roomID, month, year).
		Count(&count).Error
	return count > 0, err
}

func (r *invoiceRepository) ListOverdue(ctx context.Context, now time.Time) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := conn(ctx, r.db).
		Where("status IN ?", []enum.InvoiceStatus{enum.InvoiceStatusUnpaid, enum.InvoiceStatusPartial}).
		Where("due_date IS NOT NULL AND due_date < ?", now).
		Preload("Room").
		Preload("Payments").
		Order("due_date ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) Statistics(ctx context.Context, month, year int) (*domainRepo.InvoiceStats, error) {
	query := conn(ctx, r.db).Model(&entity.Invoice{})
	if year > 0 {
		query = query.Where("year = ?", year)
	}
	if month > 0 {
		query = query.Where("month = ?", month)
	}

	stats := &domainRepo.InvoiceStats{}

	type row struct {
		Status enum.InvoiceStatus
		Count  int64
		Amount int64
	}
	var rows []row
	if err := query.Select("status, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS amount").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, rw := range rows {
		stats.Total += rw.Count
		stats.TotalAmount += rw.Amount
		switch rw.Status {
		case enum.InvoiceStatusUnpaid:
			stats.Unpaid = rw.Count
		case enum.InvoiceStatusPartial:
			stats.Partial = rw.Count
		case enum.InvoiceStatusPaid:
			stats.Paid = rw.Count
		}
	}

	paidQuery := conn(ctx, r.db).Model(&entity.Payment{}).
		Joins("JOIN invoices ON invoices.id = payments.invoice_id")
	if year > 0 {
		paidQuery = paidQuery.Where("invoices.year = ?", year)
	}
	if month > 0 {
		paidQuery = paidQuery.Where("invoices.month = ?", month)
	}
	if err := paidQuery.Select("COALESCE(SUM(payments.amount), 0)").
		Scan(&stats.PaidAmount).Error; err != nil {
		return nil, err
	}

	stats.RemainingAmount = stats.TotalAmount - stats.PaidAmount
	return stats, nil
}
