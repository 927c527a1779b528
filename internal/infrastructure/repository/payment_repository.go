package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/domain/entity"
	domainRepo "github.com/minhvu/roomledger-api/internal/domain/repository"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return conn(ctx, r.db).Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := conn(ctx, r.db).First(&payment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	return conn(ctx, r.db).Save(payment).Error
}

func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Payment{}, "id = ?", id).Error
}

func (r *paymentRepository) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := conn(ctx, r.db).
		Where("invoice_id = ?", invoiceID).
		Order("payment_date DESC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) SumByInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	var sum int64
	err := conn(ctx, r.db).Model(&entity.Payment{}).
		Where("invoice_id = ?", invoiceID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *paymentRepository) DeleteByInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Payment{}, "invoice_id = ?", invoiceID).Error
}

func (r *paymentRepository) Statistics(ctx context.Context, month, year int) (*domainRepo.PaymentStats, error) {
	query := conn(ctx, r.db).Model(&entity.Payment{})
	if year > 0 {
		query = query.Where("EXTRACT(YEAR FROM payment_date) = ?", year)
	}
	if month > 0 {
		query = query.Where("EXTRACT(MONTH FROM payment_date) = ?", month)
	}

	type row struct {
		Method string
		Count  int64
		Amount int64
	}
	var rows []row
	if err := query.Select("method, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Group("method").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := &domainRepo.PaymentStats{
		ByMethod: make(map[string]domainRepo.PaymentMethodStats, len(rows)),
	}
	for _, rw := range rows {
		stats.TotalPayments += rw.Count
		stats.TotalAmount += rw.Amount
		stats.ByMethod[rw.Method] = domainRepo.PaymentMethodStats{
			Count:  rw.Count,
			Amount: rw.Amount,
		}
	}
	return stats, nil
}
