package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/domain/entity"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	"github.com/minhvu/roomledger-api/internal/domain/repository"
	"github.com/minhvu/roomledger-api/pkg/apperror"
	"github.com/minhvu/roomledger-api/pkg/clock"
)

// PaymentService records, edits and removes payments. Every mutation runs
// in a transaction together with the invoice status recomputation, using
// the database sum of payments rather than any preloaded state.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	invoiceRepo repository.InvoiceRepository
	tx          repository.Transactor
	clock       clock.Clock
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	invoiceRepo repository.InvoiceRepository,
	tx repository.Transactor,
	clk clock.Clock,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		tx:          tx,
		clock:       clk,
	}
}

func parsePaymentMethod(raw string) (enum.PaymentMethod, error) {
	if raw == "" {
		return enum.PaymentMethodCash, nil
	}
	method := enum.PaymentMethod(raw)
	if !method.IsValid() {
		return "", apperror.NewValidationError("Unknown payment method: " + raw)
	}
	return method, nil
}

// RecordPaymentInput represents the record payment input
type RecordPaymentInput struct {
	InvoiceID   uuid.UUID
	Amount      int64
	Method      string
	PaymentDate *time.Time
	Notes       string
}

// UpdatePaymentInput represents the update payment input. Nil fields keep
// their current value.
type UpdatePaymentInput struct {
	Amount      *int64
	Method      *string
	PaymentDate *time.Time
	Notes       *string
}

// RecordPayment records a payment against an invoice. The amount must be
// positive and must not exceed the remaining balance; paying off an invoice
// exactly moves it to paid and stamps the payment date.
func (s *PaymentService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.Payment, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewValidationError("Payment amount must be positive")
	}
	method, err := parsePaymentMethod(input.Method)
	if err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		InvoiceID: input.InvoiceID,
		Amount:    input.Amount,
		Method:    method,
		Notes:     input.Notes,
	}
	if input.PaymentDate != nil {
		payment.PaymentDate = *input.PaymentDate
	} else {
		payment.PaymentDate = s.clock.Now()
	}

	err = s.tx.Transact(ctx, func(ctx context.Context) error {
		invoice, err := s.invoiceRepo.GetByID(ctx, input.InvoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Invoice")
		}

		paid, err := s.paymentRepo.SumByInvoice(ctx, invoice.ID)
		if err != nil {
			return err
		}
		if remaining := invoice.TotalAmount - paid; input.Amount > remaining {
			return apperror.NewValidationError("Payment amount exceeds the remaining balance")
		}

		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		invoice.RefreshStatus(paid+input.Amount, s.clock.Now())
		return s.invoiceRepo.Update(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// UpdatePayment edits a recorded payment and recomputes the invoice status.
// Raising the amount past the invoice total is rejected the same way a new
// overpaying payment would be; shrinking it can regress a paid invoice back
// to partial, clearing its payment date.
func (s *PaymentService) UpdatePayment(ctx context.Context, id uuid.UUID, input *UpdatePaymentInput) (*entity.Payment, error) {
	var payment *entity.Payment

	err := s.tx.Transact(ctx, func(ctx context.Context) error {
		var err error
		payment, err = s.paymentRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if payment == nil {
			return apperror.NewNotFoundError("Payment")
		}

		invoice, err := s.invoiceRepo.GetByID(ctx, payment.InvoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Invoice")
		}

		oldAmount := payment.Amount
		if input.Amount != nil {
			if *input.Amount <= 0 {
				return apperror.NewValidationError("Payment amount must be positive")
			}
			payment.Amount = *input.Amount
		}
		if input.Method != nil {
			method, err := parsePaymentMethod(*input.Method)
			if err != nil {
				return err
			}
			payment.Method = method
		}
		if input.PaymentDate != nil {
			payment.PaymentDate = *input.PaymentDate
		}
		if input.Notes != nil {
			payment.Notes = *input.Notes
		}

		paid, err := s.paymentRepo.SumByInvoice(ctx, invoice.ID)
		if err != nil {
			return err
		}
		newPaid := paid - oldAmount + payment.Amount
		if newPaid > invoice.TotalAmount {
			return apperror.NewValidationError("Payment amount exceeds the remaining balance")
		}

		if err := s.paymentRepo.Update(ctx, payment); err != nil {
			return err
		}

		invoice.RefreshStatus(newPaid, s.clock.Now())
		return s.invoiceRepo.Update(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// RemovePayment deletes a payment and recomputes the invoice status, which
// may regress from paid to partial or unpaid.
func (s *PaymentService) RemovePayment(ctx context.Context, id uuid.UUID) error {
	return s.tx.Transact(ctx, func(ctx context.Context) error {
		payment, err := s.paymentRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if payment == nil {
			return apperror.NewNotFoundError("Payment")
		}

		invoice, err := s.invoiceRepo.GetByID(ctx, payment.InvoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Invoice")
		}

		if err := s.paymentRepo.Delete(ctx, payment.ID); err != nil {
			return err
		}

		paid, err := s.paymentRepo.SumByInvoice(ctx, invoice.ID)
		if err != nil {
			return err
		}
		invoice.RefreshStatus(paid, s.clock.Now())
		return s.invoiceRepo.Update(ctx, invoice)
	})
}

// GetPayment retrieves a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// ListPayments lists the payments of one invoice, newest first
func (s *PaymentService) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return s.paymentRepo.ListByInvoice(ctx, invoiceID)
}

// Statistics aggregates payments grouped by method. Month and year narrow
// the aggregation when supplied; omitting both covers all payments.
func (s *PaymentService) Statistics(ctx context.Context, month, year int) (*repository.PaymentStats, error) {
	if err := validateOptionalPeriod(month, year); err != nil {
		return nil, err
	}
	return s.paymentRepo.Statistics(ctx, month, year)
}
