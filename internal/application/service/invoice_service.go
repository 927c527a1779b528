package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/config"
	"github.com/minhvu/roomledger-api/internal/domain/entity"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	"github.com/minhvu/roomledger-api/internal/domain/repository"
	"github.com/minhvu/roomledger-api/pkg/apperror"
	"github.com/minhvu/roomledger-api/pkg/clock"
	"github.com/minhvu/roomledger-api/pkg/pagination"
	"gorm.io/gorm"
)

// InvoiceService handles the invoice lifecycle: creation with tariff
// snapshotting, edits, deletion and overdue reporting. Status transitions
// live in the entity; this service decides when to trigger them.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	roomRepo    repository.RoomRepository
	tx          repository.Transactor
	billing     *config.BillingConfig
	clock       clock.Clock
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	roomRepo repository.RoomRepository,
	tx repository.Transactor,
	billing *config.BillingConfig,
	clk clock.Clock,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		roomRepo:    roomRepo,
		tx:          tx,
		billing:     billing,
		clock:       clk,
	}
}

// CreateInvoiceInput represents the create invoice input. Unit prices are
// optional; omitted ones fall back to the configured defaults.
type CreateInvoiceInput struct {
	RoomID            uuid.UUID
	Month             int
	Year              int
	ElectricOld       float64
	ElectricNew       float64
	ElectricUnitPrice *int64
	WaterOld          float64
	WaterNew          float64
	WaterUnitPrice    *int64
	OtherFees         int64
	DueDate           *time.Time
	Notes             string
	CreatedBy         *uuid.UUID
}

// UpdateInvoiceInput represents the update invoice input. Nil fields keep
// their current value.
type UpdateInvoiceInput struct {
	ElectricOld       *float64
	ElectricNew       *float64
	ElectricUnitPrice *int64
	WaterOld          *float64
	WaterNew          *float64
	WaterUnitPrice    *int64
	RoomCharge        *int64
	OtherFees         *int64
	DueDate           *time.Time
	Notes             *string
}

// BulkCreateInput creates invoices for every occupied room that does not yet
// have one for the period. Meter readings start at zero and are filled in
// later through updates.
type BulkCreateInput struct {
	Month     int
	Year      int
	DueDate   *time.Time
	CreatedBy *uuid.UUID
}

// BulkCreateResult reports what a bulk run produced
type BulkCreateResult struct {
	Created []entity.Invoice `json:"created"`
	Skipped int              `json:"skipped"`
}

// OverdueInvoice pairs an invoice with its computed overdue severity
type OverdueInvoice struct {
	Invoice     entity.Invoice    `json:"invoice"`
	DaysOverdue int               `json:"days_overdue"`
	Level       enum.OverdueLevel `json:"level"`
}

func validatePeriod(month, year int) error {
	var fieldErrors []apperror.FieldError
	if month < 1 || month > 12 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "month", Message: "must be between 1 and 12"})
	}
	if year < 2000 || year > 2100 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "year", Message: "must be between 2000 and 2100"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewFieldValidationError(fieldErrors)
	}
	return nil
}

// validateOptionalPeriod validates only the components that were supplied.
// Zero means "not filtered"; statistics endpoints aggregate everything when
// the period is omitted.
func validateOptionalPeriod(month, year int) error {
	var fieldErrors []apperror.FieldError
	if month != 0 && (month < 1 || month > 12) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "month", Message: "must be between 1 and 12"})
	}
	if year != 0 && (year < 2000 || year > 2100) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "year", Message: "must be between 2000 and 2100"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewFieldValidationError(fieldErrors)
	}
	return nil
}

func validateReadings(electricOld, electricNew, waterOld, waterNew float64) error {
	var fieldErrors []apperror.FieldError
	if electricOld < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "electric_old", Message: "must not be negative"})
	}
	if waterOld < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "water_old", Message: "must not be negative"})
	}
	if electricNew < electricOld {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "electric_new", Message: "must not be lower than electric_old"})
	}
	if waterNew < waterOld {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "water_new", Message: "must not be lower than water_old"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewFieldValidationError(fieldErrors)
	}
	return nil
}

// CreateInvoice creates an invoice for one room and period. The room's
// current price and the effective unit prices are snapshotted onto the
// invoice so later tariff changes never alter it.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	if err := validatePeriod(input.Month, input.Year); err != nil {
		return nil, err
	}
	if err := validateReadings(input.ElectricOld, input.ElectricNew, input.WaterOld, input.WaterNew); err != nil {
		return nil, err
	}
	if input.OtherFees < 0 {
		return nil, apperror.NewValidationError("Other fees must not be negative")
	}

	room, err := s.roomRepo.GetByID(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, apperror.NewNotFoundError("Room")
	}
	if room.Status != enum.RoomStatusOccupied {
		return nil, apperror.NewStateConflictError(fmt.Sprintf("Room %s is not occupied", room.RoomNumber))
	}

	// Friendly precheck; the unique index below is the real guarantee.
	exists, err := s.invoiceRepo.ExistsForPeriod(ctx, input.RoomID, input.Month, input.Year)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewDuplicateError(
			fmt.Sprintf("Invoice already exists for room %s in %02d/%d", room.RoomNumber, input.Month, input.Year))
	}

	invoice := s.buildInvoice(room, input)

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		// Concurrent creation for the same room and period loses the race
		// on the composite unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.NewDuplicateError(
				fmt.Sprintf("Invoice already exists for room %s in %02d/%d", room.RoomNumber, input.Month, input.Year))
		}
		return nil, err
	}

	return s.invoiceRepo.GetByID(ctx, invoice.ID)
}

func (s *InvoiceService) buildInvoice(room *entity.Room, input *CreateInvoiceInput) *entity.Invoice {
	electricPrice := s.billing.ElectricUnitPrice
	if input.ElectricUnitPrice != nil {
		electricPrice = *input.ElectricUnitPrice
	}
	waterPrice := s.billing.WaterUnitPrice
	if input.WaterUnitPrice != nil {
		waterPrice = *input.WaterUnitPrice
	}

	dueDate := input.DueDate
	if dueDate == nil {
		d := s.clock.Now().AddDate(0, 0, s.billing.DueInDays)
		dueDate = &d
	}

	invoice := &entity.Invoice{
		RoomID:            room.ID,
		CreatedBy:         input.CreatedBy,
		Month:             input.Month,
		Year:              input.Year,
		RoomCharge:        room.Price,
		ElectricOld:       input.ElectricOld,
		ElectricNew:       input.ElectricNew,
		ElectricUnitPrice: electricPrice,
		WaterOld:          input.WaterOld,
		WaterNew:          input.WaterNew,
		WaterUnitPrice:    waterPrice,
		OtherFees:         input.OtherFees,
		Status:            enum.InvoiceStatusUnpaid,
		DueDate:           dueDate,
		Notes:             input.Notes,
	}
	invoice.CalculateTotal()
	return invoice
}

// CreateBulk creates invoices for all occupied rooms without one for the
// period. The whole batch runs in one transaction, so a failure midway
// leaves nothing behind.
func (s *InvoiceService) CreateBulk(ctx context.Context, input *BulkCreateInput) (*BulkCreateResult, error) {
	if err := validatePeriod(input.Month, input.Year); err != nil {
		return nil, err
	}

	result := &BulkCreateResult{Created: []entity.Invoice{}}

	err := s.tx.Transact(ctx, func(ctx context.Context) error {
		occupied, err := s.roomRepo.ListByStatus(ctx, enum.RoomStatusOccupied)
		if err != nil {
			return err
		}
		eligible, err := s.roomRepo.ListWithoutInvoice(ctx, input.Month, input.Year)
		if err != nil {
			return err
		}
		result.Skipped = len(occupied) - len(eligible)

		for i := range eligible {
			room := &eligible[i]
			invoice := s.buildInvoice(room, &CreateInvoiceInput{
				RoomID:    room.ID,
				Month:     input.Month,
				Year:      input.Year,
				DueDate:   input.DueDate,
				CreatedBy: input.CreatedBy,
			})
			if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// Raced with a concurrent single create; treat as skipped.
					result.Skipped++
					continue
				}
				return err
			}
			result.Created = append(result.Created, *invoice)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetInvoice retrieves an invoice with its room and payments
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// UpdateInvoice edits the billable fields of an invoice. Fully paid invoices
// are immutable. Because the total can change, the status is recomputed from
// the recorded payments inside the same transaction: lowering the total
// below the paid sum flips a partial invoice to paid.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	err := s.tx.Transact(ctx, func(ctx context.Context) error {
		invoice, err := s.invoiceRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Invoice")
		}
		if invoice.Status == enum.InvoiceStatusPaid {
			return apperror.NewStateConflictError("Cannot edit a fully paid invoice")
		}

		if input.ElectricOld != nil {
			invoice.ElectricOld = *input.ElectricOld
		}
		if input.ElectricNew != nil {
			invoice.ElectricNew = *input.ElectricNew
		}
		if input.ElectricUnitPrice != nil {
			invoice.ElectricUnitPrice = *input.ElectricUnitPrice
		}
		if input.WaterOld != nil {
			invoice.WaterOld = *input.WaterOld
		}
		if input.WaterNew != nil {
			invoice.WaterNew = *input.WaterNew
		}
		if input.WaterUnitPrice != nil {
			invoice.WaterUnitPrice = *input.WaterUnitPrice
		}
		if input.RoomCharge != nil {
			invoice.RoomCharge = *input.RoomCharge
		}
		if input.OtherFees != nil {
			invoice.OtherFees = *input.OtherFees
		}
		if input.DueDate != nil {
			invoice.DueDate = input.DueDate
		}
		if input.Notes != nil {
			invoice.Notes = *input.Notes
		}

		if err := validateReadings(invoice.ElectricOld, invoice.ElectricNew, invoice.WaterOld, invoice.WaterNew); err != nil {
			return err
		}
		if invoice.RoomCharge < 0 || invoice.OtherFees < 0 || invoice.ElectricUnitPrice < 0 || invoice.WaterUnitPrice < 0 {
			return apperror.NewValidationError("Amounts must not be negative")
		}

		invoice.CalculateTotal()

		paid, err := s.paymentRepo.SumByInvoice(ctx, invoice.ID)
		if err != nil {
			return err
		}
		invoice.RefreshStatus(paid, s.clock.Now())

		return s.invoiceRepo.Update(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetByID(ctx, id)
}

// DeleteInvoice removes an invoice. Invoices with recorded payments cannot
// be deleted; remove the payments first.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	return s.tx.Transact(ctx, func(ctx context.Context) error {
		invoice, err := s.invoiceRepo.GetByID(ctx, id)
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
		if paid > 0 || len(invoice.Payments) > 0 {
			return apperror.NewStateConflictError("Cannot delete an invoice with recorded payments")
		}

		return s.invoiceRepo.Delete(ctx, id)
	})
}

// ListOverdue returns unpaid and partial invoices past their due date, each
// classified by severity.
func (s *InvoiceService) ListOverdue(ctx context.Context) ([]OverdueInvoice, error) {
	now := s.clock.Now()
	invoices, err := s.invoiceRepo.ListOverdue(ctx, now)
	if err != nil {
		return nil, err
	}

	result := make([]OverdueInvoice, 0, len(invoices))
	for _, inv := range invoices {
		days := inv.DaysOverdue(now)
		result = append(result, OverdueInvoice{
			Invoice:     inv,
			DaysOverdue: days,
			Level:       enum.OverdueLevelForDays(days, s.billing.OverdueWarningDays, s.billing.OverdueDangerDays),
		})
	}
	return result, nil
}

// Statistics aggregates invoice counts and amounts. Month and year narrow
// the aggregation when supplied; omitting both covers all periods.
func (s *InvoiceService) Statistics(ctx context.Context, month, year int) (*repository.InvoiceStats, error) {
	if err := validateOptionalPeriod(month, year); err != nil {
		return nil, err
	}
	return s.invoiceRepo.Statistics(ctx, month, year)
}

// RoomsWithoutInvoice returns occupied rooms still missing an invoice for
// the period, defaulting to the current month.
func (s *InvoiceService) RoomsWithoutInvoice(ctx context.Context, month, year int) ([]entity.Room, error) {
	if month == 0 && year == 0 {
		now := s.clock.Now()
		month, year = int(now.Month()), now.Year()
	}
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	return s.roomRepo.ListWithoutInvoice(ctx, month, year)
}
