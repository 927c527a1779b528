package service

import (
	"context"

	"github.com/minhvu/roomledger-api/internal/config"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	"github.com/minhvu/roomledger-api/internal/domain/repository"
	"github.com/minhvu/roomledger-api/pkg/clock"
)

// ReportService aggregates statistics across rooms, tenants, invoices and
// payments for the dashboard and monthly reports.
type ReportService struct {
	roomRepo    repository.RoomRepository
	tenantRepo  repository.TenantRepository
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	billing     *config.BillingConfig
	clock       clock.Clock
}

// NewReportService creates a new report service
func NewReportService(
	roomRepo repository.RoomRepository,
	tenantRepo repository.TenantRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	billing *config.BillingConfig,
	clk clock.Clock,
) *ReportService {
	return &ReportService{
		roomRepo:    roomRepo,
		tenantRepo:  tenantRepo,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		billing:     billing,
		clock:       clk,
	}
}

// OverdueSummary counts overdue invoices per severity level
type OverdueSummary struct {
	Total     int   `json:"total"`
	Warning   int   `json:"warning"`
	Danger    int   `json:"danger"`
	Critical  int   `json:"critical"`
	AmountDue int64 `json:"amount_due"`
}

// DashboardReport is the landing-page aggregate for the current month
type DashboardReport struct {
	Month    int                      `json:"month"`
	Year     int                      `json:"year"`
	Rooms    *repository.RoomStats    `json:"rooms"`
	Tenants  *repository.TenantStats  `json:"tenants"`
	Invoices *repository.InvoiceStats `json:"invoices"`
	Overdue  *OverdueSummary          `json:"overdue"`
}

// MonthlyReport combines invoice and payment aggregates for one period
type MonthlyReport struct {
	Month    int                      `json:"month"`
	Year     int                      `json:"year"`
	Invoices *repository.InvoiceStats `json:"invoices"`
	Payments *repository.PaymentStats `json:"payments"`
}

// Dashboard builds the current-month overview
func (s *ReportService) Dashboard(ctx context.Context) (*DashboardReport, error) {
	now := s.clock.Now()
	month := int(now.Month())
	year := now.Year()

	rooms, err := s.roomRepo.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	tenants, err := s.tenantRepo.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.Statistics(ctx, month, year)
	if err != nil {
		return nil, err
	}
	overdue, err := s.overdueSummary(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardReport{
		Month:    month,
		Year:     year,
		Rooms:    rooms,
		Tenants:  tenants,
		Invoices: invoices,
		Overdue:  overdue,
	}, nil
}

// Monthly builds the revenue report. The year defaults to the current one;
// leaving the month unset covers the whole year.
func (s *ReportService) Monthly(ctx context.Context, month, year int) (*MonthlyReport, error) {
	if year == 0 {
		year = s.clock.Now().Year()
	}
	if err := validateOptionalPeriod(month, year); err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.Statistics(ctx, month, year)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.Statistics(ctx, month, year)
	if err != nil {
		return nil, err
	}

	return &MonthlyReport{
		Month:    month,
		Year:     year,
		Invoices: invoices,
		Payments: payments,
	}, nil
}

func (s *ReportService) overdueSummary(ctx context.Context) (*OverdueSummary, error) {
	now := s.clock.Now()
	invoices, err := s.invoiceRepo.ListOverdue(ctx, now)
	if err != nil {
		return nil, err
	}

	summary := &OverdueSummary{}
	for i := range invoices {
		inv := &invoices[i]
		days := inv.DaysOverdue(now)
		if days <= 0 {
			continue
		}
		summary.Total++
		summary.AmountDue += inv.TotalAmount - inv.PaidAmount()
		switch enum.OverdueLevelForDays(days, s.billing.OverdueWarningDays, s.billing.OverdueDangerDays) {
		case enum.OverdueLevelWarning:
			summary.Warning++
		case enum.OverdueLevelDanger:
			summary.Danger++
		case enum.OverdueLevelCritical:
			summary.Critical++
		}
	}
	return summary, nil
}
