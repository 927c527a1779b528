package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/domain/entity"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	"github.com/minhvu/roomledger-api/pkg/apperror"
	"github.com/minhvu/roomledger-api/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportFixture() (*ReportService, *fakeInvoiceRepo, *fakePaymentRepo) {
	rooms := newFakeRoomRepo()
	tenants := newFakeTenantRepo()
	invoices := newFakeInvoiceRepo()
	payments := newFakePaymentRepo()
	invoices.payments = payments

	svc := NewReportService(rooms, tenants, invoices, payments, testBillingConfig(), clock.Fixed(testNow))
	return svc, invoices, payments
}

func TestMonthlyReportDefaultsToCurrentYear(t *testing.T) {
	svc, invoices, _ := newReportFixture()

	for _, month := range []int{2, 3} {
		require.NoError(t, invoices.Create(context.Background(), &entity.Invoice{
			RoomID:      uuid.New(),
			Month:       month,
			Year:        2025,
			TotalAmount: 1000000,
			Status:      enum.InvoiceStatusUnpaid,
		}))
	}

	// No period: the whole current year.
	report, err := svc.Monthly(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2025, report.Year)
	assert.Equal(t, 0, report.Month)
	assert.Equal(t, int64(2), report.Invoices.Total)

	report, err = svc.Monthly(context.Background(), 3, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Month)
	assert.Equal(t, int64(1), report.Invoices.Total)

	_, err = svc.Monthly(context.Background(), 13, 2025)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestDashboardAggregatesCurrentMonth(t *testing.T) {
	svc, invoices, _ := newReportFixture()

	due := testNow.AddDate(0, 0, -7)
	require.NoError(t, invoices.Create(context.Background(), &entity.Invoice{
		RoomID:      uuid.New(),
		Month:       3,
		Year:        2025,
		TotalAmount: 1000000,
		Status:      enum.InvoiceStatusUnpaid,
		DueDate:     &due,
	}))

	report, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Month)
	assert.Equal(t, 2025, report.Year)
	assert.Equal(t, int64(1), report.Invoices.Total)
	assert.Equal(t, 1, report.Overdue.Total)
	assert.Equal(t, 1, report.Overdue.Danger)
	assert.Equal(t, int64(1000000), report.Overdue.AmountDue)
}
