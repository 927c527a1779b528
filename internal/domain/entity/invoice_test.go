package entity

import (
	"testing"
	"time"

	"github.com/minhvu/roomledger-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceCalculateTotal(t *testing.T) {
	tests := []struct {
		name    string
		invoice Invoice
		want    int64
	}{
		{
			name: "room charge plus utilities plus fees",
			invoice: Invoice{
				RoomCharge:        3000000,
				ElectricOld:       100,
				ElectricNew:       150,
				ElectricUnitPrice: 3500,
				WaterOld:          10,
				WaterNew:          15,
				WaterUnitPrice:    20000,
				OtherFees:         50000,
			},
			want: 3325000,
		},
		{
			name: "zero usage bills room charge only",
			invoice: Invoice{
				RoomCharge:        2500000,
				ElectricOld:       200,
				ElectricNew:       200,
				ElectricUnitPrice: 3500,
				WaterOld:          30,
				WaterNew:          30,
				WaterUnitPrice:    20000,
			},
			want: 2500000,
		},
		{
			name: "negative usage clamps to zero",
			invoice: Invoice{
				RoomCharge:        2000000,
				ElectricOld:       150,
				ElectricNew:       100,
				ElectricUnitPrice: 3500,
				WaterOld:          20,
				WaterNew:          10,
				WaterUnitPrice:    20000,
				OtherFees:         100000,
			},
			want: 2100000,
		},
		{
			name: "fractional usage rounds to nearest dong",
			invoice: Invoice{
				ElectricOld:       0,
				ElectricNew:       10.5,
				ElectricUnitPrice: 3500,
			},
			want: 36750,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.invoice.CalculateTotal()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, tt.invoice.TotalAmount)
		})
	}
}

func TestInvoiceUsageClamping(t *testing.T) {
	inv := Invoice{ElectricOld: 150, ElectricNew: 100, WaterOld: 20, WaterNew: 10}
	assert.Equal(t, 0.0, inv.ElectricUsage())
	assert.Equal(t, 0.0, inv.WaterUsage())
}

func TestInvoiceRefreshStatus(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("zero paid is unpaid", func(t *testing.T) {
		inv := Invoice{TotalAmount: 1000000}
		inv.RefreshStatus(0, now)
		assert.Equal(t, enum.InvoiceStatusUnpaid, inv.Status)
		assert.Nil(t, inv.PaymentDate)
	})

	t.Run("partial payment is partial", func(t *testing.T) {
		inv := Invoice{TotalAmount: 1000000}
		inv.RefreshStatus(400000, now)
		assert.Equal(t, enum.InvoiceStatusPartial, inv.Status)
		assert.Nil(t, inv.PaymentDate)
	})

	t.Run("full payment is paid and stamps payment date", func(t *testing.T) {
		inv := Invoice{TotalAmount: 1000000}
		inv.RefreshStatus(1000000, now)
		assert.Equal(t, enum.InvoiceStatusPaid, inv.Status)
		require.NotNil(t, inv.PaymentDate)
		assert.Equal(t, now, *inv.PaymentDate)
	})

	t.Run("payment date is kept while invoice stays paid", func(t *testing.T) {
		inv := Invoice{TotalAmount: 1000000}
		inv.RefreshStatus(1000000, now)
		later := now.Add(48 * time.Hour)
		inv.RefreshStatus(1200000, later)
		require.NotNil(t, inv.PaymentDate)
		assert.Equal(t, now, *inv.PaymentDate)
	})

	t.Run("regressing below paid clears payment date", func(t *testing.T) {
		inv := Invoice{TotalAmount: 1000000}
		inv.RefreshStatus(1000000, now)
		inv.RefreshStatus(600000, now.Add(time.Hour))
		assert.Equal(t, enum.InvoiceStatusPartial, inv.Status)
		assert.Nil(t, inv.PaymentDate)
	})

	t.Run("re-reaching paid stamps a fresh payment date", func(t *testing.T) {
		inv := Invoice{TotalAmount: 1000000}
		inv.RefreshStatus(1000000, now)
		inv.RefreshStatus(600000, now.Add(time.Hour))
		later := now.Add(72 * time.Hour)
		inv.RefreshStatus(1000000, later)
		assert.Equal(t, enum.InvoiceStatusPaid, inv.Status)
		require.NotNil(t, inv.PaymentDate)
		assert.Equal(t, later, *inv.PaymentDate)
	})
}

func TestInvoicePaidAndRemaining(t *testing.T) {
	inv := Invoice{
		TotalAmount: 1000000,
		Payments: []Payment{
			{Amount: 300000},
			{Amount: 200000},
		},
	}
	assert.Equal(t, int64(500000), inv.PaidAmount())
	assert.Equal(t, int64(500000), inv.RemainingAmount())
	assert.Equal(t, int64(0), inv.OverpaidAmount())

	inv.Payments = append(inv.Payments, Payment{Amount: 700000})
	assert.Equal(t, int64(0), inv.RemainingAmount())
	assert.Equal(t, int64(200000), inv.OverpaidAmount())
}

func TestInvoiceDaysOverdue(t *testing.T) {
	due := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status enum.InvoiceStatus
		due    *time.Time
		now    time.Time
		want   int
	}{
		{"no due date", enum.InvoiceStatusUnpaid, nil, due.AddDate(0, 0, 30), 0},
		{"paid is never overdue", enum.InvoiceStatusPaid, &due, due.AddDate(0, 0, 30), 0},
		{"before due date", enum.InvoiceStatusUnpaid, &due, due.AddDate(0, 0, -1), 0},
		{"on due date", enum.InvoiceStatusUnpaid, &due, due, 0},
		{"five days past", enum.InvoiceStatusPartial, &due, due.AddDate(0, 0, 5), 5},
		{"partial day truncates down", enum.InvoiceStatusUnpaid, &due, due.Add(36 * time.Hour), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := Invoice{Status: tt.status, DueDate: tt.due}
			assert.Equal(t, tt.want, inv.DaysOverdue(tt.now))
		})
	}
}

func TestInvoiceIsOverdue(t *testing.T) {
	due := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	inv := Invoice{Status: enum.InvoiceStatusUnpaid, DueDate: &due}

	assert.False(t, inv.IsOverdue(due))
	assert.True(t, inv.IsOverdue(due.AddDate(0, 0, 2)))

	inv.Status = enum.InvoiceStatusPaid
	assert.False(t, inv.IsOverdue(due.AddDate(0, 0, 2)))
}
