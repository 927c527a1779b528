package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/config"
	"github.com/minhvu/roomledger-api/internal/domain/entity"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	"github.com/minhvu/roomledger-api/pkg/apperror"
	"github.com/minhvu/roomledger-api/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func testBillingConfig() *config.BillingConfig {
	return &config.BillingConfig{
		ElectricUnitPrice:  3500,
		WaterUnitPrice:     20000,
		DueInDays:          7,
		OverdueWarningDays: 5,
		OverdueDangerDays:  10,
	}
}

type invoiceFixture struct {
	svc      *InvoiceService
	rooms    *fakeRoomRepo
	invoices *fakeInvoiceRepo
	payments *fakePaymentRepo
}

func newInvoiceFixture() *invoiceFixture {
	rooms := newFakeRoomRepo()
	invoices := newFakeInvoiceRepo()
	payments := newFakePaymentRepo()
	invoices.payments = payments
	rooms.invoices = invoices

	svc := NewInvoiceService(invoices, payments, rooms, fakeTx{}, testBillingConfig(), clock.Fixed(testNow))
	return &invoiceFixture{svc: svc, rooms: rooms, invoices: invoices, payments: payments}
}

func (f *invoiceFixture) occupiedRoom(number string, price int64) *entity.Room {
	return f.rooms.add(&entity.Room{
		RoomNumber: number,
		Price:      price,
		Status:     enum.RoomStatusOccupied,
	})
}

func TestCreateInvoice(t *testing.T) {
	f := newInvoiceFixture()
	room := f.occupiedRoom("101", 3000000)

	inv, err := f.svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		RoomID:      room.ID,
		Month:       3,
		Year:        2025,
		ElectricOld: 100,
		ElectricNew: 150,
		WaterOld:    10,
		WaterNew:    15,
		OtherFees:   50000,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3000000), inv.RoomCharge)
	assert.Equal(t, int64(3500), inv.ElectricUnitPrice)
	assert.Equal(t, int64(20000), inv.WaterUnitPrice)
	assert.Equal(t, int64(3325000), inv.TotalAmount)
	assert.Equal(t, enum.InvoiceStatusUnpaid, inv.Status)
	require.NotNil(t, inv.DueDate)
	assert.Equal(t, testNow.AddDate(0, 0, 7), *inv.DueDate)
	assert.Nil(t, inv.PaymentDate)
}

func TestCreateInvoiceKeepsExplicitPrices(t *testing.T) {
	f := newInvoiceFixture()
	room := f.occupiedRoom("102", 2000000)

	elec := int64(4000)
	water := int64(25000)
	due := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	inv, err := f.svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		RoomID:            room.ID,
		Month:             3,
		Year:              2025,
		ElectricUnitPrice: &elec,
		WaterUnitPrice:    &water,
		DueDate:           &due,
	})
	require.NoError(t, err)
	assert.Equal(t, elec, inv.ElectricUnitPrice)
	assert.Equal(t, water, inv.WaterUnitPrice)
	assert.Equal(t, due, *inv.DueDate)
}

func TestCreateInvoiceRoomPriceSnapshot(t *testing.T) {
	f := newInvoiceFixture()
	room := f.occupiedRoom("103", 3000000)

	inv, err := f.svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		RoomID: room.ID, Month: 3, Year: 2025,
	})
	require.NoError(t, err)

	room.Price = 3500000
	got, err := f.svc.GetInvoice(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3000000), got.RoomCharge)
}

func TestCreateInvoiceDuplicatePeriod(t *testing.T) {
	f := newInvoiceFixture()
	room := f.occupiedRoom("104", 2000000)

	_, err := f.svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		RoomID: room.ID, Month: 3, Year: 2025,
	})
	require.NoError(t, err)

	_, err = f.svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		RoomID: room.ID, Month: 3, Year: 2025,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	// Same room, different period is fine.
	_, err = f.svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		RoomID: room.ID, Month: 4, Year: 2025,
	})
	assert.NoError(t, err)
}

func TestCreateInvoiceRoomChecks(t *testing.T) {
	f := newInvoiceFixture()

	_, err := f.svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		RoomID: uuid.New(), Month: 3, Year: 2025,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)

	vacant := f.rooms.add(&entity.Room{RoomNumber: "201", Price: 1000000, Status: enum.RoomStatusAvailable})
	_, err = f.svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		RoomID: vacant.ID, Month: 3, Year: 2025,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestCreateInvoiceValidation(t *testing.T) {
	f := newInvoiceFixture()
	room := f.occupiedRoom("105", 2000000)

	tests := []struct {
		name  string
		input CreateInvoiceInput
	}{
		{"month out of range", CreateInvoiceInput{RoomID: room.ID, Month: 13, Year: 2025}},
		{"year out of range", CreateInvoiceInput{RoomID: room.ID, Month: 1, Year: 1999}},
		{"electric reading regressed", CreateInvoiceInput{RoomID: room.ID, Month: 3, Year: 2025, ElectricOld: 150, ElectricNew: 100}},
		{"water reading regressed", CreateInvoiceInput{RoomID: room.ID, Month: 3, Year: 2025, WaterOld: 20, WaterNew: 10}},
		{"negative other fees", CreateInvoiceInput{RoomID: room.ID, Month: 3, Year: 2025, OtherFees: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateInvoice(context.Background(), &tt.input)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
		})
	}
}

func TestUpdateInvoicePaidIsImmutable(t *testing.T) {
	f := newInvoiceFixture()
	room := f.occupiedRoom("106", 1000000)

	inv, err := f.svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		RoomID: room.ID, Month: 3, Year: 2025,
	})
	require.NoError(t, err)

	inv.Status = enum.InvoiceStatusPaid
	require.NoError(t, f.invoices.Update(context.Background(), inv))

	fees := int64(50000)
	_, err = f.svc.UpdateInvoice(context.Background(), inv.ID, &UpdateInvoiceInput{OtherFees: &fees})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestUpdateInvoiceRecomputesStatus(t *testing.T) {
	f := newInvoiceFixture()
	room := f.occupiedRoom("107", 1000000)

	inv, err := f.svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		RoomID: room.ID, Month: 3, Year: 2025, OtherFees: 500000,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1500000), inv.TotalAmount)

	require.NoError(t, f.payments.Create(context.Background(), &entity.Payment{
		InvoiceID: inv.ID, Amount: 1000000, Method: enum.PaymentMethodCash, PaymentDate: testNow,
	}))
	inv.Status = enum.InvoiceStatusPartial
	require.NoError(t, f.invoices.Update(context.Background(), inv))

	// Dropping the extra fees brings the total down to the paid sum.
	fees := int64(0)
	updated, err := f.svc.UpdateInvoice(context.Background(), inv.ID, &UpdateInvoiceInput{OtherFees: &fees})
	require.NoError(t, err)
	assert.Equal(t, int64(1000000), updated.TotalAmount)
	assert.Equal(t, enum.InvoiceStatusPaid, updated.Status)
	assert.NotNil(t, updated.PaymentDate)
}

func TestDeleteInvoice(t *testing.T) {
	f := newInvoiceFixture()
	room := f.occupiedRoom("108", 1000000)

	inv, err := f.svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		RoomID: room.ID, Month: 3, Year: 2025,
	})
	require.NoError(t, err)

	require.NoError(t, f.payments.Create(context.Background(), &entity.Payment{
		InvoiceID: inv.ID, Amount: 100000, Method: enum.PaymentMethodCash, PaymentDate: testNow,
	}))

	err = f.svc.DeleteInvoice(context.Background(), inv.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	require.NoError(t, f.payments.DeleteByInvoice(context.Background(), inv.ID))
	require.NoError(t, f.svc.DeleteInvoice(context.Background(), inv.ID))

	_, err = f.svc.GetInvoice(context.Background(), inv.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestCreateBulk(t *testing.T) {
	f := newInvoiceFixture()
	r1 := f.occupiedRoom("301", 2000000)
	f.occupiedRoom("302", 2200000)
	f.occupiedRoom("303", 2400000)
	f.rooms.add(&entity.Room{RoomNumber: "304", Price: 2000000, Status: enum.RoomStatusAvailable})

	// One room already invoiced for the period.
	_, err := f.svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		RoomID: r1.ID, Month: 3, Year: 2025,
	})
	require.NoError(t, err)

	result, err := f.svc.CreateBulk(context.Background(), &BulkCreateInput{Month: 3, Year: 2025})
	require.NoError(t, err)

	assert.Len(t, result.Created, 2)
	assert.Equal(t, 1, result.Skipped)
	for _, inv := range result.Created {
		assert.Equal(t, enum.InvoiceStatusUnpaid, inv.Status)
		assert.NotNil(t, inv.DueDate)
	}

	// Running again creates nothing more.
	result, err = f.svc.CreateBulk(context.Background(), &BulkCreateInput{Month: 3, Year: 2025})
	require.NoError(t, err)
	assert.Empty(t, result.Created)
	assert.Equal(t, 3, result.Skipped)
}

func TestListOverdueLevels(t *testing.T) {
	f := newInvoiceFixture()
	room := f.occupiedRoom("401", 1000000)

	mk := func(month int, daysOverdue int) {
		due := testNow.AddDate(0, 0, -daysOverdue)
		inv := &entity.Invoice{
			RoomID:      room.ID,
			Month:       month,
			Year:        2025,
			TotalAmount: 1000000,
			Status:      enum.InvoiceStatusUnpaid,
			DueDate:     &due,
		}
		require.NoError(t, f.invoices.Create(context.Background(), inv))
	}

	mk(1, 3)
	mk(2, 7)
	mk(3, 15)

	result, err := f.svc.ListOverdue(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 3)

	levels := make(map[enum.OverdueLevel]int)
	for _, o := range result {
		levels[o.Level]++
		assert.Positive(t, o.DaysOverdue)
	}
	assert.Equal(t, 1, levels[enum.OverdueLevelWarning])
	assert.Equal(t, 1, levels[enum.OverdueLevelDanger])
	assert.Equal(t, 1, levels[enum.OverdueLevelCritical])
}

func TestRoomsWithoutInvoice(t *testing.T) {
	f := newInvoiceFixture()
	r1 := f.occupiedRoom("501", 1000000)
	r2 := f.occupiedRoom("502", 1000000)

	_, err := f.svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		RoomID: r1.ID, Month: 3, Year: 2025,
	})
	require.NoError(t, err)

	rooms, err := f.svc.RoomsWithoutInvoice(context.Background(), 3, 2025)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, r2.ID, rooms[0].ID)

	// Omitting the period falls back to the current month.
	rooms, err = f.svc.RoomsWithoutInvoice(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, r2.ID, rooms[0].ID)
}

func TestInvoiceStatisticsPeriodOptional(t *testing.T) {
	f := newInvoiceFixture()
	room := f.occupiedRoom("601", 1000000)

	for _, month := range []int{3, 4} {
		_, err := f.svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
			RoomID: room.ID, Month: month, Year: 2025,
		})
		require.NoError(t, err)
	}

	// No period aggregates everything.
	stats, err := f.svc.Statistics(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(2000000), stats.TotalAmount)

	// Year alone narrows to that year.
	stats, err = f.svc.Statistics(context.Background(), 0, 2025)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)

	stats, err = f.svc.Statistics(context.Background(), 3, 2025)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)

	// Supplied values are still validated.
	_, err = f.svc.Statistics(context.Background(), 13, 2025)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}
