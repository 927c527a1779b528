package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/domain/entity"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	"github.com/minhvu/roomledger-api/pkg/apperror"
	"github.com/minhvu/roomledger-api/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	svc      *PaymentService
	invoices *fakeInvoiceRepo
	payments *fakePaymentRepo
}

func newPaymentFixture() *paymentFixture {
	invoices := newFakeInvoiceRepo()
	payments := newFakePaymentRepo()
	invoices.payments = payments

	svc := NewPaymentService(payments, invoices, fakeTx{}, clock.Fixed(testNow))
	return &paymentFixture{svc: svc, invoices: invoices, payments: payments}
}

func (f *paymentFixture) unpaidInvoice(total int64) *entity.Invoice {
	inv := &entity.Invoice{
		RoomID:      uuid.New(),
		Month:       3,
		Year:        2025,
		TotalAmount: total,
		Status:      enum.InvoiceStatusUnpaid,
	}
	if err := f.invoices.Create(context.Background(), inv); err != nil {
		panic(err)
	}
	return inv
}

func TestRecordPaymentFull(t *testing.T) {
	f := newPaymentFixture()
	inv := f.unpaidInvoice(1000000)

	payment, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: inv.ID,
		Amount:    1000000,
		Method:    "bank_transfer",
	})
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentMethodBankTransfer, payment.Method)
	assert.Equal(t, testNow, payment.PaymentDate)

	got, err := f.invoices.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPaid, got.Status)
	require.NotNil(t, got.PaymentDate)
	assert.Equal(t, testNow, *got.PaymentDate)
}

func TestRecordPaymentPartial(t *testing.T) {
	f := newPaymentFixture()
	inv := f.unpaidInvoice(1000000)

	_, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: inv.ID,
		Amount:    400000,
	})
	require.NoError(t, err)

	got, err := f.invoices.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPartial, got.Status)
	assert.Nil(t, got.PaymentDate)

	// A second payment covering the rest settles the invoice.
	_, err = f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: inv.ID,
		Amount:    600000,
	})
	require.NoError(t, err)

	got, err = f.invoices.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPaid, got.Status)
}

func TestRecordPaymentRejectsOverpayment(t *testing.T) {
	f := newPaymentFixture()
	inv := f.unpaidInvoice(1000000)

	_, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: inv.ID,
		Amount:    700000,
	})
	require.NoError(t, err)

	_, err = f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: inv.ID,
		Amount:    400000,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, "Payment amount exceeds the remaining balance", apperror.GetAppError(err).Message)

	// The rejected payment left nothing behind.
	sum, err := f.payments.SumByInvoice(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(700000), sum)
}

func TestRecordPaymentValidation(t *testing.T) {
	f := newPaymentFixture()
	inv := f.unpaidInvoice(1000000)

	_, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: inv.ID, Amount: 0,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	_, err = f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: inv.ID, Amount: -500,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	_, err = f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: inv.ID, Amount: 100000, Method: "cheque",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	_, err = f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: uuid.New(), Amount: 100000,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestRecordPaymentDefaultsMethodAndDate(t *testing.T) {
	f := newPaymentFixture()
	inv := f.unpaidInvoice(1000000)

	when := time.Date(2025, 2, 27, 15, 0, 0, 0, time.UTC)
	payment, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID:   inv.ID,
		Amount:      100000,
		PaymentDate: &when,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentMethodCash, payment.Method)
	assert.Equal(t, when, payment.PaymentDate)
}

func TestUpdatePayment(t *testing.T) {
	f := newPaymentFixture()
	inv := f.unpaidInvoice(1000000)

	payment, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: inv.ID, Amount: 1000000,
	})
	require.NoError(t, err)

	t.Run("raising beyond the total is rejected", func(t *testing.T) {
		amount := int64(1200000)
		_, err := f.svc.UpdatePayment(context.Background(), payment.ID, &UpdatePaymentInput{Amount: &amount})
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("shrinking regresses the invoice to partial", func(t *testing.T) {
		amount := int64(600000)
		updated, err := f.svc.UpdatePayment(context.Background(), payment.ID, &UpdatePaymentInput{Amount: &amount})
		require.NoError(t, err)
		assert.Equal(t, int64(600000), updated.Amount)

		got, err := f.invoices.GetByID(context.Background(), inv.ID)
		require.NoError(t, err)
		assert.Equal(t, enum.InvoiceStatusPartial, got.Status)
		assert.Nil(t, got.PaymentDate)
	})

	t.Run("restoring the full amount settles the invoice again", func(t *testing.T) {
		amount := int64(1000000)
		_, err := f.svc.UpdatePayment(context.Background(), payment.ID, &UpdatePaymentInput{Amount: &amount})
		require.NoError(t, err)

		got, err := f.invoices.GetByID(context.Background(), inv.ID)
		require.NoError(t, err)
		assert.Equal(t, enum.InvoiceStatusPaid, got.Status)
		assert.NotNil(t, got.PaymentDate)
	})
}

func TestRemovePayment(t *testing.T) {
	f := newPaymentFixture()
	inv := f.unpaidInvoice(1000000)

	p1, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{InvoiceID: inv.ID, Amount: 400000})
	require.NoError(t, err)
	p2, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{InvoiceID: inv.ID, Amount: 600000})
	require.NoError(t, err)

	got, err := f.invoices.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	require.Equal(t, enum.InvoiceStatusPaid, got.Status)

	require.NoError(t, f.svc.RemovePayment(context.Background(), p2.ID))
	got, err = f.invoices.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPartial, got.Status)
	assert.Nil(t, got.PaymentDate)

	require.NoError(t, f.svc.RemovePayment(context.Background(), p1.ID))
	got, err = f.invoices.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusUnpaid, got.Status)

	err = f.svc.RemovePayment(context.Background(), p1.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestPaymentStatisticsPeriodOptional(t *testing.T) {
	f := newPaymentFixture()
	inv := f.unpaidInvoice(1000000)

	feb := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	_, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: inv.ID, Amount: 300000, PaymentDate: &feb,
	})
	require.NoError(t, err)
	_, err = f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: inv.ID, Amount: 200000, PaymentDate: &mar,
	})
	require.NoError(t, err)

	// No period aggregates everything.
	stats, err := f.svc.Statistics(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalPayments)
	assert.Equal(t, int64(500000), stats.TotalAmount)

	stats, err = f.svc.Statistics(context.Background(), 3, 2025)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalPayments)
	assert.Equal(t, int64(200000), stats.TotalAmount)

	// Supplied values are still validated.
	_, err = f.svc.Statistics(context.Background(), 13, 2025)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestListPayments(t *testing.T) {
	f := newPaymentFixture()
	inv := f.unpaidInvoice(1000000)

	_, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{InvoiceID: inv.ID, Amount: 300000})
	require.NoError(t, err)
	_, err = f.svc.RecordPayment(context.Background(), &RecordPaymentInput{InvoiceID: inv.ID, Amount: 200000})
	require.NoError(t, err)

	payments, err := f.svc.ListPayments(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)

	_, err = f.svc.ListPayments(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}
