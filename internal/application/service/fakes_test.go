package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/domain/entity"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	"github.com/minhvu/roomledger-api/internal/domain/repository"
	"github.com/minhvu/roomledger-api/pkg/pagination"
	"gorm.io/gorm"
)

// In-memory fakes standing in for the GORM repositories. The invoice fake
// enforces the room/period uniqueness the real composite index provides.

type fakeTx struct{}

func (fakeTx) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRoomRepo struct {
	rooms    map[uuid.UUID]*entity.Room
	invoices *fakeInvoiceRepo
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[uuid.UUID]*entity.Room)}
}

func (r *fakeRoomRepo) add(room *entity.Room) *entity.Room {
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	r.rooms[room.ID] = room
	return room
}

func (r *fakeRoomRepo) Create(ctx context.Context, room *entity.Room) error {
	r.add(room)
	return nil
}

func (r *fakeRoomRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	return r.rooms[id], nil
}

func (r *fakeRoomRepo) GetByNumber(ctx context.Context, roomNumber string) (*entity.Room, error) {
	for _, room := range r.rooms {
		if room.RoomNumber == roomNumber {
			return room, nil
		}
	}
	return nil, nil
}

func (r *fakeRoomRepo) Update(ctx context.Context, room *entity.Room) error {
	r.rooms[room.ID] = room
	return nil
}

func (r *fakeRoomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.rooms, id)
	return nil
}

func (r *fakeRoomRepo) List(ctx context.Context, params *repository.RoomFilterParams) ([]entity.Room, int64, error) {
	var out []entity.Room
	for _, room := range r.rooms {
		out = append(out, *room)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRoomRepo) ListByStatus(ctx context.Context, status enum.RoomStatus) ([]entity.Room, error) {
	var out []entity.Room
	for _, room := range r.rooms {
		if room.Status == status {
			out = append(out, *room)
		}
	}
	return out, nil
}

func (r *fakeRoomRepo) ListWithoutInvoice(ctx context.Context, month, year int) ([]entity.Room, error) {
	var out []entity.Room
	for _, room := range r.rooms {
		if room.Status != enum.RoomStatusOccupied {
			continue
		}
		if r.invoices != nil && r.invoices.hasForPeriod(room.ID, month, year) {
			continue
		}
		out = append(out, *room)
	}
	return out, nil
}

func (r *fakeRoomRepo) Statistics(ctx context.Context) (*repository.RoomStats, error) {
	stats := &repository.RoomStats{}
	for _, room := range r.rooms {
		stats.Total++
		switch room.Status {
		case enum.RoomStatusOccupied:
			stats.Occupied++
		case enum.RoomStatusAvailable:
			stats.Available++
		case enum.RoomStatusMaintenance:
			stats.Maintenance++
		}
	}
	return stats, nil
}

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]*entity.Invoice
	payments *fakePaymentRepo
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[uuid.UUID]*entity.Invoice)}
}

func (r *fakeInvoiceRepo) hasForPeriod(roomID uuid.UUID, month, year int) bool {
	for _, inv := range r.invoices {
		if inv.RoomID == roomID && inv.Month == month && inv.Year == year {
			return true
		}
	}
	return false
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if r.hasForPeriod(invoice.RoomID, invoice.Month, invoice.Year) {
		return gorm.ErrDuplicatedKey
	}
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	if r.payments != nil {
		inv.Payments = r.payments.byInvoice(id)
	}
	return inv, nil
}

func (r *fakeInvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *fakeInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepo) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var out []entity.Invoice
	for _, inv := range r.invoices {
		if params.RoomID != nil && inv.RoomID != *params.RoomID {
			continue
		}
		if params.Status != nil && inv.Status != *params.Status {
			continue
		}
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

func (r *fakeInvoiceRepo) ExistsForPeriod(ctx context.Context, roomID uuid.UUID, month, year int) (bool, error) {
	return r.hasForPeriod(roomID, month, year), nil
}

func (r *fakeInvoiceRepo) ListOverdue(ctx context.Context, now time.Time) ([]entity.Invoice, error) {
	var out []entity.Invoice
	for _, inv := range r.invoices {
		if inv.Status == enum.InvoiceStatusPaid {
			continue
		}
		if inv.DueDate != nil && now.After(*inv.DueDate) {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Statistics(ctx context.Context, month, year int) (*repository.InvoiceStats, error) {
	stats := &repository.InvoiceStats{}
	for _, inv := range r.invoices {
		if month > 0 && inv.Month != month {
			continue
		}
		if year > 0 && inv.Year != year {
			continue
		}
		stats.Total++
		stats.TotalAmount += inv.TotalAmount
		switch inv.Status {
		case enum.InvoiceStatusUnpaid:
			stats.Unpaid++
		case enum.InvoiceStatusPartial:
			stats.Partial++
		case enum.InvoiceStatusPaid:
			stats.Paid++
		}
	}
	return stats, nil
}

type fakePaymentRepo struct {
	payments map[uuid.UUID]*entity.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]*entity.Payment)}
}

func (r *fakePaymentRepo) byInvoice(invoiceID uuid.UUID) []entity.Payment {
	var out []entity.Payment
	for _, p := range r.payments {
		if p.InvoiceID == invoiceID {
			out = append(out, *p)
		}
	}
	return out
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	return r.payments[id], nil
}

func (r *fakePaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.payments, id)
	return nil
}

func (r *fakePaymentRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	return r.byInvoice(invoiceID), nil
}

func (r *fakePaymentRepo) SumByInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	var sum int64
	for _, p := range r.payments {
		if p.InvoiceID == invoiceID {
			sum += p.Amount
		}
	}
	return sum, nil
}

func (r *fakePaymentRepo) DeleteByInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	for id, p := range r.payments {
		if p.InvoiceID == invoiceID {
			delete(r.payments, id)
		}
	}
	return nil
}

func (r *fakePaymentRepo) Statistics(ctx context.Context, month, year int) (*repository.PaymentStats, error) {
	stats := &repository.PaymentStats{ByMethod: make(map[string]repository.PaymentMethodStats)}
	for _, p := range r.payments {
		if month > 0 && int(p.PaymentDate.Month()) != month {
			continue
		}
		if year > 0 && p.PaymentDate.Year() != year {
			continue
		}
		stats.TotalPayments++
		stats.TotalAmount += p.Amount
		m := stats.ByMethod[string(p.Method)]
		m.Count++
		m.Amount += p.Amount
		stats.ByMethod[string(p.Method)] = m
	}
	return stats, nil
}

type fakeTenantRepo struct {
	tenants map[uuid.UUID]*entity.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: make(map[uuid.UUID]*entity.Tenant)}
}

func (r *fakeTenantRepo) Create(ctx context.Context, tenant *entity.Tenant) error {
	for _, t := range r.tenants {
		if t.IDNumber == tenant.IDNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	if tenant.ID == uuid.Nil {
		tenant.ID = uuid.New()
	}
	r.tenants[tenant.ID] = tenant
	return nil
}

func (r *fakeTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	return r.tenants[id], nil
}

func (r *fakeTenantRepo) Update(ctx context.Context, tenant *entity.Tenant) error {
	r.tenants[tenant.ID] = tenant
	return nil
}

func (r *fakeTenantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.tenants, id)
	return nil
}

func (r *fakeTenantRepo) List(ctx context.Context, params *repository.TenantFilterParams) ([]entity.Tenant, int64, error) {
	var out []entity.Tenant
	for _, t := range r.tenants {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *fakeTenantRepo) CountActiveByRoom(ctx context.Context, roomID uuid.UUID) (int64, error) {
	var count int64
	for _, t := range r.tenants {
		if t.RoomID == roomID && t.Status == enum.TenantStatusActive {
			count++
		}
	}
	return count, nil
}

func (r *fakeTenantRepo) Statistics(ctx context.Context) (*repository.TenantStats, error) {
	stats := &repository.TenantStats{}
	for _, t := range r.tenants {
		stats.Total++
		if t.Status == enum.TenantStatusActive {
			stats.Active++
		} else {
			stats.MovedOut++
		}
	}
	return stats, nil
}

var _ repository.Transactor = fakeTx{}
var _ repository.RoomRepository = (*fakeRoomRepo)(nil)
var _ repository.InvoiceRepository = (*fakeInvoiceRepo)(nil)
var _ repository.PaymentRepository = (*fakePaymentRepo)(nil)
var _ repository.TenantRepository = (*fakeTenantRepo)(nil)

// defaultParams keeps list calls in tests terse
func defaultParams() *pagination.PaginationParams {
	return &pagination.PaginationParams{Page: 1, PerPage: 15}
}
