package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/domain/entity"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	"github.com/minhvu/roomledger-api/internal/domain/repository"
	"github.com/minhvu/roomledger-api/pkg/apperror"
	"github.com/minhvu/roomledger-api/pkg/clock"
	"github.com/minhvu/roomledger-api/pkg/pagination"
	"gorm.io/gorm"
)

// TenantService handles tenant-related operations, keeping the room status
// in lockstep: moving a tenant in marks the room occupied, the last tenant
// moving out frees it again.
type TenantService struct {
	tenantRepo repository.TenantRepository
	roomRepo   repository.RoomRepository
	tx         repository.Transactor
	clock      clock.Clock
}

// NewTenantService creates a new tenant service
func NewTenantService(
	tenantRepo repository.TenantRepository,
	roomRepo repository.RoomRepository,
	tx repository.Transactor,
	clk clock.Clock,
) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		roomRepo:   roomRepo,
		tx:         tx,
		clock:      clk,
	}
}

// CreateTenantInput represents the create tenant input
type CreateTenantInput struct {
	RoomID       uuid.UUID
	FullName     string
	IDNumber     string
	Phone        string
	Email        string
	DateOfBirth  *time.Time
	Hometown     string
	MoveInDate   *time.Time
	Deposit      int64
	IsMainTenant *bool
	Notes        string
}

// UpdateTenantInput represents the update tenant input. Nil fields keep
// their current value.
type UpdateTenantInput struct {
	FullName     *string
	Phone        *string
	Email        *string
	DateOfBirth  *time.Time
	Hometown     *string
	Deposit      *int64
	IsMainTenant *bool
	Notes        *string
}

// CreateTenant moves a tenant into a room. The room must not be under
// maintenance; an available room becomes occupied.
func (s *TenantService) CreateTenant(ctx context.Context, input *CreateTenantInput) (*entity.Tenant, error) {
	var fieldErrors []apperror.FieldError
	if input.FullName == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "full_name", Message: "is required"})
	}
	if input.IDNumber == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "id_number", Message: "is required"})
	}
	if input.Phone == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "phone", Message: "is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewFieldValidationError(fieldErrors)
	}

	tenant := &entity.Tenant{
		RoomID:       input.RoomID,
		FullName:     input.FullName,
		IDNumber:     input.IDNumber,
		Phone:        input.Phone,
		Email:        input.Email,
		DateOfBirth:  input.DateOfBirth,
		Hometown:     input.Hometown,
		Deposit:      input.Deposit,
		IsMainTenant: true,
		Status:       enum.TenantStatusActive,
		Notes:        input.Notes,
	}
	if input.IsMainTenant != nil {
		tenant.IsMainTenant = *input.IsMainTenant
	}
	if input.MoveInDate != nil {
		tenant.MoveInDate = *input.MoveInDate
	} else {
		tenant.MoveInDate = s.clock.Now()
	}

	err := s.tx.Transact(ctx, func(ctx context.Context) error {
		room, err := s.roomRepo.GetByID(ctx, input.RoomID)
		if err != nil {
			return err
		}
		if room == nil {
			return apperror.NewNotFoundError("Room")
		}
		if room.Status == enum.RoomStatusMaintenance {
			return apperror.NewStateConflictError("Room is under maintenance")
		}

		if err := s.tenantRepo.Create(ctx, tenant); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.NewDuplicateError("A tenant with this ID number already exists")
			}
			return err
		}

		if room.Status != enum.RoomStatusOccupied {
			room.Status = enum.RoomStatusOccupied
			if err := s.roomRepo.Update(ctx, room); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.tenantRepo.GetByID(ctx, tenant.ID)
}

// GetTenant retrieves a tenant by ID
func (s *TenantService) GetTenant(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.NewNotFoundError("Tenant")
	}
	return tenant, nil
}

// ListTenants lists tenants with filtering
func (s *TenantService) ListTenants(ctx context.Context, params *repository.TenantFilterParams) (*pagination.PaginatedResult[entity.Tenant], error) {
	tenants, total, err := s.tenantRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(tenants, pag), nil
}

// UpdateTenant edits a tenant's contact and contract details
func (s *TenantService) UpdateTenant(ctx context.Context, id uuid.UUID, input *UpdateTenantInput) (*entity.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.NewNotFoundError("Tenant")
	}

	if input.FullName != nil {
		tenant.FullName = *input.FullName
	}
	if input.Phone != nil {
		tenant.Phone = *input.Phone
	}
	if input.Email != nil {
		tenant.Email = *input.Email
	}
	if input.DateOfBirth != nil {
		tenant.DateOfBirth = input.DateOfBirth
	}
	if input.Hometown != nil {
		tenant.Hometown = *input.Hometown
	}
	if input.Deposit != nil {
		tenant.Deposit = *input.Deposit
	}
	if input.IsMainTenant != nil {
		tenant.IsMainTenant = *input.IsMainTenant
	}
	if input.Notes != nil {
		tenant.Notes = *input.Notes
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

// Checkout moves a tenant out. When the last active tenant of the room
// leaves, the room becomes available again.
func (s *TenantService) Checkout(ctx context.Context, id uuid.UUID, moveOutDate *time.Time) (*entity.Tenant, error) {
	var tenant *entity.Tenant

	err := s.tx.Transact(ctx, func(ctx context.Context) error {
		var err error
		tenant, err = s.tenantRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if tenant == nil {
			return apperror.NewNotFoundError("Tenant")
		}
		if tenant.Status == enum.TenantStatusMovedOut {
			return apperror.NewStateConflictError("Tenant has already moved out")
		}

		out := s.clock.Now()
		if moveOutDate != nil {
			out = *moveOutDate
		}
		tenant.Status = enum.TenantStatusMovedOut
		tenant.MoveOutDate = &out

		if err := s.tenantRepo.Update(ctx, tenant); err != nil {
			return err
		}

		remaining, err := s.tenantRepo.CountActiveByRoom(ctx, tenant.RoomID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			room, err := s.roomRepo.GetByID(ctx, tenant.RoomID)
			if err != nil {
				return err
			}
			if room != nil && room.Status == enum.RoomStatusOccupied {
				room.Status = enum.RoomStatusAvailable
				if err := s.roomRepo.Update(ctx, room); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tenant, nil
}

// DeleteTenant removes a tenant record entirely. Active tenants must be
// checked out first.
func (s *TenantService) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tenant == nil {
		return apperror.NewNotFoundError("Tenant")
	}
	if tenant.Status == enum.TenantStatusActive {
		return apperror.NewStateConflictError("Check the tenant out before deleting the record")
	}
	return s.tenantRepo.Delete(ctx, id)
}

// Statistics aggregates tenant counts per status
func (s *TenantService) Statistics(ctx context.Context) (*repository.TenantStats, error) {
	return s.tenantRepo.Statistics(ctx)
}
