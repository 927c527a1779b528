package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/domain/entity"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	"github.com/minhvu/roomledger-api/internal/domain/repository"
	"github.com/minhvu/roomledger-api/pkg/apperror"
	"github.com/minhvu/roomledger-api/pkg/pagination"
	"gorm.io/gorm"
)

// RoomService handles room-related operations
type RoomService struct {
	roomRepo    repository.RoomRepository
	tenantRepo  repository.TenantRepository
	invoiceRepo repository.InvoiceRepository
}

// NewRoomService creates a new room service
func NewRoomService(
	roomRepo repository.RoomRepository,
	tenantRepo repository.TenantRepository,
	invoiceRepo repository.InvoiceRepository,
) *RoomService {
	return &RoomService{
		roomRepo:    roomRepo,
		tenantRepo:  tenantRepo,
		invoiceRepo: invoiceRepo,
	}
}

// CreateRoomInput represents the create room input
type CreateRoomInput struct {
	RoomNumber  string
	Floor       int
	Area        float64
	Price       int64
	Deposit     int64
	Status      string
	Description string
}

// UpdateRoomInput represents the update room input. Nil fields keep their
// current value.
type UpdateRoomInput struct {
	RoomNumber  *string
	Floor       *int
	Area        *float64
	Price       *int64
	Deposit     *int64
	Status      *string
	Description *string
}

// CreateRoom creates a new room with a unique room number
func (s *RoomService) CreateRoom(ctx context.Context, input *CreateRoomInput) (*entity.Room, error) {
	if input.RoomNumber == "" {
		return nil, apperror.NewValidationError("Room number is required")
	}
	if input.Price < 0 || input.Deposit < 0 {
		return nil, apperror.NewValidationError("Price and deposit must not be negative")
	}

	status := enum.RoomStatusAvailable
	if input.Status != "" {
		status = enum.RoomStatus(input.Status)
		if !status.IsValid() {
			return nil, apperror.NewValidationError("Unknown room status: " + input.Status)
		}
	}

	existing, err := s.roomRepo.GetByNumber(ctx, input.RoomNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewDuplicateError(fmt.Sprintf("Room %s already exists", input.RoomNumber))
	}

	room := &entity.Room{
		RoomNumber:  input.RoomNumber,
		Floor:       input.Floor,
		Area:        input.Area,
		Price:       input.Price,
		Deposit:     input.Deposit,
		Status:      status,
		Description: input.Description,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.NewDuplicateError(fmt.Sprintf("Room %s already exists", input.RoomNumber))
		}
		return nil, err
	}

	return room, nil
}

// GetRoom retrieves a room by ID
func (s *RoomService) GetRoom(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, apperror.NewNotFoundError("Room")
	}
	return room, nil
}

// ListRooms lists rooms with filtering
func (s *RoomService) ListRooms(ctx context.Context, params *repository.RoomFilterParams) (*pagination.PaginatedResult[entity.Room], error) {
	rooms, total, err := s.roomRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(rooms, pag), nil
}

// UpdateRoom edits a room. Changing the price never touches already issued
// invoices; their room charge was snapshotted at creation.
func (s *RoomService) UpdateRoom(ctx context.Context, id uuid.UUID, input *UpdateRoomInput) (*entity.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, apperror.NewNotFoundError("Room")
	}

	if input.RoomNumber != nil && *input.RoomNumber != room.RoomNumber {
		existing, err := s.roomRepo.GetByNumber(ctx, *input.RoomNumber)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewDuplicateError(fmt.Sprintf("Room %s already exists", *input.RoomNumber))
		}
		room.RoomNumber = *input.RoomNumber
	}
	if input.Floor != nil {
		room.Floor = *input.Floor
	}
	if input.Area != nil {
		room.Area = *input.Area
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperror.NewValidationError("Price must not be negative")
		}
		room.Price = *input.Price
	}
	if input.Deposit != nil {
		if *input.Deposit < 0 {
			return nil, apperror.NewValidationError("Deposit must not be negative")
		}
		room.Deposit = *input.Deposit
	}
	if input.Status != nil {
		status := enum.RoomStatus(*input.Status)
		if !status.IsValid() {
			return nil, apperror.NewValidationError("Unknown room status: " + *input.Status)
		}
		room.Status = status
	}
	if input.Description != nil {
		room.Description = *input.Description
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.NewDuplicateError(fmt.Sprintf("Room %s already exists", room.RoomNumber))
		}
		return nil, err
	}

	return room, nil
}

// DeleteRoom removes a room. Rooms with active tenants or any invoices
// cannot be deleted.
func (s *RoomService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if room == nil {
		return apperror.NewNotFoundError("Room")
	}

	activeTenants, err := s.tenantRepo.CountActiveByRoom(ctx, id)
	if err != nil {
		return err
	}
	if activeTenants > 0 {
		return apperror.NewStateConflictError("Cannot delete a room with active tenants")
	}

	roomID := id
	invoices, _, err := s.invoiceRepo.List(ctx, &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 1},
		RoomID:     &roomID,
	})
	if err != nil {
		return err
	}
	if len(invoices) > 0 {
		return apperror.NewStateConflictError("Cannot delete a room with invoices")
	}

	return s.roomRepo.Delete(ctx, id)
}

// Statistics aggregates room counts and the occupancy rate
func (s *RoomService) Statistics(ctx context.Context) (*repository.RoomStats, error) {
	return s.roomRepo.Statistics(ctx)
}
