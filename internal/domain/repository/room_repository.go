package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/domain/entity"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	"github.com/minhvu/roomledger-api/pkg/pagination"
)

// RoomRepository defines the interface for room data operations
type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	GetByNumber(ctx context.Context, roomNumber string) (*entity.Room, error)
	Update(ctx context.Context, room *entity.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *RoomFilterParams) ([]entity.Room, int64, error)
	ListByStatus(ctx context.Context, status enum.RoomStatus) ([]entity.Room, error)
	// ListWithoutInvoice returns occupied rooms that have no invoice yet for
	// the given billing period.
	ListWithoutInvoice(ctx context.Context, month, year int) ([]entity.Room, error)
	Statistics(ctx context.Context) (*RoomStats, error)
}

// RoomFilterParams contains filtering parameters for room queries
type RoomFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.RoomStatus
}

// RoomStats aggregates room counts per status
type RoomStats struct {
	Total         int64   `json:"total"`
	Occupied      int64   `json:"occupied"`
	Available     int64   `json:"available"`
	Maintenance   int64   `json:"maintenance"`
	OccupancyRate float64 `json:"occupancy_rate"`
}
