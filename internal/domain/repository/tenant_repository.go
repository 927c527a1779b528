package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/domain/entity"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	"github.com/minhvu/roomledger-api/pkg/pagination"
)

// TenantRepository defines the interface for tenant data operations
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error)
	Update(ctx context.Context, tenant *entity.Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *TenantFilterParams) ([]entity.Tenant, int64, error)
	CountActiveByRoom(ctx context.Context, roomID uuid.UUID) (int64, error)
	Statistics(ctx context.Context) (*TenantStats, error)
}

// TenantFilterParams contains filtering parameters for tenant queries
type TenantFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.TenantStatus
	RoomID     *uuid.UUID
}

// TenantStats aggregates tenant counts per status
type TenantStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	MovedOut int64 `json:"moved_out"`
}
