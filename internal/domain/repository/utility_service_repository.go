package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/domain/entity"
)

// UtilityServiceRepository defines the interface for the tariff catalog
type UtilityServiceRepository interface {
	Create(ctx context.Context, svc *entity.UtilityService) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.UtilityService, error)
	Update(ctx context.Context, svc *entity.UtilityService) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]entity.UtilityService, error)
}
