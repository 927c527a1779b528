package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/domain/entity"
	domainRepo "github.com/minhvu/roomledger-api/internal/domain/repository"
	"gorm.io/gorm"
)

type utilityServiceRepository struct {
	db *gorm.DB
}

// NewUtilityServiceRepository creates a new utility service repository
func NewUtilityServiceRepository(db *gorm.DB) domainRepo.UtilityServiceRepository {
	return &utilityServiceRepository{db: db}
}

func (r *utilityServiceRepository) Create(ctx context.Context, svc *entity.UtilityService) error {
	return conn(ctx, r.db).Create(svc).Error
}

func (r *utilityServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.UtilityService, error) {
	var svc entity.UtilityService
	err := conn(ctx, r.db).First(&svc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &svc, nil
}

func (r *utilityServiceRepository) Update(ctx context.Context, svc *entity.UtilityService) error {
	return conn(ctx, r.db).Save(svc).Error
}

func (r *utilityServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.UtilityService{}, "id = ?", id).Error
}

func (r *utilityServiceRepository) List(ctx context.Context, activeOnly bool) ([]entity.UtilityService, error) {
	var services []entity.UtilityService
	query := conn(ctx, r.db)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("name ASC").Find(&services).Error
	return services, err
}
