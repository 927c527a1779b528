package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/domain/entity"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	domainRepo "github.com/minhvu/roomledger-api/internal/domain/repository"
	"gorm.io/gorm"
)

type tenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *gorm.DB) domainRepo.TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) Create(ctx context.Context, tenant *entity.Tenant) error {
	return conn(ctx, r.db).Create(tenant).Error
}

func (r *tenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	var tenant entity.Tenant
	err := conn(ctx, r.db).Preload("Room").First(&tenant, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tenant, nil
}

func (r *tenantRepository) Update(ctx context.Context, tenant *entity.Tenant) error {
	return conn(ctx, r.db).Save(tenant).Error
}

func (r *tenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Tenant{}, "id = ?", id).Error
}

func (r *tenantRepository) List(ctx context.Context, params *domainRepo.TenantFilterParams) ([]entity.Tenant, int64, error) {
	var tenants []entity.Tenant
	var total int64

	query := conn(ctx, r.db).Model(&entity.Tenant{})

	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("full_name ILIKE ? OR id_number ILIKE ? OR phone ILIKE ?", like, like, like)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.RoomID != nil {
		query = query.Where("room_id = ?", *params.RoomID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Room").
		Order("created_at DESC").
		Find(&tenants).Error

	return tenants, total, err
}

func (r *tenantRepository) CountActiveByRoom(ctx context.Context, roomID uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.Tenant{}).
		Where("room_id = ? AND status = ?", roomID, enum.TenantStatusActive).
		Count(&count).Error
	return count, err
}

func (r *tenantRepository) Statistics(ctx context.Context) (*domainRepo.TenantStats, error) {
	type row struct {
		Status enum.TenantStatus
		Count  int64
	}
	var rows []row
	if err := conn(ctx, r.db).Model(&entity.Tenant{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := &domainRepo.TenantStats{}
	for _, rw := range rows {
		stats.Total += rw.Count
		switch rw.Status {
		case enum.TenantStatusActive:
			stats.Active = rw.Count
		case enum.TenantStatusMovedOut:
			stats.MovedOut = rw.Count
		}
	}
	return stats, nil
}
