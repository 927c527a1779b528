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

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *gorm.DB) domainRepo.RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	return conn(ctx, r.db).Create(room).Error
}

func (r *roomRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	var room entity.Room
	err := conn(ctx, r.db).First(&room, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) GetByNumber(ctx context.Context, roomNumber string) (*entity.Room, error) {
	var room entity.Room
	err := conn(ctx, r.db).First(&room, "room_number = ?", roomNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) Update(ctx context.Context, room *entity.Room) error {
	return conn(ctx, r.db).Save(room).Error
}

func (r *roomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Room{}, "id = ?", id).Error
}

func (r *roomRepository) List(ctx context.Context, params *domainRepo.RoomFilterParams) ([]entity.Room, int64, error) {
	var rooms []entity.Room
	var total int64

	query := conn(ctx, r.db).Model(&entity.Room{})

	if params.Search != "" {
		query = query.Where("room_number ILIKE ? OR description ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("room_number ASC").
		Find(&rooms).Error

	return rooms, total, err
}

func (r *roomRepository) ListByStatus(ctx context.Context, status enum.RoomStatus) ([]entity.Room, error) {
	var rooms []entity.Room
	err := conn(ctx, r.db).
		Where("status = ?", status).
		Order("room_number ASC").
		Find(&rooms).Error
	return rooms, err
}

func (r *roomRepository) ListWithoutInvoice(ctx context.Context, month, year int) ([]entity.Room, error) {
	var rooms []entity.Room
	db := conn(ctx, r.db)
	sub := db.Session(&gorm.Session{NewDB: true}).Model(&entity.Invoice{}).
		Select("room_id").
		Where("month = ? AND year = ?", month, year)
	err := db.
		Where("status = ?", enum.RoomStatusOccupied).
		Where("id NOT IN (?)", sub).
		Order("room_number ASC").
		Find(&rooms).Error
	return rooms, err
}

func (r *roomRepository) Statistics(ctx context.Context) (*domainRepo.RoomStats, error) {
	type row struct {
		Status enum.RoomStatus
		Count  int64
	}
	var rows []row
	if err := conn(ctx, r.db).Model(&entity.Room{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := &domainRepo.RoomStats{}
	for _, rw := range rows {
		stats.Total += rw.Count
		switch rw.Status {
		case enum.RoomStatusOccupied:
			stats.Occupied = rw.Count
		case enum.RoomStatusAvailable:
			stats.Available = rw.Count
		case enum.RoomStatusMaintenance:
			stats.Maintenance = rw.Count
		}
	}
	if stats.Total > 0 {
		stats.OccupancyRate = float64(stats.Occupied) / float64(stats.Total) * 100
	}
	return stats, nil
}
