package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/domain/entity"
	"github.com/minhvu/roomledger-api/internal/domain/repository"
	"github.com/minhvu/roomledger-api/pkg/apperror"
)

// CatalogService manages the utility service tariff catalog. Catalog prices
// only pre-fill invoice forms; changing them never touches issued invoices.
type CatalogService struct {
	serviceRepo repository.UtilityServiceRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(serviceRepo repository.UtilityServiceRepository) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo}
}

// CreateServiceInput represents the create utility service input
type CreateServiceInput struct {
	Name        string
	Unit        string
	Price       int64
	Description string
}

// UpdateServiceInput represents the update utility service input. Nil
// fields keep their current value.
type UpdateServiceInput struct {
	Name        *string
	Unit        *string
	Price       *int64
	Description *string
	IsActive    *bool
}

// CreateService adds a tariff to the catalog
func (s *CatalogService) CreateService(ctx context.Context, input *CreateServiceInput) (*entity.UtilityService, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError("Service name is required")
	}
	if input.Price < 0 {
		return nil, apperror.NewValidationError("Price must not be negative")
	}

	svc := &entity.UtilityService{
		Name:        input.Name,
		Unit:        input.Unit,
		Price:       input.Price,
		Description: input.Description,
		IsActive:    true,
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// GetService retrieves a tariff by ID
func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*entity.UtilityService, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Utility service")
	}
	return svc, nil
}

// ListServices lists catalog tariffs, optionally only active ones
func (s *CatalogService) ListServices(ctx context.Context, activeOnly bool) ([]entity.UtilityService, error) {
	return s.serviceRepo.List(ctx, activeOnly)
}

// UpdateService edits a tariff
func (s *CatalogService) UpdateService(ctx context.Context, id uuid.UUID, input *UpdateServiceInput) (*entity.UtilityService, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Utility service")
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewValidationError("Service name is required")
		}
		svc.Name = *input.Name
	}
	if input.Unit != nil {
		svc.Unit = *input.Unit
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperror.NewValidationError("Price must not be negative")
		}
		svc.Price = *input.Price
	}
	if input.Description != nil {
		svc.Description = *input.Description
	}
	if input.IsActive != nil {
		svc.IsActive = *input.IsActive
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// DeleteService removes a tariff from the catalog
func (s *CatalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if svc == nil {
		return apperror.NewNotFoundError("Utility service")
	}
	return s.serviceRepo.Delete(ctx, id)
}
