package services

import (
	"context"

	"github.com/google/uuid"

	"yplanner/internal/dto"
	"yplanner/internal/repositories"
	"yplanner/pkg/types"
)

type ServiceCatalogServiceInterface interface {
	GetServices(ctx context.Context, branchID uuid.UUID, filter types.Filter) ([]dto.ServiceDTO, uint64, error)
}

type ServiceCatalogService struct {
	serviceRepo repositories.ServiceRepositoryInterface
}

func NewServiceCatalogService(serviceRepo repositories.ServiceRepositoryInterface) ServiceCatalogServiceInterface {
	return &ServiceCatalogService{serviceRepo: serviceRepo}
}

func (s *ServiceCatalogService) GetServices(ctx context.Context, branchID uuid.UUID, filter types.Filter) ([]dto.ServiceDTO, uint64, error) {
	list, total, err := s.serviceRepo.GetServiceList(ctx, branchID, filter)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]dto.ServiceDTO, 0, len(list))
	for _, item := range list {
		dtos = append(dtos, dto.ServiceToDTO(item))
	}
	return dtos, total, nil
}
