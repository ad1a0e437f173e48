package services

import (
	"context"

	"github.com/google/uuid"

	"yplanner/internal/dto"
	"yplanner/internal/repositories"
	"yplanner/pkg/types"
)

type StaffServiceInterface interface {
	GetStaff(ctx context.Context, branchID uuid.UUID, filter types.Filter) ([]dto.StaffDTO, uint64, error)
}

// StaffService — read-only контракт над синхронизированными
// сотрудниками для дашборда. Записи сюда пишет только реконсилер.
type StaffService struct {
	staffRepo repositories.StaffRepositoryInterface
}

func NewStaffService(staffRepo repositories.StaffRepositoryInterface) StaffServiceInterface {
	return &StaffService{staffRepo: staffRepo}
}

func (s *StaffService) GetStaff(ctx context.Context, branchID uuid.UUID, filter types.Filter) ([]dto.StaffDTO, uint64, error) {
	list, total, err := s.staffRepo.GetStaffList(ctx, branchID, filter)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]dto.StaffDTO, 0, len(list))
	for _, item := range list {
		dtos = append(dtos, dto.StaffToDTO(item))
	}
	return dtos, total, nil
}
