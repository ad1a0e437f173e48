package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"yplanner/internal/dto"
	"yplanner/internal/repositories"
	"yplanner/pkg/types"
)

type BookingServiceInterface interface {
	GetBookings(ctx context.Context, branchID uuid.UUID, filter types.Filter, from, to *time.Time) ([]dto.BookingDTO, uint64, error)
}

// BookingService — read-only контракт над синхронизированными
// записями. Диапазон дат плюс filter[is_mobile]/filter[status] —
// то, чем пользуются построитель маршрутов и календарь дашборда.
type BookingService struct {
	bookingRepo repositories.BookingRepositoryInterface
}

func NewBookingService(bookingRepo repositories.BookingRepositoryInterface) BookingServiceInterface {
	return &BookingService{bookingRepo: bookingRepo}
}

func (s *BookingService) GetBookings(ctx context.Context, branchID uuid.UUID, filter types.Filter, from, to *time.Time) ([]dto.BookingDTO, uint64, error) {
	list, total, err := s.bookingRepo.GetBookings(ctx, branchID, filter, from, to)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]dto.BookingDTO, 0, len(list))
	for _, item := range list {
		dtos = append(dtos, dto.BookingToDTO(item))
	}
	return dtos, total, nil
}
