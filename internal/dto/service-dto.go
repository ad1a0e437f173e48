package dto

import (
	"github.com/google/uuid"

	"yplanner/internal/entities"
)

type ServiceDTO struct {
	ID                uuid.UUID `json:"id"`
	BranchID          uuid.UUID `json:"branch_id"`
	YClientsServiceID int64     `json:"yclients_service_id"`
	Name              string    `json:"name"`
	DurationMinutes   int       `json:"duration_minutes"`
	IsMobile          bool      `json:"is_mobile"`
}

func ServiceToDTO(s entities.Service) ServiceDTO {
	return ServiceDTO{
		ID:                s.ID,
		BranchID:          s.BranchID,
		YClientsServiceID: s.YClientsServiceID,
		Name:              s.Name,
		DurationMinutes:   s.DurationMinutes,
		IsMobile:          s.IsMobile,
	}
}
