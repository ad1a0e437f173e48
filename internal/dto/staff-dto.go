package dto

import (
	"github.com/google/uuid"

	"yplanner/internal/entities"
)

type StaffDTO struct {
	ID              uuid.UUID `json:"id"`
	BranchID        uuid.UUID `json:"branch_id"`
	YClientsStaffID int64     `json:"yclients_staff_id"`
	Name            string    `json:"name"`
	IsActive        bool      `json:"is_active"`
}

func StaffToDTO(s entities.Staff) StaffDTO {
	return StaffDTO{
		ID:              s.ID,
		BranchID:        s.BranchID,
		YClientsStaffID: s.YClientsStaffID,
		Name:            s.Name,
		IsActive:        s.IsActive,
	}
}
