package entities

import (
	"github.com/google/uuid"

	"yplanner/pkg/types"
)

type Staff struct {
	ID              uuid.UUID
	BranchID        uuid.UUID
	YClientsStaffID int64
	Name            string
	IsActive        bool

	types.BaseEntity
}
