package entities

import (
	"github.com/google/uuid"

	"yplanner/pkg/types"
)

type Service struct {
	ID                uuid.UUID
	BranchID          uuid.UUID
	YClientsServiceID int64
	Name              string
	DurationMinutes   int
	IsMobile          bool

	types.BaseEntity
}
