package entities

import (
	"github.com/google/uuid"

	"yplanner/pkg/types"
)

// IntegrationSettings — пара секретов yClients для филиала.
// Partner Token достаточен для staff/services; для записей API требует
// ещё и User Token. Создаются и обновляются через UI настроек,
// движок синхронизации их только читает.
type IntegrationSettings struct {
	ID           uuid.UUID
	BranchID     uuid.UUID
	PartnerToken *string
	UserToken    *string

	types.BaseEntity
}
