package entities

import (
	"github.com/google/uuid"

	"yplanner/pkg/types"
)

// Branch — физическая точка (салон) арендатора. Все синхронизируемые
// сущности принадлежат ровно одному филиалу; филиал без company_id
// не синхронизируется никогда.
type Branch struct {
	ID                uuid.UUID
	Name              string
	YClientsCompanyID *int64

	types.BaseEntity
}
