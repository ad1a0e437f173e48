package entities

import (
	"time"

	"github.com/google/uuid"

	"yplanner/pkg/types"
)

// Статусы записи. Выводятся из кода attendance yClients:
// -1 → cancelled, 1 → completed, всё остальное → booked.
const (
	BookingStatusBooked    = "booked"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Booking — запись клиента. В отличие от staff/services каждая
// синхронизация перезаписывает изменяемые поля (статус, время, связи):
// запись может быть отменена или перенесена на стороне yClients.
// Ссылки StaffID/ServiceID могут быть nil, пока соответствующая
// сущность ещё не синхронизирована — связь доозаполняется при
// следующем проходе (self-heal).
type Booking struct {
	ID               uuid.UUID
	BranchID         uuid.UUID
	YClientsRecordID int64
	StaffID          *uuid.UUID
	ServiceID        *uuid.UUID
	StartsAtUTC      time.Time
	EndsAtUTC        time.Time
	Status           string
	IsMobile         bool
	ClientName       *string
	ClientPhone      *string

	types.BaseEntity
}
