package entities

import (
	"time"

	"github.com/google/uuid"
)

// Классы сущностей, участвующие в синхронизации.
const (
	SyncTypeStaff    = "staff"
	SyncTypeServices = "services"
	SyncTypeBookings = "bookings"
)

const (
	SyncOutcomeSuccess = "success"
	SyncOutcomeError   = "error"
)

// SyncStatus — запись аудита: одна на класс сущностей на каждый вызов
// оркестратора, независимо от исхода. Только добавление, никогда
// не обновляется.
type SyncStatus struct {
	ID           uuid.UUID
	BranchID     uuid.UUID
	SyncType     string
	Status       string
	SyncedCount  int
	ErrorMessage *string
	CreatedAt    time.Time
}
