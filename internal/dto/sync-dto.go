package dto

import "github.com/aarondl/null/v8"

// SyncRequestDTO — тело запроса на запуск синхронизации филиала.
type SyncRequestDTO struct {
	BranchID string `json:"branch_id" validate:"required,uuid"`
}

// EntitySyncResultDTO — исход синхронизации одного класса сущностей.
type EntitySyncResultDTO struct {
	Count  int         `json:"count"`
	Status string      `json:"status"`
	Error  null.String `json:"error"`
}

// SyncDetailsDTO — по одному результату на класс.
type SyncDetailsDTO struct {
	Staff    *EntitySyncResultDTO `json:"staff"`
	Services *EntitySyncResultDTO `json:"services"`
	Bookings *EntitySyncResultDTO `json:"bookings"`
}

// SyncResultDTO — агрегированный ответ оркестратора. Форму потребляет
// виджет статуса дашборда: полностью проваленная синхронизация — это
// всё равно success:true с ошибками внутри details, а не ошибка HTTP.
type SyncResultDTO struct {
	Success  bool           `json:"success"`
	Staff    int            `json:"staff"`
	Services int            `json:"services"`
	Bookings int            `json:"bookings"`
	Details  SyncDetailsDTO `json:"details"`
}
