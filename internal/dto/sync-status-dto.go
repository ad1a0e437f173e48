package dto

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type SyncStatusDTO struct {
	ID           uuid.UUID   `json:"id"`
	SyncType     string      `json:"sync_type"`
	Status       string      `json:"status"`
	SyncedCount  int         `json:"synced_count"`
	ErrorMessage null.String `json:"error_message"`
	CreatedAt    time.Time   `json:"created_at"`
}

// SyncStatusPageDTO — ответ виджета статуса: последний агрегированный
// результат (из кэша, если есть) плюс недавняя история аудита.
type SyncStatusPageDTO struct {
	LastResult *SyncResultDTO  `json:"last_result"`
	History    []SyncStatusDTO `json:"history"`
}
