// Файл: internal/services/sync_status_service.go
package services

import (
	"context"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"yplanner/internal/dto"
	"yplanner/internal/repositories"
)

const defaultHistoryLimit = 9

type SyncStatusServiceInterface interface {
	GetStatusPage(ctx context.Context, branchID uuid.UUID, limit int) (*dto.SyncStatusPageDTO, error)
}

// SyncStatusService отдаёт состояние синхронизации для виджета
// дашборда: последний агрегированный результат из Redis-кэша (если
// он ещё жив) и недавнюю историю аудита из БД.
type SyncStatusService struct {
	statusRepo  repositories.SyncStatusRepositoryInterface
	resultCache repositories.SyncResultCacheInterface
	logger      *zap.Logger
}

func NewSyncStatusService(
	statusRepo repositories.SyncStatusRepositoryInterface,
	resultCache repositories.SyncResultCacheInterface,
	logger *zap.Logger,
) SyncStatusServiceInterface {
	return &SyncStatusService{
		statusRepo:  statusRepo,
		resultCache: resultCache,
		logger:      logger.Named("sync_status_service"),
	}
}

func (s *SyncStatusService) GetStatusPage(ctx context.Context, branchID uuid.UUID, limit int) (*dto.SyncStatusPageDTO, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	entries, err := s.statusRepo.GetRecent(ctx, branchID, limit)
	if err != nil {
		return nil, err
	}

	page := &dto.SyncStatusPageDTO{History: make([]dto.SyncStatusDTO, 0, len(entries))}
	for _, e := range entries {
		page.History = append(page.History, dto.SyncStatusDTO{
			ID:           e.ID,
			SyncType:     e.SyncType,
			Status:       e.Status,
			SyncedCount:  e.SyncedCount,
			ErrorMessage: null.StringFromPtr(e.ErrorMessage),
			CreatedAt:    e.CreatedAt,
		})
	}

	if s.resultCache != nil {
		var last dto.SyncResultDTO
		found, err := s.resultCache.GetResult(ctx, branchID, &last)
		if err != nil {
			// Кэш недоступен — виджет обойдётся историей из БД.
			s.logger.Warn("Не удалось прочитать кэш результата синхронизации", zap.Error(err))
		} else if found {
			page.LastResult = &last
		}
	}

	return page, nil
}
