// Файл: internal/controllers/sync_controller.go
package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"yplanner/internal/dto"
	"yplanner/internal/services"
	apperrors "yplanner/pkg/errors"
)

type SyncController struct {
	syncService services.SyncServiceInterface
	logger      *zap.Logger
}

func NewSyncController(service services.SyncServiceInterface, logger *zap.Logger) *SyncController {
	return &SyncController{
		syncService: service,
		logger:      logger.Named("sync_controller"),
	}
}

// HandleSync запускает полную синхронизацию филиала (staff, services,
// bookings). Форма ответа — контракт виджета статуса: при успехе
// обработчика всегда 200 с покомпонентными исходами внутри; 4xx —
// только ошибки предусловий (филиал, company id, токены).
func (c *SyncController) HandleSync(ctx echo.Context) error {
	var payload dto.SyncRequestDTO

	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("Не удалось распознать тело запроса синхронизации", zap.Error(err))
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "branch_id is required"})
	}
	if err := ctx.Validate(&payload); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "branch_id is required"})
	}

	branchID, err := uuid.Parse(payload.BranchID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "branch_id must be a valid UUID"})
	}

	result, err := c.syncService.Run(ctx.Request().Context(), branchID)
	if err != nil {
		code := apperrors.HTTPStatus(err)
		if code == http.StatusInternalServerError {
			c.logger.Error("Синхронизация завершилась неожиданной ошибкой", zap.Error(err))
		}
		return ctx.JSON(code, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(http.StatusOK, result)
}
