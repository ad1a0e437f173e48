package controllers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"yplanner/internal/services"
	apperrors "yplanner/pkg/errors"
	"yplanner/pkg/utils"
)

type SyncStatusController struct {
	statusService services.SyncStatusServiceInterface
	logger        *zap.Logger
}

func NewSyncStatusController(service services.SyncStatusServiceInterface, logger *zap.Logger) *SyncStatusController {
	return &SyncStatusController{
		statusService: service,
		logger:        logger.Named("sync_status_controller"),
	}
}

func (c *SyncStatusController) GetStatus(ctx echo.Context) error {
	branchID, err := uuid.Parse(ctx.Param("branch_id"))
	if err != nil {
		apiErr := apperrors.NewHttpError(http.StatusBadRequest, "Некорректный branch_id", err, nil)
		return utils.ErrorResponse(ctx, apiErr, c.logger)
	}

	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))

	page, err := c.statusService.GetStatusPage(ctx.Request().Context(), branchID, limit)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, page, "Статус синхронизации", http.StatusOK)
}
