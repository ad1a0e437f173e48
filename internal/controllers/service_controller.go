package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"yplanner/internal/services"
	apperrors "yplanner/pkg/errors"
	"yplanner/pkg/utils"
)

type ServiceController struct {
	catalogService services.ServiceCatalogServiceInterface
	logger         *zap.Logger
}

func NewServiceController(service services.ServiceCatalogServiceInterface, logger *zap.Logger) *ServiceController {
	return &ServiceController{
		catalogService: service,
		logger:         logger.Named("service_controller"),
	}
}

func (c *ServiceController) GetServices(ctx echo.Context) error {
	branchID, err := uuid.Parse(ctx.Param("branch_id"))
	if err != nil {
		apiErr := apperrors.NewHttpError(http.StatusBadRequest, "Некорректный branch_id", err, nil)
		return utils.ErrorResponse(ctx, apiErr, c.logger)
	}

	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.catalogService.GetServices(ctx.Request().Context(), branchID, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, list, "Список услуг", http.StatusOK, total)
}
