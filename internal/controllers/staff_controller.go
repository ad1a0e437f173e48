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

type StaffController struct {
	staffService services.StaffServiceInterface
	logger       *zap.Logger
}

func NewStaffController(service services.StaffServiceInterface, logger *zap.Logger) *StaffController {
	return &StaffController{
		staffService: service,
		logger:       logger.Named("staff_controller"),
	}
}

func (c *StaffController) GetStaff(ctx echo.Context) error {
	branchID, err := uuid.Parse(ctx.Param("branch_id"))
	if err != nil {
		apiErr := apperrors.NewHttpError(http.StatusBadRequest, "Некорректный branch_id", err, nil)
		return utils.ErrorResponse(ctx, apiErr, c.logger)
	}

	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.staffService.GetStaff(ctx.Request().Context(), branchID, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, list, "Список сотрудников", http.StatusOK, total)
}
