package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"yplanner/internal/services"
	apperrors "yplanner/pkg/errors"
	"yplanner/pkg/utils"
)

type BookingController struct {
	bookingService services.BookingServiceInterface
	logger         *zap.Logger
}

func NewBookingController(service services.BookingServiceInterface, logger *zap.Logger) *BookingController {
	return &BookingController{
		bookingService: service,
		logger:         logger.Named("booking_controller"),
	}
}

// GetBookings — листинг записей филиала. Помимо общей грамматики
// filter[...]/sort[...] принимает границы диапазона from/to
// (RFC3339 либо YYYY-MM-DD).
func (c *BookingController) GetBookings(ctx echo.Context) error {
	branchID, err := uuid.Parse(ctx.Param("branch_id"))
	if err != nil {
		apiErr := apperrors.NewHttpError(http.StatusBadRequest, "Некорректный branch_id", err, nil)
		return utils.ErrorResponse(ctx, apiErr, c.logger)
	}

	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	from, err := parseDateParam(ctx.QueryParam("from"))
	if err != nil {
		apiErr := apperrors.NewHttpError(http.StatusBadRequest, "Некорректный параметр from", err, nil)
		return utils.ErrorResponse(ctx, apiErr, c.logger)
	}
	to, err := parseDateParam(ctx.QueryParam("to"))
	if err != nil {
		apiErr := apperrors.NewHttpError(http.StatusBadRequest, "Некорректный параметр to", err, nil)
		return utils.ErrorResponse(ctx, apiErr, c.logger)
	}

	list, total, err := c.bookingService.GetBookings(ctx.Request().Context(), branchID, filter, from, to)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, list, "Список записей", http.StatusOK, total)
}

func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("неверный формат даты: %q", value)
}
