package handlers

import (
	"errors"
	"net/http"

	"stockpulse/internal/models"

	"github.com/labstack/echo/v4"
)

// httpError maps engine errors onto HTTP status codes. ConcurrentModification
// maps to 409 so the caller knows to retry with a fresh read;
// LedgerUnavailable maps to 503 so the caller knows to retry with backoff.
func httpError(err error) error {
	switch {
	case errors.Is(err, models.ErrInvalidCount):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrItemNotFound),
		errors.Is(err, models.ErrAlertNotFound),
		errors.Is(err, models.ErrWarehouseNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrAlreadyResolved),
		errors.Is(err, models.ErrConcurrentModification):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrLedgerUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
