package handlers

import (
	"net/http"

	"stockpulse/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// StatsHandlers handles aggregation report HTTP requests.
type StatsHandlers struct {
	statsService services.StatsService
}

func NewStatsHandlers(statsService services.StatsService) *StatsHandlers {
	return &StatsHandlers{statsService: statsService}
}

// GetStats handles GET /stats, optionally scoped to one warehouse.
func (h *StatsHandlers) GetStats(c echo.Context) error {
	var warehouseID *uuid.UUID
	if raw := c.QueryParam("warehouse_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid warehouse ID format")
		}
		warehouseID = &id
	}

	report, err := h.statsService.Report(c.Request().Context(), warehouseID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, report)
}
