package handlers

import (
	"net/http"

	"stockpulse/internal/models"
	"stockpulse/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AlertHandlers handles stock alert HTTP requests.
type AlertHandlers struct {
	alertService services.AlertService
}

func NewAlertHandlers(alertService services.AlertService) *AlertHandlers {
	return &AlertHandlers{alertService: alertService}
}

// ListAlertsRequest represents query parameters for listing alerts.
type ListAlertsRequest struct {
	Type     string `query:"type"`
	Priority string `query:"priority"`
	Search   string `query:"search"`
	Status   string `query:"status"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}

var (
	validAlertTypes = map[models.AlertType]bool{
		models.AlertOutOfStock:   true,
		models.AlertLowStock:     true,
		models.AlertOverstock:    true,
		models.AlertExpiringSoon: true,
	}
	validPriorities = map[models.AlertPriority]bool{
		models.PriorityCritical: true,
		models.PriorityHigh:     true,
		models.PriorityMedium:   true,
		models.PriorityLow:      true,
	}
)

// ListAlerts handles GET /alerts. Results are ordered by priority, then
// newest first.
func (h *AlertHandlers) ListAlerts(c echo.Context) error {
	var req ListAlertsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if req.Limit <= 0 {
		req.Limit = 50
	}
	if req.Limit > 200 {
		req.Limit = 200
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	filter := &models.AlertSearchFilter{
		Query:  req.Search,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.Type != "" {
		alertType := models.AlertType(req.Type)
		if !validAlertTypes[alertType] {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid alert type")
		}
		filter.AlertType = &alertType
	}
	if req.Priority != "" {
		priority := models.AlertPriority(req.Priority)
		if !validPriorities[priority] {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid alert priority")
		}
		filter.Priority = &priority
	}
	if req.Status != "" {
		status := models.AlertStatus(req.Status)
		if status != models.AlertActive && status != models.AlertResolved {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid alert status")
		}
		filter.Status = &status
	}

	alerts, err := h.alertService.Search(c.Request().Context(), filter)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"limit":  req.Limit,
		"offset": req.Offset,
	})
}

// ResolveAlert handles POST /alerts/:id/resolve. Resolving an alert is an
// acknowledgment; the alert is recreated on the next reconciliation if the
// condition persists.
func (h *AlertHandlers) ResolveAlert(c echo.Context) error {
	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid alert ID format")
	}

	if err := h.alertService.ResolveManually(c.Request().Context(), alertID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "resolved",
	})
}
