package handlers

import (
	"net/http"

	"stockpulse/internal/repositories"
	"stockpulse/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// InventoryHandlers handles item listing and cycle-count HTTP requests.
type InventoryHandlers struct {
	cycleCountService services.CycleCountService
	itemRepo          repositories.ItemRepository
}

func NewInventoryHandlers(cycleCountService services.CycleCountService, itemRepo repositories.ItemRepository) *InventoryHandlers {
	return &InventoryHandlers{
		cycleCountService: cycleCountService,
		itemRepo:          itemRepo,
	}
}

// ListItemsRequest represents query parameters for listing items.
type ListItemsRequest struct {
	WarehouseID string `query:"warehouse_id"`
}

// ListItems handles GET /items, optionally scoped to one warehouse.
func (h *InventoryHandlers) ListItems(c echo.Context) error {
	var req ListItemsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	var warehouseID *uuid.UUID
	if req.WarehouseID != "" {
		id, err := uuid.Parse(req.WarehouseID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid warehouse ID format")
		}
		warehouseID = &id
	}

	items, err := h.itemRepo.List(c.Request().Context(), warehouseID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": items,
	})
}

// CycleCountRequest represents the cycle count submission payload.
type CycleCountRequest struct {
	PhysicalCount int    `json:"physical_count"`
	Notes         string `json:"notes"`
}

// CycleCount handles POST /items/:id/cycle-count. On conflict the caller
// receives 409 and must retry with a fresh read of the item.
func (h *InventoryHandlers) CycleCount(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid item ID format")
	}

	var req CycleCountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	result, err := h.cycleCountService.Apply(c.Request().Context(), itemID, req.PhysicalCount, req.Notes)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, result)
}

// CycleCountHistoryRequest represents query parameters for the audit trail.
type CycleCountHistoryRequest struct {
	Limit int `query:"limit"`
}

// CycleCountHistory handles GET /items/:id/cycle-counts.
func (h *InventoryHandlers) CycleCountHistory(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid item ID format")
	}

	var req CycleCountHistoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	records, err := h.cycleCountService.History(c.Request().Context(), itemID, req.Limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"cycle_counts": records,
	})
}
