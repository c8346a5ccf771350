package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockMetrics are the rollup figures computed over a set of items. Low/out
// of stock counts are recomputed from the classifier predicates at query
// time, never read back from alert records.
type StockMetrics struct {
	TotalItems        int             `json:"total_items"`
	TotalAvailable    int             `json:"total_available"`
	TotalReserved     int             `json:"total_reserved"`
	TotalOnOrder      int             `json:"total_on_order"`
	TotalValue        decimal.Decimal `json:"total_value"`
	LowStockCount     int             `json:"low_stock_count"`
	OutOfStockCount   int             `json:"out_of_stock_count"`
	ExpiredCount      int             `json:"expired_count"`
	ExpiringSoonCount int             `json:"expiring_soon_count"`
}

// WarehouseStats scopes the rollup to one warehouse's items.
type WarehouseStats struct {
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	StockMetrics
}

// StatsReport is the full aggregation returned by GET /stats.
type StatsReport struct {
	StockMetrics
	CriticalAlertCount int              `json:"critical_alert_count"`
	Warehouses         []WarehouseStats `json:"warehouses"`
}
