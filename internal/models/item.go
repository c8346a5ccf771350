package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem is one stock-keeping unit held at one warehouse.
type InventoryItem struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	WarehouseID       uuid.UUID       `json:"warehouse_id" db:"warehouse_id"`
	SKU               string          `json:"sku" db:"sku"`
	QuantityAvailable int             `json:"quantity_available" db:"quantity_available"`
	QuantityReserved  int             `json:"quantity_reserved" db:"quantity_reserved"`
	QuantityOnOrder   int             `json:"quantity_on_order" db:"quantity_on_order"`
	ReorderLevel      int             `json:"reorder_level" db:"reorder_level"`
	UnitCost          decimal.Decimal `json:"unit_cost" db:"unit_cost"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty" db:"expiry_date"`
	Location          *string         `json:"location,omitempty" db:"location"`
	LastCountedAt     *time.Time      `json:"last_counted_at,omitempty" db:"last_counted_at"`
	Active            bool            `json:"active" db:"active"`
	// Version is the optimistic concurrency token. Every quantity write
	// increments it; a write carrying a stale version affects zero rows.
	Version   int64     `json:"version" db:"version"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// StockValue is quantity on hand priced at unit cost.
func (i *InventoryItem) StockValue() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.QuantityAvailable)))
}
