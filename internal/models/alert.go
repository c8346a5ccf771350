package models

import (
	"time"

	"github.com/google/uuid"
)

type AlertType string

const (
	AlertOutOfStock   AlertType = "OUT_OF_STOCK"
	AlertLowStock     AlertType = "LOW_STOCK"
	AlertOverstock    AlertType = "OVERSTOCK"
	AlertExpiringSoon AlertType = "EXPIRING_SOON"
)

type AlertPriority string

const (
	PriorityCritical AlertPriority = "CRITICAL"
	PriorityHigh     AlertPriority = "HIGH"
	PriorityMedium   AlertPriority = "MEDIUM"
	PriorityLow      AlertPriority = "LOW"
)

type AlertStatus string

const (
	AlertActive   AlertStatus = "ACTIVE"
	AlertResolved AlertStatus = "RESOLVED"
)

// PriorityRank orders priorities for display: CRITICAL first, LOW last.
func PriorityRank(p AlertPriority) int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// StockAlert is one outstanding condition on one inventory item. Resolved
// alerts are never mutated again; the table is append-only history.
type StockAlert struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	InventoryItemID uuid.UUID     `json:"inventory_item_id" db:"inventory_item_id"`
	AlertType       AlertType     `json:"alert_type" db:"alert_type"`
	Priority        AlertPriority `json:"priority" db:"priority"`
	Message         string        `json:"message" db:"message"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	ResolvedAt      *time.Time    `json:"resolved_at,omitempty" db:"resolved_at"`
}

// Status is ACTIVE while resolved_at is null.
func (a *StockAlert) Status() AlertStatus {
	if a.ResolvedAt == nil {
		return AlertActive
	}
	return AlertResolved
}

// AlertSearchFilter holds search criteria for alert queries.
type AlertSearchFilter struct {
	AlertType *AlertType     `json:"alert_type,omitempty"`
	Priority  *AlertPriority `json:"priority,omitempty"`
	Status    *AlertStatus   `json:"status,omitempty"`
	Query     string         `json:"query,omitempty"` // matched against message and item SKU
	Limit     int            `json:"limit,omitempty"`
	Offset    int            `json:"offset,omitempty"`
}
