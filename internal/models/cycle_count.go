package models

import (
	"time"

	"github.com/google/uuid"
)

// CycleCountRecord is the audit entry written when a physical count is
// applied to an item. Append-only.
type CycleCountRecord struct {
	ID              uuid.UUID `json:"id" db:"id"`
	InventoryItemID uuid.UUID `json:"inventory_item_id" db:"inventory_item_id"`
	SystemCount     int       `json:"system_count" db:"system_count"`
	PhysicalCount   int       `json:"physical_count" db:"physical_count"`
	Variance        int       `json:"variance" db:"variance"`
	Notes           *string   `json:"notes,omitempty" db:"notes"`
	SubmittedAt     time.Time `json:"submitted_at" db:"submitted_at"`
}

// CycleCountResult is returned to the caller after a count is applied.
type CycleCountResult struct {
	Item                 *InventoryItem `json:"item"`
	SystemCount          int            `json:"system_count"`
	PhysicalCount        int            `json:"physical_count"`
	Variance             int            `json:"variance"`
	LargeVarianceWarning bool           `json:"large_variance_warning"`
}
