package repositories

import (
	"context"

	"stockpulse/internal/models"

	"github.com/google/uuid"
)

// CycleCountRepository is the append-only audit log of physical counts.
type CycleCountRepository interface {
	Create(ctx context.Context, record *models.CycleCountRecord) error
	ListByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]*models.CycleCountRecord, error)
}

type cycleCountRepo struct {
	db DB
}

func NewCycleCountRepository(db DB) CycleCountRepository {
	return &cycleCountRepo{db: db}
}

func (r *cycleCountRepo) Create(ctx context.Context, record *models.CycleCountRecord) error {
	query := `
		INSERT INTO cycle_counts (id, inventory_item_id, system_count, physical_count, variance, notes, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query, record.ID, record.InventoryItemID, record.SystemCount,
		record.PhysicalCount, record.Variance, record.Notes, record.SubmittedAt)
	return err
}

func (r *cycleCountRepo) ListByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]*models.CycleCountRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, inventory_item_id, system_count, physical_count, variance, notes, submitted_at
		FROM cycle_counts
		WHERE inventory_item_id = $1
		ORDER BY submitted_at DESC, id
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, itemID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.CycleCountRecord
	for rows.Next() {
		record := &models.CycleCountRecord{}
		if err := rows.Scan(&record.ID, &record.InventoryItemID, &record.SystemCount,
			&record.PhysicalCount, &record.Variance, &record.Notes, &record.SubmittedAt); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
