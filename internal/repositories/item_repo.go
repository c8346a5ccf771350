package repositories

import (
	"context"
	"errors"
	"time"

	"stockpulse/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ItemRepository is the read/write contract the engine requires of the item
// ledger. Quantity writes carry an optimistic version token; a stale token
// fails with models.ErrConcurrentModification instead of silently losing the
// other writer's update.
type ItemRepository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	List(ctx context.Context, warehouseID *uuid.UUID) ([]*models.InventoryItem, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, newQuantity int, expectedVersion int64) error
	MarkCounted(ctx context.Context, id uuid.UUID, at time.Time) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type itemRepo struct {
	db DB
}

func NewItemRepository(db DB) ItemRepository {
	return &itemRepo{db: db}
}

const itemColumns = `id, warehouse_id, sku, quantity_available, quantity_reserved, quantity_on_order,
		reorder_level, unit_cost, expiry_date, location, last_counted_at, active, version, created_at, updated_at`

func scanItem(row pgx.Row) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	err := row.Scan(&item.ID, &item.WarehouseID, &item.SKU, &item.QuantityAvailable, &item.QuantityReserved,
		&item.QuantityOnOrder, &item.ReorderLevel, &item.UnitCost, &item.ExpiryDate, &item.Location,
		&item.LastCountedAt, &item.Active, &item.Version, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepo) Create(ctx context.Context, item *models.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, warehouse_id, sku, quantity_available, quantity_reserved, quantity_on_order,
			reorder_level, unit_cost, expiry_date, location, active, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE, 1, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.WarehouseID, item.SKU, item.QuantityAvailable,
		item.QuantityReserved, item.QuantityOnOrder, item.ReorderLevel, item.UnitCost, item.ExpiryDate, item.Location)
	return err
}

func (r *itemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE id = $1 AND active
	`
	item, err := scanItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *itemRepo) List(ctx context.Context, warehouseID *uuid.UUID) ([]*models.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE active
	`
	args := []any{}
	if warehouseID != nil {
		query += ` AND warehouse_id = $1`
		args = append(args, *warehouseID)
	}
	query += ` ORDER BY sku, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *itemRepo) UpdateQuantity(ctx context.Context, id uuid.UUID, newQuantity int, expectedVersion int64) error {
	query := `
		UPDATE inventory_items
		SET quantity_available = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND version = $3 AND active
	`
	tag, err := r.db.Exec(ctx, query, newQuantity, id, expectedVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Zero rows means either the item is gone or the version is stale.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return models.ErrConcurrentModification
	}
	return nil
}

func (r *itemRepo) MarkCounted(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE inventory_items
		SET last_counted_at = $1, updated_at = NOW()
		WHERE id = $2 AND active
	`
	_, err := r.db.Exec(ctx, query, at, id)
	return err
}

func (r *itemRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE inventory_items
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1 AND active
	`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrItemNotFound
	}
	return nil
}
