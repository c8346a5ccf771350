package repositories

import (
	"context"
	"errors"

	"stockpulse/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WarehouseRepository is read-only: warehouses are reference data owned
// outside the engine.
type WarehouseRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	List(ctx context.Context) ([]*models.Warehouse, error)
}

type warehouseRepo struct {
	db DB
}

func NewWarehouseRepository(db DB) WarehouseRepository {
	return &warehouseRepo{db: db}
}

func (r *warehouseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	warehouse := &models.Warehouse{}
	query := `
		SELECT id, name, code, created_at, updated_at
		FROM warehouses
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&warehouse.ID, &warehouse.Name, &warehouse.Code,
		&warehouse.CreatedAt, &warehouse.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrWarehouseNotFound
		}
		return nil, err
	}
	return warehouse, nil
}

func (r *warehouseRepo) List(ctx context.Context) ([]*models.Warehouse, error) {
	query := `
		SELECT id, name, code, created_at, updated_at
		FROM warehouses
		ORDER BY code
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var warehouses []*models.Warehouse
	for rows.Next() {
		warehouse := &models.Warehouse{}
		if err := rows.Scan(&warehouse.ID, &warehouse.Name, &warehouse.Code,
			&warehouse.CreatedAt, &warehouse.UpdatedAt); err != nil {
			return nil, err
		}
		warehouses = append(warehouses, warehouse)
	}
	return warehouses, rows.Err()
}
