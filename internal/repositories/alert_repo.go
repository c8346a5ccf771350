package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stockpulse/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AlertRepository persists stock alerts. Resolution is guarded so a resolved
// alert can never be resolved twice.
type AlertRepository interface {
	Create(ctx context.Context, alert *models.StockAlert) error
	ListActiveByItem(ctx context.Context, itemID uuid.UUID) ([]*models.StockAlert, error)
	Resolve(ctx context.Context, alertID uuid.UUID, at time.Time) error
	Search(ctx context.Context, filter *models.AlertSearchFilter) ([]*models.StockAlert, error)
	CountActiveByPriority(ctx context.Context, priority models.AlertPriority, warehouseID *uuid.UUID) (int, error)
}

type alertRepo struct {
	db DB
}

func NewAlertRepository(db DB) AlertRepository {
	return &alertRepo{db: db}
}

const alertColumns = `id, inventory_item_id, alert_type, priority, message, created_at, resolved_at`

func scanAlert(row pgx.Row) (*models.StockAlert, error) {
	alert := &models.StockAlert{}
	err := row.Scan(&alert.ID, &alert.InventoryItemID, &alert.AlertType, &alert.Priority,
		&alert.Message, &alert.CreatedAt, &alert.ResolvedAt)
	if err != nil {
		return nil, err
	}
	return alert, nil
}

func (r *alertRepo) Create(ctx context.Context, alert *models.StockAlert) error {
	query := `
		INSERT INTO stock_alerts (id, inventory_item_id, alert_type, priority, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, alert.ID, alert.InventoryItemID, alert.AlertType,
		alert.Priority, alert.Message, alert.CreatedAt)
	return err
}

func (r *alertRepo) ListActiveByItem(ctx context.Context, itemID uuid.UUID) ([]*models.StockAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM stock_alerts
		WHERE inventory_item_id = $1 AND resolved_at IS NULL
		ORDER BY created_at DESC, id
	`
	rows, err := r.db.Query(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []*models.StockAlert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

func (r *alertRepo) Resolve(ctx context.Context, alertID uuid.UUID, at time.Time) error {
	query := `
		UPDATE stock_alerts
		SET resolved_at = $1
		WHERE id = $2 AND resolved_at IS NULL
	`
	tag, err := r.db.Exec(ctx, query, at, alertID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing alert from one that is already closed.
		var exists bool
		checkQuery := `SELECT EXISTS (SELECT 1 FROM stock_alerts WHERE id = $1)`
		if err := r.db.QueryRow(ctx, checkQuery, alertID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return models.ErrAlertNotFound
		}
		return models.ErrAlreadyResolved
	}
	return nil
}

// Search filters alerts and orders them by priority (CRITICAL first), newest
// first, id as the deterministic tiebreak.
func (r *alertRepo) Search(ctx context.Context, filter *models.AlertSearchFilter) ([]*models.StockAlert, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	queryBase := `
		SELECT a.id, a.inventory_item_id, a.alert_type, a.priority, a.message, a.created_at, a.resolved_at
		FROM stock_alerts a
		WHERE 1 = 1
	`
	args := []any{}
	conditionCount := 0

	if filter.AlertType != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND a.alert_type = $%d`, conditionCount)
		args = append(args, *filter.AlertType)
	}
	if filter.Priority != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND a.priority = $%d`, conditionCount)
		args = append(args, *filter.Priority)
	}
	if filter.Status != nil {
		if *filter.Status == models.AlertActive {
			queryBase += ` AND a.resolved_at IS NULL`
		} else {
			queryBase += ` AND a.resolved_at IS NOT NULL`
		}
	}
	if filter.Query != "" {
		conditionCount++
		queryBase += fmt.Sprintf(` AND (
			a.message ILIKE $%d OR
			EXISTS (
				SELECT 1 FROM inventory_items i
				WHERE i.id = a.inventory_item_id AND i.sku ILIKE $%d
			)
		)`, conditionCount, conditionCount)
		args = append(args, "%"+filter.Query+"%")
	}

	queryBase += `
		ORDER BY CASE a.priority
			WHEN 'CRITICAL' THEN 0
			WHEN 'HIGH' THEN 1
			WHEN 'MEDIUM' THEN 2
			ELSE 3
		END, a.created_at DESC, a.id
	`

	conditionCount++
	queryBase += fmt.Sprintf(` LIMIT $%d`, conditionCount)
	args = append(args, filter.Limit)
	if filter.Offset > 0 {
		conditionCount++
		queryBase += fmt.Sprintf(` OFFSET $%d`, conditionCount)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []*models.StockAlert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

func (r *alertRepo) CountActiveByPriority(ctx context.Context, priority models.AlertPriority, warehouseID *uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM stock_alerts a
		JOIN inventory_items i ON i.id = a.inventory_item_id
		WHERE a.resolved_at IS NULL AND a.priority = $1
	`
	args := []any{priority}
	if warehouseID != nil {
		query += ` AND i.warehouse_id = $2`
		args = append(args, *warehouseID)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}
