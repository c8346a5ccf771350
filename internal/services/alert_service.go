package services

import (
	"context"
	"time"

	"stockpulse/internal/common"
	"stockpulse/internal/models"
	"stockpulse/internal/repositories"

	"github.com/google/uuid"
)

// AlertService is the single writer of stock alert state. It reconciles
// classifier output against the active alerts of one item, keeping the
// invariant of at most one active alert per (item, type).
type AlertService interface {
	Reconcile(ctx context.Context, item *models.InventoryItem, classifications []Classification) error
	ResolveManually(ctx context.Context, alertID uuid.UUID) error
	Search(ctx context.Context, filter *models.AlertSearchFilter) ([]*models.StockAlert, error)
}

type alertService struct {
	alertRepo     repositories.AlertRepository
	txRunner      repositories.TxRunner
	locks         *common.ItemLocks
	ledgerTimeout time.Duration
}

func NewAlertService(alertRepo repositories.AlertRepository, txRunner repositories.TxRunner,
	locks *common.ItemLocks, ledgerTimeout time.Duration) AlertService {
	return &alertService{
		alertRepo:     alertRepo,
		txRunner:      txRunner,
		locks:         locks,
		ledgerTimeout: ledgerTimeout,
	}
}

// Reconcile creates an alert for every newly detected condition and resolves
// every active alert whose condition is no longer detected. Untouched when
// the detected set matches the active set, so repeated calls with the same
// item state are no-ops. All writes for the item land in one transaction,
// serialized against other reconciles of the same item.
func (s *alertService) Reconcile(ctx context.Context, item *models.InventoryItem, classifications []Classification) error {
	unlock := s.locks.Lock(item.ID)
	defer unlock()

	ctx, cancel := ledgerCtx(ctx, s.ledgerTimeout)
	defer cancel()

	now := time.Now().UTC()

	err := s.txRunner.Run(ctx, func(_ repositories.ItemRepository, alerts repositories.AlertRepository, _ repositories.CycleCountRepository) error {
		active, err := alerts.ListActiveByItem(ctx, item.ID)
		if err != nil {
			return err
		}

		activeByType := make(map[models.AlertType]*models.StockAlert, len(active))
		for _, alert := range active {
			activeByType[alert.AlertType] = alert
		}

		detected := make(map[models.AlertType]bool, len(classifications))
		for _, cl := range classifications {
			detected[cl.Type] = true
			if _, exists := activeByType[cl.Type]; exists {
				continue // already alerting, do not spam duplicates
			}
			alert := &models.StockAlert{
				ID:              uuid.New(),
				InventoryItemID: item.ID,
				AlertType:       cl.Type,
				Priority:        cl.Priority,
				Message:         cl.Message,
				CreatedAt:       now,
			}
			if err := alerts.Create(ctx, alert); err != nil {
				return err
			}
		}

		for alertType, alert := range activeByType {
			if detected[alertType] {
				continue
			}
			if err := alerts.Resolve(ctx, alert.ID, now); err != nil {
				return err
			}
		}
		return nil
	})
	return mapLedgerErr(err)
}

// ResolveManually closes an active alert on operator request. It is an
// acknowledgment, not a suppression: the next reconciliation recreates the
// alert if the condition still holds.
func (s *alertService) ResolveManually(ctx context.Context, alertID uuid.UUID) error {
	ctx, cancel := ledgerCtx(ctx, s.ledgerTimeout)
	defer cancel()

	return mapLedgerErr(s.alertRepo.Resolve(ctx, alertID, time.Now().UTC()))
}

func (s *alertService) Search(ctx context.Context, filter *models.AlertSearchFilter) ([]*models.StockAlert, error) {
	if filter == nil {
		filter = &models.AlertSearchFilter{}
	}
	ctx, cancel := ledgerCtx(ctx, s.ledgerTimeout)
	defer cancel()

	alerts, err := s.alertRepo.Search(ctx, filter)
	return alerts, mapLedgerErr(err)
}
