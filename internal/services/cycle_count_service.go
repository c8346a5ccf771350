package services

import (
	"context"
	"log"
	"time"

	"stockpulse/internal/caching"
	"stockpulse/internal/models"
	"stockpulse/internal/repositories"

	"github.com/google/uuid"
)

// largeVarianceRatio flags counts that move the quantity by more than this
// share of the system count.
const largeVarianceRatio = 0.1

// CycleCountService applies physically observed counts to the ledger.
type CycleCountService interface {
	Apply(ctx context.Context, itemID uuid.UUID, physicalCount int, notes string) (*models.CycleCountResult, error)
	History(ctx context.Context, itemID uuid.UUID, limit int) ([]*models.CycleCountRecord, error)
}

type cycleCountService struct {
	itemRepo      repositories.ItemRepository
	countRepo     repositories.CycleCountRepository
	txRunner      repositories.TxRunner
	classifier    *Classifier
	alerts        AlertService
	cache         caching.CacheService
	ledgerTimeout time.Duration
}

func NewCycleCountService(itemRepo repositories.ItemRepository, countRepo repositories.CycleCountRepository,
	txRunner repositories.TxRunner, classifier *Classifier, alerts AlertService,
	cache caching.CacheService, ledgerTimeout time.Duration) CycleCountService {
	return &cycleCountService{
		itemRepo:      itemRepo,
		countRepo:     countRepo,
		txRunner:      txRunner,
		classifier:    classifier,
		alerts:        alerts,
		cache:         cache,
		ledgerTimeout: ledgerTimeout,
	}
}

// Apply sets the item's quantity to the physical count, records the variance
// in the audit log and re-classifies the item. The quantity write carries the
// version read in the snapshot; a concurrent count invalidates it and the
// caller gets ErrConcurrentModification to retry with a fresh read.
func (s *cycleCountService) Apply(ctx context.Context, itemID uuid.UUID, physicalCount int, notes string) (*models.CycleCountResult, error) {
	if physicalCount < 0 {
		return nil, models.ErrInvalidCount
	}

	readCtx, cancel := ledgerCtx(ctx, s.ledgerTimeout)
	item, err := s.itemRepo.GetByID(readCtx, itemID)
	cancel()
	if err != nil {
		return nil, mapLedgerErr(err)
	}

	systemCount := item.QuantityAvailable
	variance := physicalCount - systemCount
	now := time.Now().UTC()

	record := &models.CycleCountRecord{
		ID:              uuid.New(),
		InventoryItemID: itemID,
		SystemCount:     systemCount,
		PhysicalCount:   physicalCount,
		Variance:        variance,
		SubmittedAt:     now,
	}
	if notes != "" {
		record.Notes = &notes
	}

	txCtx, cancel := ledgerCtx(ctx, s.ledgerTimeout)
	defer cancel()
	err = s.txRunner.Run(txCtx, func(items repositories.ItemRepository, _ repositories.AlertRepository, counts repositories.CycleCountRepository) error {
		if err := items.UpdateQuantity(txCtx, itemID, physicalCount, item.Version); err != nil {
			return err
		}
		if err := items.MarkCounted(txCtx, itemID, now); err != nil {
			return err
		}
		return counts.Create(txCtx, record)
	})
	if err != nil {
		return nil, mapLedgerErr(err)
	}

	item.QuantityAvailable = physicalCount
	item.Version++
	item.LastCountedAt = &now
	item.UpdatedAt = now

	// The count is committed; a reconcile failure here leaves alert state
	// stale until the next sweep, which heals it.
	if err := s.alerts.Reconcile(ctx, item, s.classifier.Classify(item, now)); err != nil {
		log.Printf("cycle count: alert reconcile failed for item %s: %v", itemID, err)
	}

	s.invalidateStats(ctx, item.WarehouseID)

	return &models.CycleCountResult{
		Item:                 item,
		SystemCount:          systemCount,
		PhysicalCount:        physicalCount,
		Variance:             variance,
		LargeVarianceWarning: isLargeVariance(systemCount, variance),
	}, nil
}

func (s *cycleCountService) History(ctx context.Context, itemID uuid.UUID, limit int) ([]*models.CycleCountRecord, error) {
	ctx, cancel := ledgerCtx(ctx, s.ledgerTimeout)
	defer cancel()

	if _, err := s.itemRepo.GetByID(ctx, itemID); err != nil {
		return nil, mapLedgerErr(err)
	}
	records, err := s.countRepo.ListByItem(ctx, itemID, limit)
	return records, mapLedgerErr(err)
}

func (s *cycleCountService) invalidateStats(ctx context.Context, warehouseID uuid.UUID) {
	keys := []string{caching.StatsKey(&warehouseID), caching.StatsKey(nil)}
	if err := s.cache.DeleteStatsReports(ctx, keys...); err != nil {
		log.Printf("cycle count: failed to invalidate stats cache for warehouse %s: %v", warehouseID, err)
	}
}

func isLargeVariance(systemCount, variance int) bool {
	if systemCount <= 0 {
		return false
	}
	abs := variance
	if abs < 0 {
		abs = -abs
	}
	return float64(abs) > float64(systemCount)*largeVarianceRatio
}
