package services

import (
	"context"
	"log"
	"time"

	"stockpulse/internal/caching"
	"stockpulse/internal/models"
	"stockpulse/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const statsCacheTTL = time.Minute

// StatsService computes warehouse- and fleet-level rollups. Read-only; the
// low/out-of-stock counts are recomputed from the classifier predicates
// rather than read from alert records, so the report always reflects the
// ledger quantities it was computed from.
type StatsService interface {
	Report(ctx context.Context, warehouseID *uuid.UUID) (*models.StatsReport, error)
}

type statsService struct {
	itemRepo      repositories.ItemRepository
	warehouseRepo repositories.WarehouseRepository
	alertRepo     repositories.AlertRepository
	classifier    *Classifier
	cache         caching.CacheService
	ledgerTimeout time.Duration
}

func NewStatsService(itemRepo repositories.ItemRepository, warehouseRepo repositories.WarehouseRepository,
	alertRepo repositories.AlertRepository, classifier *Classifier, cache caching.CacheService,
	ledgerTimeout time.Duration) StatsService {
	return &statsService{
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
		alertRepo:     alertRepo,
		classifier:    classifier,
		cache:         cache,
		ledgerTimeout: ledgerTimeout,
	}
}

func (s *statsService) Report(ctx context.Context, warehouseID *uuid.UUID) (*models.StatsReport, error) {
	cacheKey := caching.StatsKey(warehouseID)
	if cached, err := s.cache.GetStatsReport(ctx, cacheKey); cached != nil {
		return cached, nil
	} else if err != nil {
		// Cache trouble degrades to a recompute, never to wrong numbers.
		log.Printf("stats: cache read failed for %s: %v", cacheKey, err)
	}

	ctx, cancel := ledgerCtx(ctx, s.ledgerTimeout)
	defer cancel()

	if warehouseID != nil {
		if _, err := s.warehouseRepo.GetByID(ctx, *warehouseID); err != nil {
			return nil, mapLedgerErr(err)
		}
	}

	items, err := s.itemRepo.List(ctx, warehouseID)
	if err != nil {
		return nil, mapLedgerErr(err)
	}
	warehouses, err := s.warehouseRepo.List(ctx)
	if err != nil {
		return nil, mapLedgerErr(err)
	}
	criticalCount, err := s.alertRepo.CountActiveByPriority(ctx, models.PriorityCritical, warehouseID)
	if err != nil {
		return nil, mapLedgerErr(err)
	}

	now := time.Now().UTC()
	report := &models.StatsReport{
		StockMetrics:       ComputeMetrics(items, s.classifier, now),
		CriticalAlertCount: criticalCount,
	}

	for _, warehouse := range warehouses {
		if warehouseID != nil && warehouse.ID != *warehouseID {
			continue
		}
		subset := make([]*models.InventoryItem, 0, len(items))
		for _, item := range items {
			if item.WarehouseID == warehouse.ID {
				subset = append(subset, item)
			}
		}
		report.Warehouses = append(report.Warehouses, models.WarehouseStats{
			WarehouseID:  warehouse.ID,
			Name:         warehouse.Name,
			Code:         warehouse.Code,
			StockMetrics: ComputeMetrics(subset, s.classifier, now),
		})
	}

	if err := s.cache.SetStatsReport(ctx, cacheKey, report, statsCacheTTL); err != nil {
		log.Printf("stats: cache write failed for %s: %v", cacheKey, err)
	}
	return report, nil
}

// ComputeMetrics is a deterministic pure function of the item set; no
// ordering dependency, safe to run per warehouse and merge.
func ComputeMetrics(items []*models.InventoryItem, classifier *Classifier, now time.Time) models.StockMetrics {
	metrics := models.StockMetrics{
		TotalItems: len(items),
		TotalValue: decimal.Zero,
	}
	for _, item := range items {
		metrics.TotalAvailable += item.QuantityAvailable
		metrics.TotalReserved += item.QuantityReserved
		metrics.TotalOnOrder += item.QuantityOnOrder
		metrics.TotalValue = metrics.TotalValue.Add(item.StockValue())

		if classifier.IsOutOfStock(item) {
			metrics.OutOfStockCount++
		} else if classifier.IsLowStock(item) {
			metrics.LowStockCount++
		}
		if classifier.IsExpired(item, now) {
			metrics.ExpiredCount++
		} else if classifier.IsExpiringSoon(item, now) {
			metrics.ExpiringSoonCount++
		}
	}
	return metrics
}
