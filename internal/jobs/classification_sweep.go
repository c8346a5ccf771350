package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"stockpulse/internal/repositories"
	"stockpulse/internal/services"
)

// SweepService walks every active item, classifies it and reconciles its
// alerts. The sweep is the self-healing path: anything a failed post-commit
// reconcile left stale gets corrected on the next run.
type SweepService struct {
	itemRepo   repositories.ItemRepository
	classifier *services.Classifier
	alerts     services.AlertService
}

func NewSweepService(itemRepo repositories.ItemRepository, classifier *services.Classifier, alerts services.AlertService) *SweepService {
	return &SweepService{
		itemRepo:   itemRepo,
		classifier: classifier,
		alerts:     alerts,
	}
}

// Run reconciles all items. Per-item failures are logged and skipped so one
// bad item cannot starve the rest of the fleet.
func (s *SweepService) Run(ctx context.Context) error {
	start := time.Now()

	items, err := s.itemRepo.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("sweep: list items: %w", err)
	}

	now := time.Now().UTC()
	failed := 0
	for _, item := range items {
		classifications := s.classifier.Classify(item, now)
		if err := s.alerts.Reconcile(ctx, item, classifications); err != nil {
			log.Printf("sweep: reconcile failed for item %s (sku %s): %v", item.ID, item.SKU, err)
			failed++
		}
	}

	log.Printf("sweep: reconciled %d items (%d failed) in %s", len(items)-failed, failed, time.Since(start))
	if failed > 0 {
		return fmt.Errorf("sweep: %d of %d items failed to reconcile", failed, len(items))
	}
	return nil
}
