package services

import (
	"fmt"
	"time"

	"stockpulse/internal/models"
)

// ClassifierConfig holds the thresholds behind the alert rules. The overstock
// multiplier is a placeholder business rule and deliberately tunable.
type ClassifierConfig struct {
	// OverstockMultiplier flags items holding more than
	// reorderLevel * multiplier units.
	OverstockMultiplier int
	// ExpiryWindow is how far ahead EXPIRING_SOON looks.
	ExpiryWindow time.Duration
	// DefaultReorderLevel applies when an item has no reorder level set.
	DefaultReorderLevel int
}

func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		OverstockMultiplier: 10,
		ExpiryWindow:        14 * 24 * time.Hour,
		DefaultReorderLevel: 5,
	}
}

// Classification is one detected condition on an item.
type Classification struct {
	Type     models.AlertType
	Priority models.AlertPriority
	Message  string
}

// Classifier maps an item snapshot to zero or more classifications. It is
// pure: no storage, no clock of its own.
type Classifier struct {
	cfg ClassifierConfig
}

func NewClassifier(cfg ClassifierConfig) *Classifier {
	if cfg.OverstockMultiplier <= 0 {
		cfg.OverstockMultiplier = 10
	}
	if cfg.ExpiryWindow <= 0 {
		cfg.ExpiryWindow = 14 * 24 * time.Hour
	}
	if cfg.DefaultReorderLevel <= 0 {
		cfg.DefaultReorderLevel = 5
	}
	return &Classifier{cfg: cfg}
}

func (c *Classifier) reorderLevel(item *models.InventoryItem) int {
	if item.ReorderLevel <= 0 {
		return c.cfg.DefaultReorderLevel
	}
	return item.ReorderLevel
}

// Classify evaluates every rule independently; an item can warrant LOW_STOCK
// and EXPIRING_SOON at the same time. OUT_OF_STOCK and LOW_STOCK are mutually
// exclusive by construction.
func (c *Classifier) Classify(item *models.InventoryItem, now time.Time) []Classification {
	var out []Classification
	reorderLevel := c.reorderLevel(item)

	switch {
	case item.QuantityAvailable == 0:
		out = append(out, Classification{
			Type:     models.AlertOutOfStock,
			Priority: models.PriorityCritical,
			Message:  fmt.Sprintf("SKU %s is out of stock", item.SKU),
		})
	case item.QuantityAvailable <= reorderLevel:
		priority := models.PriorityMedium
		if item.QuantityAvailable <= reorderLevel/2 {
			priority = models.PriorityHigh
		}
		out = append(out, Classification{
			Type:     models.AlertLowStock,
			Priority: priority,
			Message: fmt.Sprintf("SKU %s has %d units remaining, below reorder level %d",
				item.SKU, item.QuantityAvailable, reorderLevel),
		})
	}

	if threshold := reorderLevel * c.cfg.OverstockMultiplier; item.QuantityAvailable > threshold {
		out = append(out, Classification{
			Type:     models.AlertOverstock,
			Priority: models.PriorityLow,
			Message: fmt.Sprintf("SKU %s has %d units on hand, above overstock threshold %d",
				item.SKU, item.QuantityAvailable, threshold),
		})
	}

	if c.IsExpiringSoon(item, now) {
		days := daysUntil(*item.ExpiryDate, now)
		out = append(out, Classification{
			Type:     models.AlertExpiringSoon,
			Priority: models.PriorityMedium,
			Message:  fmt.Sprintf("SKU %s expires in %d days", item.SKU, days),
		})
	}

	return out
}

// IsOutOfStock reports whether the item has nothing on hand.
func (c *Classifier) IsOutOfStock(item *models.InventoryItem) bool {
	return item.QuantityAvailable == 0
}

// IsLowStock reports whether the item is at or below its reorder level but
// not yet out of stock.
func (c *Classifier) IsLowStock(item *models.InventoryItem) bool {
	return item.QuantityAvailable > 0 && item.QuantityAvailable <= c.reorderLevel(item)
}

// IsExpired reports whether the item's expiry date has passed. Expired items
// are not a StockAlert type; they surface only through aggregation because
// OUT_OF_STOCK already dominates the operational response.
func (c *Classifier) IsExpired(item *models.InventoryItem, now time.Time) bool {
	return item.ExpiryDate != nil && item.ExpiryDate.Before(now)
}

// IsExpiringSoon reports whether the expiry date falls inside the window
// starting now.
func (c *Classifier) IsExpiringSoon(item *models.InventoryItem, now time.Time) bool {
	if item.ExpiryDate == nil {
		return false
	}
	expiry := *item.ExpiryDate
	return !expiry.Before(now) && !expiry.After(now.Add(c.cfg.ExpiryWindow))
}

// daysUntil rounds up, so an expiry 36 hours away reads as "2 days".
func daysUntil(expiry, now time.Time) int {
	d := expiry.Sub(now)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}
