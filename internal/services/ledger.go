package services

import (
	"context"
	"errors"
	"time"

	"stockpulse/internal/models"
)

const defaultLedgerTimeout = 5 * time.Second

// ledgerCtx bounds every ledger call with a timeout so a backing-store
// outage surfaces as ErrLedgerUnavailable instead of hanging the caller.
func ledgerCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultLedgerTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func mapLedgerErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return models.ErrLedgerUnavailable
	}
	return err
}
