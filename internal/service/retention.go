package service

import (
	"context"
	"time"

	"billpay-settlement/pkg/logger"
)

// LedgerPruner deletes ledger entries recorded before a cutoff
type LedgerPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RunLedgerRetention prunes entries older than retention every interval until ctx is done
func RunLedgerRetention(ctx context.Context, pruner LedgerPruner, retention, interval time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := pruner.DeleteOlderThan(ctx, time.Now().Add(-retention))
			if err != nil {
				log.Error("Failed to prune settlement ledger", "error", err)
			} else if count > 0 {
				log.Info("Pruned settlement ledger", "count", count)
			}
		}
	}
}
