package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"billpay-settlement/internal/model"
	"billpay-settlement/pkg/logger"
)

// NotifierStatus describes the operator alert channel
type NotifierStatus interface {
	Status() map[string]interface{}
}

// LedgerCounter counts recorded settlement attempts
type LedgerCounter interface {
	Count(ctx context.Context) (int64, error)
}

// CatalogSnapshotter returns the current catalog
type CatalogSnapshotter interface {
	Snapshot() model.Catalog
}

// HealthHandler handles health check requests
type HealthHandler struct {
	notifier  NotifierStatus
	ledger    LedgerCounter
	catalog   CatalogSnapshotter
	logger    *logger.Logger
	startTime time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(notifier NotifierStatus, ledger LedgerCounter, catalog CatalogSnapshotter, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		notifier:  notifier,
		ledger:    ledger,
		catalog:   catalog,
		logger:    log,
		startTime: time.Now(),
	}
}

// CheckHealth handles GET /health
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	ledgerStatus := map[string]interface{}{"available": true}
	if count, err := h.ledger.Count(r.Context()); err != nil {
		h.logger.WithError(err).Warn("Ledger unavailable for health check")
		ledgerStatus["available"] = false
	} else {
		ledgerStatus["entries"] = count
	}

	snapshot := h.catalog.Snapshot()
	configured := 0
	for _, products := range snapshot {
		for _, p := range products {
			if p.Configured() {
				configured++
			}
		}
	}

	response := map[string]interface{}{
		"status":   "healthy",
		"notifier": h.notifier.Status(),
		"ledger":   ledgerStatus,
		"catalog": map[string]interface{}{
			"products":   snapshot.Count(),
			"configured": configured,
		},
		"uptime":    time.Since(h.startTime).String(),
		"timestamp": time.Now().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
