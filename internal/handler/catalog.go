package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"billpay-settlement/internal/errx"
	"billpay-settlement/internal/model"
	"billpay-settlement/pkg/logger"
)

// CatalogManager reads and maintains the product catalog
type CatalogManager interface {
	Catalog() model.Catalog
	Synchronize(ctx context.Context, mode model.SyncMode) (*model.SyncResult, error)
	ApplyOperatorIDs(matched map[model.Category]map[string]model.MatchedOperator) (*model.OperatorIDUpdateResult, error)
}

// CatalogHandler handles catalog requests
type CatalogHandler struct {
	catalog     CatalogManager
	defaultMode model.SyncMode
	logger      *logger.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog CatalogManager, defaultMode model.SyncMode, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:     catalog,
		defaultMode: defaultMode,
		logger:      log,
	}
}

// GetCatalog handles GET /api/v1/catalog
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	sendSuccessResponse(w, "Catalog retrieved", h.catalog.Catalog())
}

// Synchronize handles POST /api/v1/catalog/sync?mode=fill|full
func (h *CatalogHandler) Synchronize(w http.ResponseWriter, r *http.Request) {
	mode := h.defaultMode
	switch v := r.URL.Query().Get("mode"); v {
	case "":
	case string(model.SyncFillGaps), string(model.SyncFull):
		mode = model.SyncMode(v)
	default:
		sendError(w, h.logger, errx.New(errx.KindInvalidRequest, "mode must be fill or full").WithDetail(v))
		return
	}

	result, err := h.catalog.Synchronize(r.Context(), mode)
	if err != nil {
		h.logger.WithError(err).Error("Catalog synchronization failed", "mode", mode)
		sendError(w, h.logger, err)
		return
	}

	sendSuccessResponse(w, "Catalog synchronized", result)
}

// UpdateOperatorIDs handles POST /api/v1/catalog/operator-ids
func (h *CatalogHandler) UpdateOperatorIDs(w http.ResponseWriter, r *http.Request) {
	var req model.OperatorIDUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, h.logger, errx.New(errx.KindInvalidRequest, "invalid JSON body").WithDetail(err.Error()))
		return
	}

	result, err := h.catalog.ApplyOperatorIDs(req.MatchedIDs)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}

	sendSuccessResponse(w, "Operator ids updated", result)
}
