package service

import (
	"context"

	"billpay-settlement/internal/errx"
	"billpay-settlement/internal/model"
	"billpay-settlement/pkg/logger"
)

// CatalogService is the entry point for catalog reads and maintenance
type CatalogService struct {
	catalog CatalogWriter
	sync    *Synchronizer
	pricing *PricingEngine
	logger  *logger.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalog CatalogWriter, sync *Synchronizer, pricing *PricingEngine, log *logger.Logger) *CatalogService {
	return &CatalogService{
		catalog: catalog,
		sync:    sync,
		pricing: pricing,
		logger:  log,
	}
}

// Catalog returns a snapshot of every product
func (s *CatalogService) Catalog() model.Catalog {
	return s.catalog.Snapshot()
}

// Synchronize runs a synchronization pass and prices anything left unpriced
func (s *CatalogService) Synchronize(ctx context.Context, mode model.SyncMode) (*model.SyncResult, error) {
	result, err := s.sync.Synchronize(ctx, mode)
	if err != nil {
		return nil, err
	}
	s.pricing.PriceCatalog(s.catalog)
	return result, nil
}

// ApplyOperatorIDs stores operator ids reviewed by an operator, usually taken
// from a previous sync result. Unknown products and non-positive ids are skipped.
func (s *CatalogService) ApplyOperatorIDs(matched map[model.Category]map[string]model.MatchedOperator) (*model.OperatorIDUpdateResult, error) {
	if len(matched) == 0 {
		return nil, errx.New(errx.KindInvalidRequest, "matchedIds is required")
	}

	updated := 0
	for category, products := range matched {
		if _, ok := model.ParseCategory(string(category)); !ok {
			return nil, errx.New(errx.KindInvalidRequest, "unknown service category").WithDetail(string(category))
		}
		for key, op := range products {
			if op.OperatorID <= 0 {
				continue
			}
			if !s.catalog.SetOperatorID(category, key, op.OperatorID) {
				s.logger.WithCategory(string(category)).Warn("Operator id for unknown product ignored", "product_key", key)
				continue
			}
			updated++
		}
	}

	s.logger.Info("Operator ids updated", "updated", updated)

	return &model.OperatorIDUpdateResult{
		UpdatedCount: updated,
		Catalog:      s.catalog.Snapshot(),
	}, nil
}
