package service

import (
	"context"
	"sync"
	"time"

	"billpay-settlement/internal/errx"
	"billpay-settlement/internal/model"
	"billpay-settlement/pkg/logger"
)

// Synchronizer resolves catalog products to vendor operator and biller ids
type Synchronizer struct {
	vendor  VendorDirectory
	catalog CatalogWriter
	timeout time.Duration
	logger  *logger.Logger

	// one pass at a time; startup and manual triggers may overlap
	mu sync.Mutex
}

// NewSynchronizer creates a new catalog synchronizer. Each vendor listing call
// is bounded by timeout.
func NewSynchronizer(vendor VendorDirectory, catalog CatalogWriter, timeout time.Duration, log *logger.Logger) *Synchronizer {
	return &Synchronizer{
		vendor:  vendor,
		catalog: catalog,
		timeout: timeout,
		logger:  log,
	}
}

type vendorSnapshot struct {
	operators      []model.VendorOperator
	operatorsErr   error
	cableTV        []model.VendorBiller
	cableTVErr     error
	electricity    []model.VendorBiller
	electricityErr error
}

// fetch lists operators and both biller types concurrently
func (s *Synchronizer) fetch(ctx context.Context) *vendorSnapshot {
	var snap vendorSnapshot
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		snap.operators, snap.operatorsErr = s.vendor.ListOperators(callCtx)
	}()
	go func() {
		defer wg.Done()
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		snap.cableTV, snap.cableTVErr = s.vendor.ListBillers(callCtx, model.BillerTypeCableTV)
	}()
	go func() {
		defer wg.Done()
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		snap.electricity, snap.electricityErr = s.vendor.ListBillers(callCtx, model.BillerTypeElectricity)
	}()
	wg.Wait()

	return &snap
}

// candidate is a vendor record reduced to what matching needs
type candidate struct {
	id   int64
	name string
}

// Synchronize fetches the vendor listings and assigns operator ids to products.
// In fill mode only unconfigured products are considered. A failed listing is
// reported per category and never stops the other categories. Only a pass where
// every listing failed returns an error.
func (s *Synchronizer) Synchronize(ctx context.Context, mode model.SyncMode) (*model.SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now()
	snap := s.fetch(ctx)
	result := model.NewSyncResult(mode)

	result.AvailableOperators = snap.operators
	result.AvailableCableTV = snap.cableTV
	result.AvailableElectricity = snap.electricity

	if snap.operatorsErr != nil && snap.cableTVErr != nil && snap.electricityErr != nil {
		s.logger.WithError(snap.operatorsErr).Error("Catalog synchronization failed, no vendor listing available",
			"cable_tv_error", snap.cableTVErr,
			"electricity_error", snap.electricityErr,
		)
		if errx.Is(snap.operatorsErr, errx.KindAuthenticationFailure) {
			return nil, snap.operatorsErr
		}
		return nil, errx.Wrap(errx.KindTransportError, snap.operatorsErr, "no vendor listing could be fetched")
	}

	var airtime, data []candidate
	for _, op := range snap.operators {
		if op.SupportsAirtime() {
			airtime = append(airtime, candidate{id: op.OperatorID, name: op.Name})
		}
		if op.SupportsData() {
			data = append(data, candidate{id: op.OperatorID, name: op.Name})
		}
	}

	s.apply(result, model.CategoryAirtime, airtime, snap.operatorsErr)
	s.apply(result, model.CategoryData, data, snap.operatorsErr)
	s.apply(result, model.CategoryCableTV, billerCandidates(snap.cableTV), snap.cableTVErr)
	s.apply(result, model.CategoryElectricity, billerCandidates(snap.electricity), snap.electricityErr)

	s.logger.Info("Catalog synchronized",
		"mode", mode,
		"matched", result.MatchedCount,
		"failed_categories", len(result.Errors),
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return result, nil
}

func billerCandidates(billers []model.VendorBiller) []candidate {
	out := make([]candidate, 0, len(billers))
	for _, b := range billers {
		out = append(out, candidate{id: b.Identifier(), name: b.DisplayName()})
	}
	return out
}

// apply matches one category in catalog order; the first vendor record that
// matches any of a product's labels wins.
func (s *Synchronizer) apply(result *model.SyncResult, category model.Category, candidates []candidate, fetchErr error) {
	log := s.logger.WithCategory(string(category))
	if fetchErr != nil {
		result.Errors[category] = fetchErr.Error()
		log.WithError(fetchErr).Warn("Vendor listing unavailable, category skipped")
		return
	}

	matched := 0
	for _, p := range s.catalog.Products(category) {
		if result.Mode == model.SyncFillGaps && p.Configured() {
			continue
		}

		found := false
		for _, c := range candidates {
			if c.id <= 0 || !matchAny(c.name, p.MatchLabels()) {
				continue
			}
			s.catalog.SetOperatorID(category, p.ProductKey, c.id)
			result.Matched[category][p.ProductKey] = model.MatchedOperator{
				OperatorID:  c.id,
				VendorName:  c.name,
				ProductName: p.Name,
			}
			found = true
			break
		}

		if !found {
			result.Unmatched[category] = append(result.Unmatched[category], p.ProductKey)
		} else {
			matched++
		}
	}

	result.MatchedCount += matched
	log.Debug("Category synchronized",
		"matched", matched,
		"unmatched", len(result.Unmatched[category]),
	)
}
