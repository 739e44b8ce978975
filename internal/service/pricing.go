package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"billpay-settlement/internal/model"
	"billpay-settlement/pkg/logger"
)

// PricingEngine converts between vendor cost and resale price per category.
// Both directions round half away from zero exactly once, so
// RemoveMarkup(ApplyMarkup(x)) may differ from x by a unit. That drift is accepted.
type PricingEngine struct {
	markups map[model.Category]decimal.Decimal
	logger  *logger.Logger
}

// NewPricingEngine creates a pricing engine from per-category markup fractions
func NewPricingEngine(markups map[model.Category]decimal.Decimal, log *logger.Logger) (*PricingEngine, error) {
	m := make(map[model.Category]decimal.Decimal, len(model.Categories))
	for _, category := range model.Categories {
		markup, ok := markups[category]
		if !ok {
			return nil, fmt.Errorf("no markup configured for %s", category)
		}
		if markup.IsNegative() {
			return nil, fmt.Errorf("markup for %s must be >= 0, got %s", category, markup)
		}
		m[category] = markup
	}

	return &PricingEngine{markups: m, logger: log}, nil
}

// Markup returns the markup fraction of a category
func (e *PricingEngine) Markup(category model.Category) decimal.Decimal {
	return e.markups[category]
}

func (e *PricingEngine) factor(category model.Category) decimal.Decimal {
	return decimal.NewFromInt(1).Add(e.markups[category])
}

// ApplyMarkup returns round(base * (1 + m))
func (e *PricingEngine) ApplyMarkup(base decimal.Decimal, category model.Category) decimal.Decimal {
	return base.Mul(e.factor(category)).Round(0)
}

// RemoveMarkup returns round(resale / (1 + m))
func (e *PricingEngine) RemoveMarkup(resale decimal.Decimal, category model.Category) decimal.Decimal {
	return resale.Div(e.factor(category)).Round(0)
}

// PriceCatalog fills missing resale prices of fixed-denomination products.
// A stored resale price only changes through UpdateBasePrice.
func (e *PricingEngine) PriceCatalog(catalog CatalogWriter) int {
	updated := 0
	for _, category := range model.Categories {
		if !category.FixedDenomination() {
			continue
		}
		for _, p := range catalog.Products(category) {
			if p.BasePrice == nil || p.ResalePrice != nil {
				continue
			}
			base := *p.BasePrice
			resale := e.ApplyMarkup(base, category)
			catalog.SetPrices(category, p.ProductKey, &base, &resale)
			updated++
		}
	}

	if updated > 0 && e.logger != nil {
		e.logger.Info("Catalog priced", "updated", updated)
	}
	return updated
}

// UpdateBasePrice records a new vendor cost and recomputes the resale price
func (e *PricingEngine) UpdateBasePrice(catalog CatalogWriter, category model.Category, key string, base decimal.Decimal) (model.Product, bool) {
	if !category.FixedDenomination() {
		return model.Product{}, false
	}
	resale := e.ApplyMarkup(base, category)
	if !catalog.SetPrices(category, key, &base, &resale) {
		return model.Product{}, false
	}
	return catalog.Lookup(category, key)
}
