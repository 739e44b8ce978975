// Package store holds the in-memory product catalog.
package store

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"billpay-settlement/internal/model"
)

// CatalogStore is the single owner of the product catalog.
// Product order within a category is preserved for match determinism.
type CatalogStore struct {
	mu       sync.RWMutex
	products map[model.Category][]model.Product
	index    map[model.Category]map[string]int
}

// NewCatalogStore builds a store from an initial catalog
func NewCatalogStore(catalog model.Catalog) (*CatalogStore, error) {
	s := &CatalogStore{
		products: make(map[model.Category][]model.Product),
		index:    make(map[model.Category]map[string]int),
	}

	for _, category := range model.Categories {
		s.index[category] = make(map[string]int)
		for _, p := range catalog[category] {
			if p.ProductKey == "" {
				return nil, fmt.Errorf("product %q in %s has no product key", p.Name, category)
			}
			if p.Category == "" {
				p.Category = category
			}
			if p.Category != category {
				return nil, fmt.Errorf("product %s is filed under %s but has category %s", p.ProductKey, category, p.Category)
			}
			key := normalizeKey(p.ProductKey)
			if _, dup := s.index[category][key]; dup {
				return nil, fmt.Errorf("duplicate product key %s in %s", p.ProductKey, category)
			}
			s.index[category][key] = len(s.products[category])
			s.products[category] = append(s.products[category], p)
		}
	}

	for category := range catalog {
		if _, ok := model.ParseCategory(string(category)); !ok {
			return nil, fmt.Errorf("unknown catalog category %q", category)
		}
	}

	return s, nil
}

func normalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// Snapshot returns a copy of the whole catalog
func (s *CatalogStore) Snapshot() model.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(model.Catalog, len(s.products))
	for category, products := range s.products {
		cp := make([]model.Product, len(products))
		copy(cp, products)
		out[category] = cp
	}
	return out
}

// Products returns a copy of one category in catalog order
func (s *CatalogStore) Products(category model.Category) []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := s.products[category]
	cp := make([]model.Product, len(products))
	copy(cp, products)
	return cp
}

// Lookup finds a product by category and product key, case-insensitively
func (s *CatalogStore) Lookup(category model.Category, key string) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[category][normalizeKey(key)]
	if !ok {
		return model.Product{}, false
	}
	return s.products[category][i], true
}

// SetOperatorID records the vendor operator id of a product
func (s *CatalogStore) SetOperatorID(category model.Category, key string, operatorID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[category][normalizeKey(key)]
	if !ok {
		return false
	}
	s.products[category][i].OperatorID = operatorID
	return true
}

// SetPrices records the base and resale price of a product
func (s *CatalogStore) SetPrices(category model.Category, key string, base, resale *decimal.Decimal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[category][normalizeKey(key)]
	if !ok {
		return false
	}
	s.products[category][i].BasePrice = base
	s.products[category][i].ResalePrice = resale
	return true
}
