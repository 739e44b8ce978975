package model

import (
	"github.com/shopspring/decimal"
)

// Category identifies a service line sold through the vendor
type Category string

const (
	CategoryAirtime     Category = "airtime"
	CategoryData        Category = "data"
	CategoryCableTV     Category = "cableTV"
	CategoryElectricity Category = "electricity"
)

// Categories lists every category in catalog order
var Categories = []Category{CategoryAirtime, CategoryData, CategoryCableTV, CategoryElectricity}

// ParseCategory returns the category for a service name and whether it is known
func ParseCategory(v string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == v {
			return c, true
		}
	}
	return "", false
}

// FixedDenomination reports whether products of this category have a known vendor cost
func (c Category) FixedDenomination() bool {
	return c == CategoryData || c == CategoryCableTV
}

// UsesTopups reports whether delivery goes through the vendor's topups API
func (c Category) UsesTopups() bool {
	return c == CategoryAirtime || c == CategoryData
}

// Product is a sellable catalog entry
type Product struct {
	Category    Category         `json:"service"`
	ProductKey  string           `json:"productKey"`
	Name        string           `json:"name"`
	BasePrice   *decimal.Decimal `json:"basePrice,omitempty"`
	ResalePrice *decimal.Decimal `json:"price,omitempty"`
	OperatorID  int64            `json:"operatorId"`

	Network     string `json:"network,omitempty"`
	Provider    string `json:"provider,omitempty"`
	Disco       string `json:"disco,omitempty"`
	DiscoName   string `json:"discoName,omitempty"`
	ServiceType string `json:"serviceType,omitempty"`
	Validity    string `json:"validity,omitempty"`
}

// Configured reports whether the product has a resolved vendor operator id
func (p Product) Configured() bool {
	return p.OperatorID > 0
}

// MatchLabels returns the human labels used to find the product's vendor record,
// in the order they should be tried.
func (p Product) MatchLabels() []string {
	var labels []string
	switch p.Category {
	case CategoryAirtime, CategoryData:
		labels = []string{p.Network}
	case CategoryCableTV:
		labels = []string{p.Provider, p.Name}
	case CategoryElectricity:
		labels = []string{p.Disco, p.DiscoName}
	}

	out := labels[:0]
	for _, l := range labels {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// Catalog is the ordered product list partitioned by category
type Catalog map[Category][]Product

// Count returns the total number of products
func (c Catalog) Count() int {
	n := 0
	for _, products := range c {
		n += len(products)
	}
	return n
}
