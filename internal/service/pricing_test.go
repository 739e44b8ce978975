package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billpay-settlement/internal/model"
	"billpay-settlement/internal/store"
	"billpay-settlement/pkg/logger"
)

func testMarkups() map[model.Category]decimal.Decimal {
	return map[model.Category]decimal.Decimal{
		model.CategoryAirtime:     decimal.RequireFromString("0.02"),
		model.CategoryData:        decimal.RequireFromString("0.05"),
		model.CategoryCableTV:     decimal.RequireFromString("0.03"),
		model.CategoryElectricity: decimal.RequireFromString("0.02"),
	}
}

func newTestPricingEngine(t *testing.T) *PricingEngine {
	t.Helper()
	engine, err := NewPricingEngine(testMarkups(), logger.Discard())
	require.NoError(t, err)
	return engine
}

func TestNewPricingEngine_Invalid(t *testing.T) {
	negative := testMarkups()
	negative[model.CategoryData] = decimal.RequireFromString("-0.01")
	_, err := NewPricingEngine(negative, logger.Discard())
	assert.Error(t, err)

	missing := testMarkups()
	delete(missing, model.CategoryElectricity)
	_, err = NewPricingEngine(missing, logger.Discard())
	assert.Error(t, err)

	zero := testMarkups()
	zero[model.CategoryAirtime] = decimal.Zero
	_, err = NewPricingEngine(zero, logger.Discard())
	assert.NoError(t, err)
}

func TestPricingEngine_Conversions(t *testing.T) {
	engine := newTestPricingEngine(t)

	tests := []struct {
		name     string
		category model.Category
		apply    bool
		in       string
		want     string
	}{
		{"airtime vendor cost", model.CategoryAirtime, false, "1530", "1500"},
		{"data resale", model.CategoryData, true, "300", "315"},
		{"cable resale", model.CategoryCableTV, true, "2500", "2575"},
		{"data resale rounds half up", model.CategoryData, true, "110", "116"},
		{"electricity vendor cost", model.CategoryElectricity, false, "5100", "5000"},
		{"zero amount", model.CategoryAirtime, false, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := decimal.RequireFromString(tt.in)
			var got decimal.Decimal
			if tt.apply {
				got = engine.ApplyMarkup(in, tt.category)
			} else {
				got = engine.RemoveMarkup(in, tt.category)
			}
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestPricingEngine_RoundTripMayDrift(t *testing.T) {
	engine := newTestPricingEngine(t)

	// 101 * 1.02 = 103.02 -> 103; 103 / 1.02 = 100.98 -> 101
	resale := engine.ApplyMarkup(decimal.NewFromInt(101), model.CategoryAirtime)
	assert.True(t, resale.Equal(decimal.NewFromInt(103)))
	assert.True(t, engine.RemoveMarkup(resale, model.CategoryAirtime).Equal(decimal.NewFromInt(101)))

	// 49 * 1.05 = 51.45 -> 51; 51 / 1.05 = 48.57 -> 49
	resale = engine.ApplyMarkup(decimal.NewFromInt(49), model.CategoryData)
	back := engine.RemoveMarkup(resale, model.CategoryData)
	assert.True(t, back.Sub(decimal.NewFromInt(49)).Abs().LessThanOrEqual(decimal.NewFromInt(1)))
}

func TestPricingEngine_PriceCatalog(t *testing.T) {
	engine := newTestPricingEngine(t)
	catalog, err := store.NewCatalogStore(store.DefaultCatalog())
	require.NoError(t, err)

	priced := engine.PriceCatalog(catalog)
	assert.Equal(t, len(catalog.Products(model.CategoryData))+len(catalog.Products(model.CategoryCableTV)), priced)

	for _, category := range []model.Category{model.CategoryData, model.CategoryCableTV} {
		for _, p := range catalog.Products(category) {
			require.NotNil(t, p.BasePrice, p.ProductKey)
			require.NotNil(t, p.ResalePrice, p.ProductKey)
			assert.True(t, p.ResalePrice.Equal(engine.ApplyMarkup(*p.BasePrice, category)), p.ProductKey)
		}
	}
	for _, category := range []model.Category{model.CategoryAirtime, model.CategoryElectricity} {
		for _, p := range catalog.Products(category) {
			assert.Nil(t, p.ResalePrice, p.ProductKey)
		}
	}

	// a second pass has nothing left to do
	assert.Zero(t, engine.PriceCatalog(catalog))
}

func TestPricingEngine_UpdateBasePrice(t *testing.T) {
	engine := newTestPricingEngine(t)
	catalog, err := store.NewCatalogStore(store.DefaultCatalog())
	require.NoError(t, err)
	engine.PriceCatalog(catalog)

	p, ok := engine.UpdateBasePrice(catalog, model.CategoryData, "MTN-1GB-DAILY", decimal.NewFromInt(300))
	require.True(t, ok)
	assert.True(t, p.BasePrice.Equal(decimal.NewFromInt(300)))
	assert.True(t, p.ResalePrice.Equal(decimal.NewFromInt(315)))

	_, ok = engine.UpdateBasePrice(catalog, model.CategoryData, "UNKNOWN", decimal.NewFromInt(300))
	assert.False(t, ok)

	_, ok = engine.UpdateBasePrice(catalog, model.CategoryAirtime, "MTN", decimal.NewFromInt(300))
	assert.False(t, ok)
}
