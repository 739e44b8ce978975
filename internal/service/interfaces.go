package service

import (
	"context"

	"github.com/shopspring/decimal"

	"billpay-settlement/internal/model"
)

// CatalogReader is the read side of the catalog store.
type CatalogReader interface {
	Snapshot() model.Catalog
	Products(category model.Category) []model.Product
	Lookup(category model.Category, key string) (model.Product, bool)
}

// CatalogWriter is the write side of the catalog store, used by the
// synchronizer and the pricing engine only.
type CatalogWriter interface {
	CatalogReader
	SetOperatorID(category model.Category, key string, operatorID int64) bool
	SetPrices(category model.Category, key string, base, resale *decimal.Decimal) bool
}

// TokenExchanger performs the vendor client-credentials exchange.
//
//go:generate mockgen -destination=mocks/mock_interfaces.go -source=interfaces.go
type TokenExchanger interface {
	Exchange(ctx context.Context, audience string) (*model.VendorToken, error)
}

// PaymentVerifier asks the payment gateway whether a reference was paid.
type PaymentVerifier interface {
	Verify(ctx context.Context, reference string) (*model.VerifiedPayment, error)
}

// VendorDirectory lists the vendor's operators and billers.
type VendorDirectory interface {
	ListOperators(ctx context.Context) ([]model.VendorOperator, error)
	ListBillers(ctx context.Context, billerType string) ([]model.VendorBiller, error)
}

// DeliveryProvider delivers a product through the vendor and reports on it.
type DeliveryProvider interface {
	Deliver(ctx context.Context, req model.DeliveryRequest) (*model.DeliveryResult, error)
	Status(ctx context.Context, reference string, category model.Category) (*model.DeliveryStatus, error)
}

// SettlementLedger records settlement attempts for operations.
type SettlementLedger interface {
	Save(ctx context.Context, record *model.SettlementRecord) error
	LatestByReference(ctx context.Context, reference string) (*model.SettlementRecord, error)
}

// Notifier pushes operator-actionable alerts.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}
