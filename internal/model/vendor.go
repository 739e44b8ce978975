package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Biller types accepted by the vendor utilities listing
const (
	BillerTypeCableTV     = "CABLE_TV"
	BillerTypeElectricity = "ELECTRICITY_BILL_PAYMENT"
)

// DenominationFixed marks an operator that only sells enumerated amounts
const DenominationFixed = "FIXED"

// VendorToken is the result of a credential exchange
type VendorToken struct {
	AccessToken string
	ExpiresIn   time.Duration
}

// VendorFX holds the operator's exchange rate
type VendorFX struct {
	Rate         float64 `json:"rate"`
	CurrencyCode string  `json:"currencyCode"`
}

// VendorCountry identifies an operator's country
type VendorCountry struct {
	ISOName string `json:"isoName"`
	Name    string `json:"name"`
}

// VendorOperator is a topups operator as listed by the vendor
type VendorOperator struct {
	OperatorID       int64         `json:"operatorId"`
	Name             string        `json:"name"`
	Country          VendorCountry `json:"country"`
	DenominationType string        `json:"denominationType"`
	FixedAmounts     []float64     `json:"fixedAmounts,omitempty"`
	FX               *VendorFX     `json:"fx,omitempty"`
	Bundle           bool          `json:"bundle"`
	Data             bool          `json:"data"`
}

// SupportsAirtime reports whether the operator exposes a usable pricing mode
func (o VendorOperator) SupportsAirtime() bool {
	return (o.FX != nil && o.FX.Rate != 0) || o.DenominationType == DenominationFixed
}

// SupportsData reports whether the operator can sell data bundles
func (o VendorOperator) SupportsData() bool {
	return o.SupportsAirtime() || o.Bundle || o.Data
}

// VendorBiller is a utilities biller as listed by the vendor.
// Listings have used both id/name and billerId/billerName.
type VendorBiller struct {
	ID               int64  `json:"id"`
	BillerID         int64  `json:"billerId,omitempty"`
	Name             string `json:"name"`
	BillerName       string `json:"billerName,omitempty"`
	CountryCode      string `json:"countryCode"`
	Type             string `json:"type"`
	ServiceType      string `json:"serviceType"`
	DenominationType string `json:"denominationType"`
}

// Identifier returns the biller's vendor id
func (b VendorBiller) Identifier() int64 {
	if b.ID > 0 {
		return b.ID
	}
	return b.BillerID
}

// DisplayName returns the biller's name
func (b VendorBiller) DisplayName() string {
	if b.Name != "" {
		return b.Name
	}
	return b.BillerName
}

// DeliveryRequest is the vendor-facing delivery call
type DeliveryRequest struct {
	Category       Category
	OperatorID     int64
	Amount         decimal.Decimal
	Destination    string
	IdempotencyKey string
}

// Vendor delivery statuses
const (
	DeliveryStatusSuccessful = "SUCCESSFUL"
	DeliveryStatusProcessing = "PROCESSING"
	DeliveryStatusFailed     = "FAILED"
)

// DeliveryResult is the vendor's answer to a delivery call
type DeliveryResult struct {
	Status        string `json:"status"`
	TransactionID string `json:"transactionId"`
	Message       string `json:"message"`
}

// Succeeded reports whether the vendor completed the delivery. Topups are
// synchronous and only SUCCESSFUL counts; bill payments settle asynchronously
// and PROCESSING means the vendor accepted the order.
func (r DeliveryResult) Succeeded(category Category) bool {
	switch r.Status {
	case DeliveryStatusSuccessful:
		return true
	case DeliveryStatusProcessing:
		return !category.UsesTopups()
	}
	return false
}

// DeliveryStatus is the last status the vendor knows for a reference
type DeliveryStatus struct {
	Reference     string    `json:"reference"`
	TransactionID string    `json:"transaction_id"`
	Status        string    `json:"status"`
	OperatorName  string    `json:"operator_name,omitempty"`
	CheckedAt     time.Time `json:"checked_at"`
}
