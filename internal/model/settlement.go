package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementState is a step of the settlement state machine
type SettlementState string

const (
	StateReceived  SettlementState = "RECEIVED"
	StateVerified  SettlementState = "VERIFIED"
	StateResolved  SettlementState = "RESOLVED"
	StatePriced    SettlementState = "PRICED"
	StateDelivered SettlementState = "DELIVERED"
	StateFailed    SettlementState = "FAILED"
)

// Payment gateway statuses required for a settled payment
const (
	PaymentStatusSuccess      = "success"
	PaymentInnerStatusSuccess = "successful"
)

// PaymentMetadata is what the customer bought, as carried by the gateway
type PaymentMetadata struct {
	Service       string `json:"service"`
	Network       string `json:"network"`
	PlanID        string `json:"planId"`
	Phone         string `json:"phone"`
	AccountNumber string `json:"accountNumber"`
}

// VerifiedPayment is the gateway's verification answer
type VerifiedPayment struct {
	Status      string
	InnerStatus string
	Reference   string
	Amount      decimal.Decimal
	Currency    string
	Metadata    PaymentMetadata
}

// SettlementRequest is one settlement attempt after verification and resolution
type SettlementRequest struct {
	Reference      string
	Product        Product
	CustomerAmount decimal.Decimal
	Destination    string
}

// SettlementOutcome is the customer-facing settlement result
type SettlementOutcome struct {
	Reference     string          `json:"reference"`
	State         SettlementState `json:"state"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Message       string          `json:"message"`
}

// SettlementRecord is the ledger entry of a settlement attempt
type SettlementRecord struct {
	ID                  int64           `json:"id"`
	Reference           string          `json:"reference"`
	Category            Category        `json:"category"`
	ProductKey          string          `json:"product_key"`
	OperatorID          int64           `json:"operator_id"`
	CustomerAmount      decimal.Decimal `json:"customer_amount"`
	VendorAmount        decimal.Decimal `json:"vendor_amount"`
	Margin              decimal.Decimal `json:"margin"`
	Destination         string          `json:"destination"`
	State               SettlementState `json:"state"`
	VendorStatus        string          `json:"vendor_status"`
	VendorTransactionID string          `json:"vendor_transaction_id"`
	Message             string          `json:"message"`
	CreatedAt           time.Time       `json:"created_at"`
}

// SyncMode selects which products a synchronization may touch
type SyncMode string

const (
	// SyncFillGaps only resolves products without an operator id
	SyncFillGaps SyncMode = "fill"
	// SyncFull re-matches every product
	SyncFull SyncMode = "full"
)

// ParseSyncMode defaults to SyncFillGaps for unknown values
func ParseSyncMode(v string) SyncMode {
	if SyncMode(v) == SyncFull {
		return SyncFull
	}
	return SyncFillGaps
}

// MatchedOperator records which vendor record a product was matched to
type MatchedOperator struct {
	OperatorID  int64  `json:"operatorId"`
	VendorName  string `json:"name"`
	ProductName string `json:"productName"`
}

// SyncResult summarizes a synchronization pass
type SyncResult struct {
	Mode         SyncMode                                 `json:"mode"`
	MatchedCount int                                      `json:"matchedCount"`
	Matched      map[Category]map[string]MatchedOperator `json:"matchedIds"`
	Unmatched    map[Category][]string                    `json:"unmatchedProductKeys"`
	Errors       map[Category]string                      `json:"errors,omitempty"`

	AvailableOperators   []VendorOperator `json:"availableOperators"`
	AvailableCableTV     []VendorBiller   `json:"availableCableTVBillers"`
	AvailableElectricity []VendorBiller   `json:"availableElectricityBillers"`
}

// NewSyncResult returns an empty result for the mode
func NewSyncResult(mode SyncMode) *SyncResult {
	r := &SyncResult{
		Mode:      mode,
		Matched:   make(map[Category]map[string]MatchedOperator),
		Unmatched: make(map[Category][]string),
		Errors:    make(map[Category]string),
	}
	for _, c := range Categories {
		r.Matched[c] = make(map[string]MatchedOperator)
	}
	return r
}
