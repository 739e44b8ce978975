package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"billpay-settlement/internal/config"
	"billpay-settlement/internal/errx"
	"billpay-settlement/internal/model"
	"billpay-settlement/pkg/logger"
)

// FlutterwaveService verifies customer payments with the gateway
type FlutterwaveService struct {
	client *resty.Client
	config *config.FlutterwaveConfig
	logger *logger.Logger
}

type verifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID       int64           `json:"id"`
		TxRef    string          `json:"tx_ref"`
		FlwRef   string          `json:"flw_ref"`
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
		Status   string          `json:"status"`
		Meta     map[string]any  `json:"meta"`
	} `json:"data"`
}

// NewFlutterwaveService creates a new payment verifier
func NewFlutterwaveService(cfg *config.FlutterwaveConfig, log *logger.Logger) *FlutterwaveService {
	return &FlutterwaveService{
		client: resty.New().
			SetTimeout(cfg.Timeout).
			SetHeader("User-Agent", userAgent),
		config: cfg,
		logger: log,
	}
}

// Verify fetches the gateway's view of a payment reference.
// Status checks are left to the caller.
func (s *FlutterwaveService) Verify(ctx context.Context, reference string) (*model.VerifiedPayment, error) {
	var result verifyResponse
	var failure verifyResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.config.SecretKey).
		SetQueryParam("tx_ref", reference).
		SetResult(&result).
		SetError(&failure).
		Get(s.config.BaseURL + "/transactions/verify_by_reference")
	if err != nil {
		return nil, errx.Wrap(errx.KindTransportError, err, "payment gateway unreachable")
	}
	if resp.StatusCode() >= 500 {
		return nil, errx.New(errx.KindTransportError, "payment gateway unavailable").
			WithDetail(fmt.Sprintf("status %d", resp.StatusCode()))
	}
	if resp.IsError() {
		s.logger.WithReference(reference).Warn("Payment gateway rejected verification",
			"status_code", resp.StatusCode(),
			"message", failure.Message,
		)
		return nil, errx.New(errx.KindPaymentVerificationFailed, "payment could not be verified").
			WithDetail(failure.Message)
	}

	return &model.VerifiedPayment{
		Status:      result.Status,
		InnerStatus: result.Data.Status,
		Reference:   result.Data.TxRef,
		Amount:      result.Data.Amount,
		Currency:    result.Data.Currency,
		Metadata: model.PaymentMetadata{
			Service:       metaString(result.Data.Meta, "service"),
			Network:       metaString(result.Data.Meta, "network"),
			PlanID:        metaString(result.Data.Meta, "planId"),
			Phone:         metaString(result.Data.Meta, "phone"),
			AccountNumber: metaString(result.Data.Meta, "accountNumber"),
		},
	}, nil
}

// metaString reads a metadata value that the checkout may have sent as a string or number
func metaString(meta map[string]any, key string) string {
	switch v := meta[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
