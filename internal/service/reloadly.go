package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"billpay-settlement/internal/config"
	"billpay-settlement/internal/errx"
	"billpay-settlement/internal/model"
	"billpay-settlement/pkg/logger"
)

const (
	acceptTopups    = "application/com.reloadly.topups-v1+json"
	acceptUtilities = "application/com.reloadly.utilities-v1+json"
	listPageSize    = "200"
	userAgent       = "billpay-settlement/1.0"
)

// tokenSource hands out bearer tokens per audience
type tokenSource interface {
	Token(ctx context.Context, audience string) (string, error)
	Invalidate(audience, token string)
}

type vendorError struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

type page[T any] struct {
	Content []T `json:"content"`
}

// ReloadlyAuthenticator exchanges client credentials for vendor access tokens
type ReloadlyAuthenticator struct {
	client *resty.Client
	config *config.ReloadlyConfig
	logger *logger.Logger
}

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	GrantType    string `json:"grant_type"`
	Audience     string `json:"audience"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// NewReloadlyAuthenticator creates a new credential exchanger
func NewReloadlyAuthenticator(cfg *config.ReloadlyConfig, log *logger.Logger) *ReloadlyAuthenticator {
	return &ReloadlyAuthenticator{
		client: resty.New().
			SetTimeout(cfg.Timeout).
			SetHeader("User-Agent", userAgent),
		config: cfg,
		logger: log,
	}
}

// Exchange performs a client-credentials grant for audience
func (a *ReloadlyAuthenticator) Exchange(ctx context.Context, audience string) (*model.VendorToken, error) {
	var result tokenResponse
	var vErr vendorError

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(tokenRequest{
			ClientID:     a.config.ClientID,
			ClientSecret: a.config.ClientSecret,
			GrantType:    "client_credentials",
			Audience:     audience,
		}).
		SetResult(&result).
		SetError(&vErr).
		Post(a.config.AuthURL)
	if err != nil {
		return nil, errx.Wrap(errx.KindAuthenticationFailure, err, "vendor auth endpoint unreachable")
	}
	if resp.IsError() {
		return nil, errx.New(errx.KindAuthenticationFailure, "vendor rejected credentials").
			WithDetail(fmt.Sprintf("status %d: %s", resp.StatusCode(), vErr.Message))
	}
	if result.AccessToken == "" {
		return nil, errx.New(errx.KindAuthenticationFailure, "vendor returned an empty access token")
	}

	return &model.VendorToken{
		AccessToken: result.AccessToken,
		ExpiresIn:   time.Duration(result.ExpiresIn) * time.Second,
	}, nil
}

// ReloadlyService lists vendor operators and delivers products
type ReloadlyService struct {
	client *resty.Client
	tokens tokenSource
	config *config.ReloadlyConfig
	logger *logger.Logger
}

// NewReloadlyService creates a new vendor client
func NewReloadlyService(cfg *config.ReloadlyConfig, tokens tokenSource, log *logger.Logger) *ReloadlyService {
	return &ReloadlyService{
		client: resty.New().
			SetTimeout(cfg.Timeout).
			SetHeader("User-Agent", userAgent),
		tokens: tokens,
		config: cfg,
		logger: log,
	}
}

func (s *ReloadlyService) request(ctx context.Context, audience, accept string) (*resty.Request, error) {
	token, err := s.tokens.Token(ctx, audience)
	if err != nil {
		return nil, err
	}
	return s.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Accept", accept), nil
}

// check maps the response and drops a bearer token the vendor no longer accepts,
// so the next call exchanges credentials again.
func (s *ReloadlyService) check(resp *resty.Response, err error, audience string, kind errx.Kind, what string) error {
	if err == nil && resp.StatusCode() == http.StatusUnauthorized {
		s.logger.Warn("Vendor rejected bearer token", "audience", audience, "call", what)
		s.tokens.Invalidate(audience, resp.Request.Token)
	}
	return checkResponse(resp, err, kind, what)
}

// checkResponse maps a resty outcome to the error taxonomy
func checkResponse(resp *resty.Response, err error, kind errx.Kind, what string) error {
	if err != nil {
		return errx.Wrap(kind, err, what+" failed")
	}
	if !resp.IsError() {
		return nil
	}

	detail := fmt.Sprintf("status %d", resp.StatusCode())
	if vErr, ok := resp.Error().(*vendorError); ok && vErr.Message != "" {
		detail += ": " + vErr.Message
	}
	if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
		return errx.New(errx.KindAuthenticationFailure, what+" was not authorized").WithDetail(detail)
	}
	return errx.New(kind, what+" was rejected").WithDetail(detail)
}

// ListOperators returns the topups operators of the configured country
func (s *ReloadlyService) ListOperators(ctx context.Context) ([]model.VendorOperator, error) {
	req, err := s.request(ctx, s.config.TopupsAudience, acceptTopups)
	if err != nil {
		return nil, err
	}

	var result page[model.VendorOperator]
	resp, err := req.
		SetQueryParams(map[string]string{
			"countryISO":     s.config.CountryISO,
			"size":           listPageSize,
			"includeData":    "true",
			"includeBundles": "true",
		}).
		SetResult(&result).
		SetError(&vendorError{}).
		Get(s.config.TopupsURL + "/operators")
	if err := s.check(resp, err, s.config.TopupsAudience, errx.KindTransportError, "operator listing"); err != nil {
		return nil, err
	}

	s.logger.Debug("Fetched vendor operators", "count", len(result.Content))
	return result.Content, nil
}

// ListBillers returns the utilities billers of one type
func (s *ReloadlyService) ListBillers(ctx context.Context, billerType string) ([]model.VendorBiller, error) {
	req, err := s.request(ctx, s.config.UtilitiesAudience, acceptUtilities)
	if err != nil {
		return nil, err
	}

	var result page[model.VendorBiller]
	resp, err := req.
		SetQueryParams(map[string]string{
			"countryISOCode": s.config.CountryISO,
			"type":           billerType,
			"size":           listPageSize,
		}).
		SetResult(&result).
		SetError(&vendorError{}).
		Get(s.config.UtilitiesURL + "/billers")
	if err := s.check(resp, err, s.config.UtilitiesAudience, errx.KindTransportError, "biller listing"); err != nil {
		return nil, err
	}

	s.logger.Debug("Fetched vendor billers", "type", billerType, "count", len(result.Content))
	return result.Content, nil
}

type recipientPhone struct {
	CountryCode string `json:"countryCode"`
	Number      string `json:"number"`
}

type topupRequest struct {
	OperatorID       int64          `json:"operatorId"`
	Amount           json.Number    `json:"amount"`
	UseLocalAmount   bool           `json:"useLocalAmount"`
	RecipientPhone   recipientPhone `json:"recipientPhone"`
	CustomIdentifier string         `json:"customIdentifier"`
}

type topupResponse struct {
	TransactionID    int64  `json:"transactionId"`
	Status           string `json:"status"`
	CustomIdentifier string `json:"customIdentifier"`
	OperatorName     string `json:"operatorName"`
	Message          string `json:"message"`
}

type utilityPaymentRequest struct {
	SubscriberAccountNumber string      `json:"subscriberAccountNumber"`
	Amount                  json.Number `json:"amount"`
	BillerID                int64       `json:"billerId"`
	UseLocalAmount          bool        `json:"useLocalAmount"`
	ReferenceID             string      `json:"referenceId"`
}

type utilityPaymentResponse struct {
	ID          int64  `json:"id"`
	Status      string `json:"status"`
	ReferenceID string `json:"referenceId"`
	Code        string `json:"code"`
	Message     string `json:"message"`
}

// Deliver sends the product to the destination. The idempotency key travels as
// the vendor's custom identifier so a repeated call cannot deliver twice.
func (s *ReloadlyService) Deliver(ctx context.Context, dr model.DeliveryRequest) (*model.DeliveryResult, error) {
	if dr.Category.UsesTopups() {
		return s.topup(ctx, dr)
	}
	return s.payUtility(ctx, dr)
}

func (s *ReloadlyService) topup(ctx context.Context, dr model.DeliveryRequest) (*model.DeliveryResult, error) {
	req, err := s.request(ctx, s.config.TopupsAudience, acceptTopups)
	if err != nil {
		return nil, err
	}

	var result topupResponse
	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(topupRequest{
			OperatorID:     dr.OperatorID,
			Amount:         json.Number(dr.Amount.String()),
			UseLocalAmount: true,
			RecipientPhone: recipientPhone{
				CountryCode: s.config.CountryISO,
				Number:      NationalNumber(dr.Destination, s.config.DialingCode),
			},
			CustomIdentifier: dr.IdempotencyKey,
		}).
		SetResult(&result).
		SetError(&vendorError{}).
		Post(s.config.TopupsURL + "/topups")
	if err := s.check(resp, err, s.config.TopupsAudience, errx.KindDeliveryFailed, "topup"); err != nil {
		return nil, err
	}

	s.logger.WithReference(dr.IdempotencyKey).Info("Topup submitted",
		"operator_id", dr.OperatorID,
		"vendor_status", result.Status,
		"vendor_transaction_id", result.TransactionID,
	)

	return &model.DeliveryResult{
		Status:        result.Status,
		TransactionID: formatID(result.TransactionID),
		Message:       result.Message,
	}, nil
}

func (s *ReloadlyService) payUtility(ctx context.Context, dr model.DeliveryRequest) (*model.DeliveryResult, error) {
	req, err := s.request(ctx, s.config.UtilitiesAudience, acceptUtilities)
	if err != nil {
		return nil, err
	}

	var result utilityPaymentResponse
	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(utilityPaymentRequest{
			SubscriberAccountNumber: dr.Destination,
			Amount:                  json.Number(dr.Amount.String()),
			BillerID:                dr.OperatorID,
			UseLocalAmount:          true,
			ReferenceID:             dr.IdempotencyKey,
		}).
		SetResult(&result).
		SetError(&vendorError{}).
		Post(s.config.UtilitiesURL + "/pay")
	if err := s.check(resp, err, s.config.UtilitiesAudience, errx.KindDeliveryFailed, "bill payment"); err != nil {
		return nil, err
	}

	s.logger.WithReference(dr.IdempotencyKey).Info("Bill payment submitted",
		"biller_id", dr.OperatorID,
		"vendor_status", result.Status,
		"vendor_code", result.Code,
	)

	return &model.DeliveryResult{
		Status:        result.Status,
		TransactionID: formatID(result.ID),
		Message:       result.Message,
	}, nil
}

type utilityTransaction struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	Transaction struct {
		ID          int64  `json:"id"`
		Status      string `json:"status"`
		ReferenceID string `json:"referenceId"`
		BillDetails struct {
			BillerName string `json:"billerName"`
		} `json:"billDetails"`
	} `json:"transaction"`
}

// Status asks the vendor for the last known state of a delivery
func (s *ReloadlyService) Status(ctx context.Context, reference string, category model.Category) (*model.DeliveryStatus, error) {
	if category.UsesTopups() {
		return s.topupStatus(ctx, reference)
	}
	return s.utilityStatus(ctx, reference)
}

func (s *ReloadlyService) topupStatus(ctx context.Context, reference string) (*model.DeliveryStatus, error) {
	req, err := s.request(ctx, s.config.TopupsAudience, acceptTopups)
	if err != nil {
		return nil, err
	}

	var result page[topupResponse]
	resp, err := req.
		SetQueryParam("customIdentifier", reference).
		SetResult(&result).
		SetError(&vendorError{}).
		Get(s.config.TopupsURL + "/topups/reports/transactions")
	if err := s.check(resp, err, s.config.TopupsAudience, errx.KindTransportError, "topup status lookup"); err != nil {
		return nil, err
	}
	if len(result.Content) == 0 {
		return nil, errx.New(errx.KindTransactionNotFound, "vendor has no transaction for this reference")
	}

	trx := result.Content[0]
	return &model.DeliveryStatus{
		Reference:     trx.CustomIdentifier,
		TransactionID: formatID(trx.TransactionID),
		Status:        trx.Status,
		OperatorName:  trx.OperatorName,
		CheckedAt:     time.Now(),
	}, nil
}

func (s *ReloadlyService) utilityStatus(ctx context.Context, reference string) (*model.DeliveryStatus, error) {
	req, err := s.request(ctx, s.config.UtilitiesAudience, acceptUtilities)
	if err != nil {
		return nil, err
	}

	var result page[utilityTransaction]
	resp, err := req.
		SetQueryParam("referenceId", reference).
		SetResult(&result).
		SetError(&vendorError{}).
		Get(s.config.UtilitiesURL + "/transactions")
	if err := s.check(resp, err, s.config.UtilitiesAudience, errx.KindTransportError, "bill payment status lookup"); err != nil {
		return nil, err
	}
	if len(result.Content) == 0 {
		return nil, errx.New(errx.KindTransactionNotFound, "vendor has no transaction for this reference")
	}

	trx := result.Content[0].Transaction
	return &model.DeliveryStatus{
		Reference:     trx.ReferenceID,
		TransactionID: formatID(trx.ID),
		Status:        trx.Status,
		OperatorName:  trx.BillDetails.BillerName,
		CheckedAt:     time.Now(),
	}, nil
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// FormatPhone normalizes a customer phone number to E.164 using the dialing code.
// Numbers already starting with '+' are kept; a leading trunk 0 is replaced.
func FormatPhone(raw, dialingCode string) string {
	phone := strings.Join(strings.Fields(raw), "")
	switch {
	case phone == "":
		return ""
	case strings.HasPrefix(phone, "+"):
		return phone
	case strings.HasPrefix(phone, "0"):
		return dialingCode + phone[1:]
	default:
		return dialingCode + phone
	}
}

// NationalNumber strips the dialing code from an E.164 number
func NationalNumber(phone, dialingCode string) string {
	return strings.TrimPrefix(phone, dialingCode)
}
