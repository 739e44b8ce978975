package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billpay-settlement/internal/config"
	"billpay-settlement/internal/errx"
	"billpay-settlement/internal/model"
	"billpay-settlement/pkg/logger"
)

type staticTokens struct {
	audiences   []string
	invalidated []string
}

func (s *staticTokens) Token(ctx context.Context, audience string) (string, error) {
	s.audiences = append(s.audiences, audience)
	return "tok-" + audience, nil
}

func (s *staticTokens) Invalidate(audience, token string) {
	s.invalidated = append(s.invalidated, audience+"="+token)
}

func testReloadlyConfig(baseURL string) *config.ReloadlyConfig {
	return &config.ReloadlyConfig{
		ClientID:          "client",
		ClientSecret:      "secret",
		AuthURL:           baseURL + "/oauth/token",
		TopupsURL:         baseURL + "/topups-api",
		UtilitiesURL:      baseURL + "/utilities-api",
		TopupsAudience:    "topups",
		UtilitiesAudience: "utilities",
		Timeout:           5 * time.Second,
		CountryISO:        "NG",
		DialingCode:       "+234",
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestReloadlyAuthenticator_Exchange(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/oauth/token", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]any{"access_token": "abc", "expires_in": 3600, "token_type": "Bearer"})
	}))
	defer server.Close()

	auth := NewReloadlyAuthenticator(testReloadlyConfig(server.URL), logger.Discard())
	token, err := auth.Exchange(context.Background(), "https://topups.reloadly.com")
	require.NoError(t, err)

	assert.Equal(t, "abc", token.AccessToken)
	assert.Equal(t, time.Hour, token.ExpiresIn)
	assert.Equal(t, map[string]string{
		"client_id":     "client",
		"client_secret": "secret",
		"grant_type":    "client_credentials",
		"audience":      "https://topups.reloadly.com",
	}, got)
}

func TestReloadlyAuthenticator_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
	}{
		{"rejected", http.StatusUnauthorized, map[string]any{"message": "Access Denied", "errorCode": "INVALID_CREDENTIALS"}},
		{"empty token", http.StatusOK, map[string]any{"expires_in": 3600}},
		{"server error", http.StatusBadGateway, map[string]any{"message": "upstream"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			}))
			defer server.Close()

			auth := NewReloadlyAuthenticator(testReloadlyConfig(server.URL), logger.Discard())
			_, err := auth.Exchange(context.Background(), "topups")
			assert.True(t, errx.Is(err, errx.KindAuthenticationFailure), "got %v", err)
		})
	}
}

func TestReloadlyService_ListOperators(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/topups-api/operators", r.URL.Path)
		assert.Equal(t, "Bearer tok-topups", r.Header.Get("Authorization"))
		assert.Equal(t, acceptTopups, r.Header.Get("Accept"))
		assert.Equal(t, "NG", r.URL.Query().Get("countryISO"))
		assert.Equal(t, "200", r.URL.Query().Get("size"))
		writeJSON(w, http.StatusOK, map[string]any{"content": []map[string]any{
			{"operatorId": 341, "name": "MTN Nigeria", "denominationType": "RANGE", "fx": map[string]any{"rate": 1, "currencyCode": "NGN"}},
			{"operatorId": 342, "name": "MTN Nigeria Data", "denominationType": "FIXED", "data": true},
		}})
	}))
	defer server.Close()

	tokens := &staticTokens{}
	svc := NewReloadlyService(testReloadlyConfig(server.URL), tokens, logger.Discard())
	operators, err := svc.ListOperators(context.Background())
	require.NoError(t, err)

	require.Len(t, operators, 2)
	assert.Equal(t, int64(341), operators[0].OperatorID)
	assert.True(t, operators[0].SupportsAirtime())
	assert.True(t, operators[1].Data)
	assert.Equal(t, []string{"topups"}, tokens.audiences)
}

func TestReloadlyService_ListBillers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/utilities-api/billers", r.URL.Path)
		assert.Equal(t, "Bearer tok-utilities", r.Header.Get("Authorization"))
		assert.Equal(t, acceptUtilities, r.Header.Get("Accept"))
		assert.Equal(t, model.BillerTypeElectricity, r.URL.Query().Get("type"))
		assert.Equal(t, "NG", r.URL.Query().Get("countryISOCode"))
		writeJSON(w, http.StatusOK, map[string]any{"content": []map[string]any{
			{"id": 9, "name": "Ikeja Electricity Prepaid", "type": model.BillerTypeElectricity, "serviceType": "PREPAID"},
		}})
	}))
	defer server.Close()

	svc := NewReloadlyService(testReloadlyConfig(server.URL), &staticTokens{}, logger.Discard())
	billers, err := svc.ListBillers(context.Background(), model.BillerTypeElectricity)
	require.NoError(t, err)

	require.Len(t, billers, 1)
	assert.Equal(t, int64(9), billers[0].Identifier())
	assert.Equal(t, "Ikeja Electricity Prepaid", billers[0].DisplayName())
}

func TestReloadlyService_ListErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   errx.Kind
	}{
		{"unavailable", http.StatusServiceUnavailable, errx.KindTransportError},
		{"unauthorized", http.StatusUnauthorized, errx.KindAuthenticationFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, map[string]any{"message": "nope"})
			}))
			defer server.Close()

			svc := NewReloadlyService(testReloadlyConfig(server.URL), &staticTokens{}, logger.Discard())
			_, err := svc.ListOperators(context.Background())
			assert.True(t, errx.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestReloadlyService_DeliverTopup(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/topups-api/topups", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, map[string]any{"transactionId": 4521, "status": "SUCCESSFUL", "customIdentifier": "ref-1"})
	}))
	defer server.Close()

	svc := NewReloadlyService(testReloadlyConfig(server.URL), &staticTokens{}, logger.Discard())
	result, err := svc.Deliver(context.Background(), model.DeliveryRequest{
		Category:       model.CategoryAirtime,
		OperatorID:     341,
		Amount:         decimal.NewFromInt(1500),
		Destination:    "+2348031234567",
		IdempotencyKey: "ref-1",
	})
	require.NoError(t, err)

	assert.True(t, result.Succeeded(model.CategoryAirtime))
	assert.Equal(t, "4521", result.TransactionID)
	assert.Equal(t, float64(341), body["operatorId"])
	assert.Equal(t, float64(1500), body["amount"])
	assert.Equal(t, true, body["useLocalAmount"])
	assert.Equal(t, "ref-1", body["customIdentifier"])
	assert.Equal(t, map[string]any{"countryCode": "NG", "number": "8031234567"}, body["recipientPhone"])
}

func TestReloadlyService_DeliverUtility(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/utilities-api/pay", r.URL.Path)
		assert.Equal(t, "Bearer tok-utilities", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, map[string]any{"id": 77, "status": "PROCESSING", "referenceId": "ref-2", "message": "queued"})
	}))
	defer server.Close()

	svc := NewReloadlyService(testReloadlyConfig(server.URL), &staticTokens{}, logger.Discard())
	result, err := svc.Deliver(context.Background(), model.DeliveryRequest{
		Category:       model.CategoryElectricity,
		OperatorID:     9,
		Amount:         decimal.NewFromInt(4902),
		Destination:    "45012345678",
		IdempotencyKey: "ref-2",
	})
	require.NoError(t, err)

	assert.True(t, result.Succeeded(model.CategoryElectricity))
	assert.Equal(t, "77", result.TransactionID)
	assert.Equal(t, "queued", result.Message)
	assert.Equal(t, "45012345678", body["subscriberAccountNumber"])
	assert.Equal(t, float64(9), body["billerId"])
	assert.Equal(t, "ref-2", body["referenceId"])
}

func TestReloadlyService_DeliverRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid operator", "errorCode": "INVALID_OPERATOR"})
	}))
	defer server.Close()

	svc := NewReloadlyService(testReloadlyConfig(server.URL), &staticTokens{}, logger.Discard())
	_, err := svc.Deliver(context.Background(), model.DeliveryRequest{
		Category:       model.CategoryData,
		OperatorID:     342,
		Amount:         decimal.NewFromInt(300),
		Destination:    "+2348031234567",
		IdempotencyKey: "ref-3",
	})
	require.Error(t, err)
	assert.True(t, errx.Is(err, errx.KindDeliveryFailed))

	e, ok := errx.As(err)
	require.True(t, ok)
	assert.Contains(t, e.Detail, "Invalid operator")
}

func TestReloadlyService_DeliverTopupNotSuccessful(t *testing.T) {
	tests := []struct {
		name    string
		body    map[string]any
		message string
	}{
		{"failed with message", map[string]any{"transactionId": 9, "status": "FAILED", "message": "Recipient number is barred"}, "Recipient number is barred"},
		{"processing", map[string]any{"transactionId": 10, "status": "PROCESSING"}, ""},
		{"pending", map[string]any{"transactionId": 11, "status": "PENDING"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, tt.body)
			}))
			defer server.Close()

			svc := NewReloadlyService(testReloadlyConfig(server.URL), &staticTokens{}, logger.Discard())
			result, err := svc.Deliver(context.Background(), model.DeliveryRequest{
				Category:       model.CategoryAirtime,
				OperatorID:     341,
				Amount:         decimal.NewFromInt(1500),
				Destination:    "+2348031234567",
				IdempotencyKey: "ref-9",
			})
			require.NoError(t, err)

			assert.False(t, result.Succeeded(model.CategoryAirtime))
			assert.Equal(t, tt.body["status"], result.Status)
			assert.Equal(t, tt.message, result.Message)
		})
	}
}

func TestReloadlyService_UnauthorizedInvalidatesToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Full authentication is required", "errorCode": "INVALID_TOKEN"})
	}))
	defer server.Close()

	tokens := &staticTokens{}
	svc := NewReloadlyService(testReloadlyConfig(server.URL), tokens, logger.Discard())

	_, err := svc.Deliver(context.Background(), model.DeliveryRequest{
		Category:       model.CategoryCableTV,
		OperatorID:     10,
		Amount:         decimal.NewFromInt(4000),
		Destination:    "7023456789",
		IdempotencyKey: "ref-10",
	})
	require.Error(t, err)
	assert.True(t, errx.Is(err, errx.KindAuthenticationFailure))
	assert.Equal(t, []string{"utilities=tok-utilities"}, tokens.invalidated)

	_, err = svc.ListOperators(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"utilities=tok-utilities", "topups=tok-topups"}, tokens.invalidated)
}

func TestReloadlyService_Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/topups-api/topups/reports/transactions":
			if r.URL.Query().Get("customIdentifier") != "ref-1" {
				writeJSON(w, http.StatusOK, map[string]any{"content": []any{}})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"content": []map[string]any{
				{"transactionId": 4521, "status": "SUCCESSFUL", "customIdentifier": "ref-1", "operatorName": "MTN Nigeria"},
			}})
		case "/utilities-api/transactions":
			assert.Equal(t, "ref-2", r.URL.Query().Get("referenceId"))
			writeJSON(w, http.StatusOK, map[string]any{"content": []map[string]any{
				{"code": "PAYMENT_PROCESSED", "transaction": map[string]any{
					"id": 77, "status": "SUCCESSFUL", "referenceId": "ref-2",
					"billDetails": map[string]any{"billerName": "Ikeja Electricity Prepaid"},
				}},
			}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	svc := NewReloadlyService(testReloadlyConfig(server.URL), &staticTokens{}, logger.Discard())
	ctx := context.Background()

	status, err := svc.Status(ctx, "ref-1", model.CategoryAirtime)
	require.NoError(t, err)
	assert.Equal(t, "SUCCESSFUL", status.Status)
	assert.Equal(t, "4521", status.TransactionID)
	assert.Equal(t, "MTN Nigeria", status.OperatorName)

	status, err = svc.Status(ctx, "ref-2", model.CategoryElectricity)
	require.NoError(t, err)
	assert.Equal(t, "77", status.TransactionID)
	assert.Equal(t, "Ikeja Electricity Prepaid", status.OperatorName)

	_, err = svc.Status(ctx, "missing", model.CategoryData)
	assert.True(t, errx.Is(err, errx.KindTransactionNotFound))
}

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"+2348031234567", "+2348031234567"},
		{"08031234567", "+2348031234567"},
		{"8031234567", "+2348031234567"},
		{" 0803 123 4567 ", "+2348031234567"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPhone(tt.raw, "+234"))
		})
	}

	assert.Equal(t, "8031234567", NationalNumber("+2348031234567", "+234"))
}
