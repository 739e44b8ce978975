package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billpay-settlement/internal/errx"
	"billpay-settlement/internal/model"
	"billpay-settlement/pkg/logger"
)

type fakeSettler struct {
	outcome   *model.SettlementOutcome
	status    *model.DeliveryStatus
	err       error
	reference string
}

func (f *fakeSettler) Settle(ctx context.Context, reference string) (*model.SettlementOutcome, error) {
	f.reference = reference
	return f.outcome, f.err
}

func (f *fakeSettler) Status(ctx context.Context, reference string) (*model.DeliveryStatus, error) {
	f.reference = reference
	return f.status, f.err
}

type fakeCatalog struct {
	catalog model.Catalog
	mode    model.SyncMode
	result  *model.SyncResult
	update  *model.OperatorIDUpdateResult
	err     error
	matched map[model.Category]map[string]model.MatchedOperator
}

func (f *fakeCatalog) Catalog() model.Catalog { return f.catalog }

func (f *fakeCatalog) Snapshot() model.Catalog { return f.catalog }

func (f *fakeCatalog) Synchronize(ctx context.Context, mode model.SyncMode) (*model.SyncResult, error) {
	f.mode = mode
	return f.result, f.err
}

func (f *fakeCatalog) ApplyOperatorIDs(matched map[model.Category]map[string]model.MatchedOperator) (*model.OperatorIDUpdateResult, error) {
	f.matched = matched
	return f.update, f.err
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSettlementHandler_Settle(t *testing.T) {
	settler := &fakeSettler{outcome: &model.SettlementOutcome{
		Reference:     "ref-1",
		State:         model.StateDelivered,
		TransactionID: "4521",
		Message:       "MTN Airtime delivered (SUCCESSFUL)",
	}}
	h := NewSettlementHandler(settler, logger.Discard())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/settlements", strings.NewReader(`{"reference":"ref-1"}`))
	rec := httptest.NewRecorder()
	h.Settle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ref-1", settler.reference)

	body := decode(t, rec)
	assert.Equal(t, "success", body["status"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "DELIVERED", data["state"])
	assert.Equal(t, "4521", data["transaction_id"])
	assert.NotContains(t, rec.Body.String(), "margin")
	assert.NotContains(t, rec.Body.String(), "vendor_amount")
}

func TestSettlementHandler_SettleErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
		code   string
	}{
		{"invalid json", `{`, nil, http.StatusBadRequest, "ERR_INVALID_PARAMETER"},
		{"missing reference", `{}`, nil, http.StatusBadRequest, "ERR_INVALID_PARAMETER"},
		{"payment not verified", `{"reference":"r"}`, errx.New(errx.KindPaymentVerificationFailed, "payment was not successful"), http.StatusBadRequest, "ERR_PAYMENT_VERIFICATION_FAILED"},
		{"product not configured", `{"reference":"r"}`, errx.New(errx.KindProductNotConfigured, "product has no vendor operator id"), http.StatusUnprocessableEntity, "ERR_PRODUCT_NOT_CONFIGURED"},
		{"delivery failed", `{"reference":"r"}`, errx.New(errx.KindDeliveryFailed, "Recipient number is barred"), http.StatusBadGateway, "ERR_DELIVERY_FAILED"},
		{"untyped", `{"reference":"r"}`, errors.New("secret internals"), http.StatusInternalServerError, "ERR_INTERNAL_SERVER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSettlementHandler(&fakeSettler{err: tt.err}, logger.Discard())
			rec := httptest.NewRecorder()
			h.Settle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/settlements", strings.NewReader(tt.body)))

			assert.Equal(t, tt.status, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, "error", body["status"])
			assert.Equal(t, tt.code, body["error"].(map[string]any)["error_code"])
			assert.NotContains(t, rec.Body.String(), "secret internals")
		})
	}
}

func TestSettlementHandler_Status(t *testing.T) {
	settler := &fakeSettler{status: &model.DeliveryStatus{Reference: "ref-1", TransactionID: "77", Status: "SUCCESSFUL"}}
	h := NewSettlementHandler(settler, logger.Discard())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/settlements/{reference}/status", h.Status)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/settlements/ref-1/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ref-1", settler.reference)
	assert.Equal(t, "SUCCESSFUL", decode(t, rec)["data"].(map[string]any)["status"])

	settler.err = errx.New(errx.KindTransactionNotFound, "vendor has no transaction for this reference")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/settlements/ref-2/status", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogHandler_GetCatalog(t *testing.T) {
	base := decimal.NewFromInt(300)
	catalog := &fakeCatalog{catalog: model.Catalog{
		model.CategoryData: {{Category: model.CategoryData, ProductKey: "MTN-1GB-DAILY", BasePrice: &base, OperatorID: 5}},
	}}
	h := NewCatalogHandler(catalog, model.SyncFillGaps, logger.Discard())

	rec := httptest.NewRecorder()
	h.GetCatalog(rec, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	products := data["data"].([]any)
	assert.Equal(t, "MTN-1GB-DAILY", products[0].(map[string]any)["productKey"])
}

func TestCatalogHandler_Synchronize(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		want   model.SyncMode
		status int
	}{
		{"default mode", "", model.SyncFillGaps, http.StatusOK},
		{"full", "?mode=full", model.SyncFull, http.StatusOK},
		{"fill", "?mode=fill", model.SyncFillGaps, http.StatusOK},
		{"invalid", "?mode=everything", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := &fakeCatalog{result: &model.SyncResult{MatchedCount: 3}}
			h := NewCatalogHandler(catalog, model.SyncFillGaps, logger.Discard())

			rec := httptest.NewRecorder()
			h.Synchronize(rec, httptest.NewRequest(http.MethodPost, "/api/v1/catalog/sync"+tt.query, nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.want, catalog.mode)
		})
	}
}

func TestCatalogHandler_SynchronizeFailure(t *testing.T) {
	catalog := &fakeCatalog{err: errx.New(errx.KindAuthenticationFailure, "vendor rejected credentials")}
	h := NewCatalogHandler(catalog, model.SyncFull, logger.Discard())

	rec := httptest.NewRecorder()
	h.Synchronize(rec, httptest.NewRequest(http.MethodPost, "/api/v1/catalog/sync", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, model.SyncFull, catalog.mode)
}

func TestCatalogHandler_UpdateOperatorIDs(t *testing.T) {
	catalog := &fakeCatalog{update: &model.OperatorIDUpdateResult{UpdatedCount: 1}}
	h := NewCatalogHandler(catalog, model.SyncFillGaps, logger.Discard())

	body := `{"matchedIds":{"airtime":{"MTN":{"operatorId":341,"name":"MTN Nigeria"}}}}`
	rec := httptest.NewRecorder()
	h.UpdateOperatorIDs(rec, httptest.NewRequest(http.MethodPost, "/api/v1/catalog/operator-ids", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(341), catalog.matched[model.CategoryAirtime]["MTN"].OperatorID)
	assert.Equal(t, float64(1), decode(t, rec)["data"].(map[string]any)["updatedCount"])

	rec = httptest.NewRecorder()
	h.UpdateOperatorIDs(rec, httptest.NewRequest(http.MethodPost, "/api/v1/catalog/operator-ids", strings.NewReader("nope")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type fakeNotifier struct{}

func (fakeNotifier) Status() map[string]interface{} {
	return map[string]interface{}{"channel": "log", "connected": true}
}

type fakeLedger struct {
	count int64
	err   error
}

func (f fakeLedger) Count(ctx context.Context) (int64, error) { return f.count, f.err }

func TestHealthHandler_CheckHealth(t *testing.T) {
	catalog := &fakeCatalog{catalog: model.Catalog{
		model.CategoryAirtime: {{ProductKey: "MTN", OperatorID: 341}, {ProductKey: "GLO"}},
	}}
	h := NewHealthHandler(fakeNotifier{}, fakeLedger{count: 7}, catalog, logger.Discard())

	rec := httptest.NewRecorder()
	h.CheckHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, float64(7), body["ledger"].(map[string]any)["entries"])
	assert.Equal(t, float64(2), body["catalog"].(map[string]any)["products"])
	assert.Equal(t, float64(1), body["catalog"].(map[string]any)["configured"])
	assert.Equal(t, "log", body["notifier"].(map[string]any)["channel"])
}

func TestHealthHandler_LedgerUnavailable(t *testing.T) {
	h := NewHealthHandler(fakeNotifier{}, fakeLedger{err: errors.New("database is locked")}, &fakeCatalog{}, logger.Discard())

	rec := httptest.NewRecorder()
	h.CheckHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["ledger"].(map[string]any)["available"])
}
