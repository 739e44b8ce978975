package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"billpay-settlement/internal/errx"
	"billpay-settlement/internal/model"
	"billpay-settlement/pkg/logger"
)

// Settler settles payments and reports delivery status
type Settler interface {
	Settle(ctx context.Context, reference string) (*model.SettlementOutcome, error)
	Status(ctx context.Context, reference string) (*model.DeliveryStatus, error)
}

// SettlementHandler handles settlement requests
type SettlementHandler struct {
	settler Settler
	logger  *logger.Logger
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(settler Settler, log *logger.Logger) *SettlementHandler {
	return &SettlementHandler{
		settler: settler,
		logger:  log,
	}
}

// Settle handles POST /api/v1/settlements
func (h *SettlementHandler) Settle(w http.ResponseWriter, r *http.Request) {
	var req model.SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, h.logger, errx.New(errx.KindInvalidRequest, "invalid JSON body").WithDetail(err.Error()))
		return
	}
	if strings.TrimSpace(req.Reference) == "" {
		sendError(w, h.logger, errx.New(errx.KindInvalidRequest, "reference is required"))
		return
	}

	outcome, err := h.settler.Settle(r.Context(), req.Reference)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}

	sendSuccessResponse(w, "Transaction processed successfully", outcome)
}

// Status handles GET /api/v1/settlements/{reference}/status
func (h *SettlementHandler) Status(w http.ResponseWriter, r *http.Request) {
	reference := r.PathValue("reference")

	status, err := h.settler.Status(r.Context(), reference)
	if err != nil {
		sendError(w, h.logger, err)
		return
	}

	sendSuccessResponse(w, "Transaction status retrieved", status)
}
