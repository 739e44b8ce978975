package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"billpay-settlement/internal/errx"
	"billpay-settlement/internal/model"
	"billpay-settlement/pkg/logger"
)

const ledgerWriteTimeout = 5 * time.Second

// SettlementService turns a verified customer payment into exactly one vendor delivery
type SettlementService struct {
	verifier    PaymentVerifier
	catalog     CatalogReader
	pricing     *PricingEngine
	vendor      DeliveryProvider
	ledger      SettlementLedger
	notifier    Notifier
	dialingCode string
	logger      *logger.Logger
}

// NewSettlementService creates a new settlement orchestrator
func NewSettlementService(
	verifier PaymentVerifier,
	catalog CatalogReader,
	pricing *PricingEngine,
	vendor DeliveryProvider,
	ledger SettlementLedger,
	notifier Notifier,
	dialingCode string,
	log *logger.Logger,
) *SettlementService {
	return &SettlementService{
		verifier:    verifier,
		catalog:     catalog,
		pricing:     pricing,
		vendor:      vendor,
		ledger:      ledger,
		notifier:    notifier,
		dialingCode: dialingCode,
		logger:      log,
	}
}

// Settle verifies the payment behind reference, resolves and prices the product
// and delivers it once. Nothing is retried; the reference doubles as the
// vendor idempotency key.
func (s *SettlementService) Settle(ctx context.Context, reference string) (*model.SettlementOutcome, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, errx.New(errx.KindInvalidRequest, "reference is required")
	}

	log := s.logger.WithReference(reference)
	rec := &model.SettlementRecord{Reference: reference, State: model.StateReceived}
	log.Info("Settlement received")

	outcome, err := s.settle(ctx, log, rec)
	if err != nil {
		rec.State = model.StateFailed
		rec.Message = err.Error()
		log.WithError(err).Warn("Settlement failed", "kind", errx.KindOf(err))
		s.alert(ctx, log, rec, err)
	}
	s.record(ctx, log, rec)

	return outcome, err
}

func (s *SettlementService) settle(ctx context.Context, log *logger.Logger, rec *model.SettlementRecord) (*model.SettlementOutcome, error) {
	payment, err := s.verify(ctx, rec.Reference)
	if err != nil {
		return nil, err
	}
	rec.State = model.StateVerified
	rec.CustomerAmount = payment.Amount

	product, err := s.resolve(payment.Metadata)
	if err != nil {
		return nil, err
	}
	rec.State = model.StateResolved
	rec.Category = product.Category
	rec.ProductKey = product.ProductKey
	rec.OperatorID = product.OperatorID
	log = log.WithCategory(string(product.Category))

	req := model.SettlementRequest{
		Reference:      rec.Reference,
		Product:        product,
		CustomerAmount: payment.Amount,
		Destination:    s.destination(product.Category, payment.Metadata),
	}

	vendorAmount, err := s.price(req)
	if err != nil {
		return nil, err
	}
	rec.State = model.StatePriced
	rec.VendorAmount = vendorAmount
	rec.Margin = req.CustomerAmount.Sub(vendorAmount)
	log.Info("Settlement priced",
		"product_key", product.ProductKey,
		"customer_amount", req.CustomerAmount.String(),
		"vendor_amount", vendorAmount.String(),
		"margin", rec.Margin.String(),
	)

	if req.Destination == "" {
		return nil, errx.New(errx.KindPaymentVerificationFailed, "payment metadata carries no delivery destination")
	}
	rec.Destination = req.Destination

	result, err := s.vendor.Deliver(ctx, model.DeliveryRequest{
		Category:       product.Category,
		OperatorID:     product.OperatorID,
		Amount:         vendorAmount,
		Destination:    req.Destination,
		IdempotencyKey: req.Reference,
	})
	if err != nil {
		if errx.Is(err, errx.KindAuthenticationFailure) || errx.Is(err, errx.KindDeliveryFailed) {
			return nil, err
		}
		return nil, errx.Wrap(errx.KindDeliveryFailed, err, "vendor delivery failed")
	}

	rec.VendorStatus = result.Status
	rec.VendorTransactionID = result.TransactionID
	if !result.Succeeded(product.Category) {
		message := result.Message
		if message == "" {
			message = "vendor returned status " + result.Status
		}
		return nil, errx.New(errx.KindDeliveryFailed, message).WithDetail(result.Status)
	}

	rec.State = model.StateDelivered
	rec.Message = result.Message
	log.Info("Settlement delivered",
		"vendor_status", result.Status,
		"vendor_transaction_id", result.TransactionID,
	)

	return &model.SettlementOutcome{
		Reference:     rec.Reference,
		State:         model.StateDelivered,
		TransactionID: result.TransactionID,
		Message:       fmt.Sprintf("%s delivered (%s)", product.Name, result.Status),
	}, nil
}

func (s *SettlementService) verify(ctx context.Context, reference string) (*model.VerifiedPayment, error) {
	payment, err := s.verifier.Verify(ctx, reference)
	if err != nil {
		if _, ok := errx.As(err); ok {
			return nil, err
		}
		return nil, errx.Wrap(errx.KindTransportError, err, "payment verification unavailable")
	}

	switch {
	case payment.Status != model.PaymentStatusSuccess:
		return nil, errx.New(errx.KindPaymentVerificationFailed, "payment was not successful").WithDetail(payment.Status)
	case payment.InnerStatus != model.PaymentInnerStatusSuccess:
		return nil, errx.New(errx.KindPaymentVerificationFailed, "payment was not successful").WithDetail(payment.InnerStatus)
	case payment.Reference != reference:
		return nil, errx.New(errx.KindPaymentVerificationFailed, "payment reference mismatch").WithDetail(payment.Reference)
	}
	return payment, nil
}

func (s *SettlementService) resolve(meta model.PaymentMetadata) (model.Product, error) {
	category, ok := model.ParseCategory(meta.Service)
	if !ok {
		return model.Product{}, errx.New(errx.KindProductNotFound, "unknown service").WithDetail(meta.Service)
	}

	key := meta.PlanID
	if category == model.CategoryAirtime {
		key = meta.Network
	}
	if strings.TrimSpace(key) == "" {
		return model.Product{}, errx.New(errx.KindProductNotFound, "payment metadata names no product")
	}

	product, ok := s.catalog.Lookup(category, key)
	if !ok {
		return model.Product{}, errx.New(errx.KindProductNotFound, "product not found").WithDetail(key)
	}
	if !product.Configured() {
		return model.Product{}, errx.New(errx.KindProductNotConfigured, "product has no vendor operator id").WithDetail(product.ProductKey)
	}
	return product, nil
}

// price returns what the vendor is paid for the product
func (s *SettlementService) price(req model.SettlementRequest) (decimal.Decimal, error) {
	product := req.Product
	if !product.Category.FixedDenomination() {
		return s.pricing.RemoveMarkup(req.CustomerAmount, product.Category), nil
	}
	if product.BasePrice == nil {
		return decimal.Zero, errx.New(errx.KindProductNotConfigured, "product has no base price").WithDetail(product.ProductKey)
	}
	return *product.BasePrice, nil
}

func (s *SettlementService) destination(category model.Category, meta model.PaymentMetadata) string {
	if category.UsesTopups() {
		return FormatPhone(meta.Phone, s.dialingCode)
	}
	return strings.TrimSpace(meta.AccountNumber)
}

// record writes the ledger entry; a ledger failure never changes the outcome.
// The write survives a caller that went away after delivery.
func (s *SettlementService) record(ctx context.Context, log *logger.Logger, rec *model.SettlementRecord) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ledgerWriteTimeout)
	defer cancel()

	if err := s.ledger.Save(ctx, rec); err != nil {
		log.WithError(err).Error("Failed to record settlement", "state", rec.State)
	}
}

// alert tells the operator about failures only they can fix
func (s *SettlementService) alert(ctx context.Context, log *logger.Logger, rec *model.SettlementRecord, err error) {
	switch errx.KindOf(err) {
	case errx.KindProductNotConfigured, errx.KindDeliveryFailed, errx.KindAuthenticationFailure:
	default:
		return
	}

	msg := fmt.Sprintf("Settlement %s failed [%s]\nProduct: %s %s\nAmount: %s\nReason: %s",
		rec.Reference, errx.KindOf(err), rec.Category, rec.ProductKey, rec.CustomerAmount.String(), err.Error())
	if nErr := s.notifier.Notify(ctx, msg); nErr != nil {
		log.WithError(nErr).Warn("Failed to notify operator")
	}
}

// Status returns the vendor's last known status of a settlement
func (s *SettlementService) Status(ctx context.Context, reference string) (*model.DeliveryStatus, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, errx.New(errx.KindInvalidRequest, "reference is required")
	}

	log := s.logger.WithReference(reference)

	rec, err := s.ledger.LatestByReference(ctx, reference)
	switch {
	case err == nil && rec.Category != "":
		return s.vendor.Status(ctx, reference, rec.Category)
	case err != nil && !errx.Is(err, errx.KindTransactionNotFound):
		log.WithError(err).Warn("Ledger lookup failed, asking vendor directly")
	}

	// without a ledger entry ask the topups report first, then utilities
	status, err := s.vendor.Status(ctx, reference, model.CategoryAirtime)
	if err == nil || !errx.Is(err, errx.KindTransactionNotFound) {
		return status, err
	}
	return s.vendor.Status(ctx, reference, model.CategoryElectricity)
}
