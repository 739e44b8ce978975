// Package errx defines the typed errors surfaced by settlement and catalog operations.
package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the stable classification of a failure
type Kind string

const (
	KindAuthenticationFailure     Kind = "AuthenticationFailure"
	KindTransportError            Kind = "TransportError"
	KindPaymentVerificationFailed Kind = "PaymentVerificationFailed"
	KindProductNotFound           Kind = "ProductNotFound"
	KindProductNotConfigured      Kind = "ProductNotConfigured"
	KindDeliveryFailed            Kind = "DeliveryFailed"
	KindInvalidRequest            Kind = "InvalidRequest"
	KindTransactionNotFound       Kind = "TransactionNotFound"
	KindInternal                  Kind = "Internal"
)

var kindCodes = map[Kind]string{
	KindAuthenticationFailure:     "ERR_VENDOR_AUTHENTICATION",
	KindTransportError:            "ERR_UPSTREAM_UNAVAILABLE",
	KindPaymentVerificationFailed: "ERR_PAYMENT_VERIFICATION_FAILED",
	KindProductNotFound:           "ERR_PRODUCT_NOT_FOUND",
	KindProductNotConfigured:      "ERR_PRODUCT_NOT_CONFIGURED",
	KindDeliveryFailed:            "ERR_DELIVERY_FAILED",
	KindInvalidRequest:            "ERR_INVALID_PARAMETER",
	KindTransactionNotFound:       "ERR_TRANSACTION_NOT_FOUND",
	KindInternal:                  "ERR_INTERNAL_SERVER",
}

var kindStatus = map[Kind]int{
	KindAuthenticationFailure:     http.StatusBadGateway,
	KindTransportError:            http.StatusGatewayTimeout,
	KindPaymentVerificationFailed: http.StatusBadRequest,
	KindProductNotFound:           http.StatusUnprocessableEntity,
	KindProductNotConfigured:      http.StatusUnprocessableEntity,
	KindDeliveryFailed:            http.StatusBadGateway,
	KindInvalidRequest:            http.StatusBadRequest,
	KindTransactionNotFound:       http.StatusNotFound,
	KindInternal:                  http.StatusInternalServerError,
}

// Error wraps an underlying error with a kind, a safe message and the vendor detail.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := string(e.Kind) + ": " + e.Message
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the stable API error code of the kind.
func (e *Error) Code() string {
	if code, ok := kindCodes[e.Kind]; ok {
		return code
	}
	return kindCodes[KindInternal]
}

// Status returns the HTTP status that represents the kind.
func (e *Error) Status() int {
	if status, ok := kindStatus[e.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error of the given kind around err.
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithDetail returns a copy of e carrying the vendor-supplied detail.
func (e *Error) WithDetail(detail string) *Error {
	cp := *e
	cp.Detail = detail
	return &cp
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindInternal when err is not typed.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
