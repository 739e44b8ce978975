package handler

import (
	"encoding/json"
	"net/http"

	"billpay-settlement/internal/errx"
	"billpay-settlement/internal/model"
	"billpay-settlement/pkg/logger"
)

// sendSuccessResponse writes the success envelope
func sendSuccessResponse(w http.ResponseWriter, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(model.APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// sendErrorResponse writes the error envelope
func sendErrorResponse(w http.ResponseWriter, code, message, detail string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(model.APIResponse{
		Status:  "error",
		Message: message,
		Error: &model.APIError{
			Code:    code,
			Message: message,
			Detail:  detail,
		},
	})
}

// sendError maps a service error to its status and code. Untyped errors are
// logged and reported as internal without leaking their text.
func sendError(w http.ResponseWriter, log *logger.Logger, err error) {
	e, ok := errx.As(err)
	if !ok {
		log.WithError(err).Error("Unhandled error")
		e = errx.New(errx.KindInternal, "internal server error")
	}
	sendErrorResponse(w, e.Code(), e.Message, e.Detail, e.Status())
}
