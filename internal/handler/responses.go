package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fortunaworks/spinvault/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; the error can only be logged
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgUnknownError         = "Unknown error"
	ErrMsgInvalidRequestError  = "Invalid request. Please check your inputs."
	ErrMsgAuthFailedError      = "Authentication failed. Please check your API key."
	ErrMsgTooManyRequestsError = "Too many requests. Please try again later."

	ErrMsgQuotaExceededError  = "Daily spin limit reached. Come back tomorrow."
	ErrMsgEnginePausedError   = "Spins are temporarily paused. Please try again later."
	ErrMsgUnknownRequestError = "Unknown or already fulfilled request"
	ErrMsgPaymentFailedError  = "Could not collect the spin cost. Check your balance."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrQuotaExceeded):
		return http.StatusTooManyRequests, ErrMsgQuotaExceededError
	case errors.Is(err, domain.ErrEnginePaused):
		return http.StatusServiceUnavailable, ErrMsgEnginePausedError
	case errors.Is(err, domain.ErrUnknownRequest):
		return http.StatusNotFound, ErrMsgUnknownRequestError
	case errors.Is(err, domain.ErrTransferFailed):
		return http.StatusPaymentRequired, ErrMsgPaymentFailedError
	case errors.Is(err, domain.ErrInvalidParameter):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrMsgAuthFailedError
	default:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}
}
