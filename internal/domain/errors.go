package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// Quota errors
	ErrMsgQuotaExceeded = "daily spin quota exceeded"

	// Correlation errors
	ErrMsgUnknownRequest = "unknown randomness request"

	// Token ledger errors
	ErrMsgTransferFailed = "token transfer failed"

	// Engine state errors
	ErrMsgEnginePaused = "engine is paused"

	// Admin errors
	ErrMsgInvalidParameter = "invalid parameter"
	ErrMsgUnauthorized     = "unauthorized"
)

// Common domain errors.
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for context.
var (
	// ErrQuotaExceeded is returned when the user already consumed today's
	// allotment of the requested spin kind. Locally rejected, no state change.
	ErrQuotaExceeded = errors.New(ErrMsgQuotaExceeded)

	// ErrUnknownRequest is returned when a fulfillment arrives for a token
	// that is not pending - already consumed or never issued, which are
	// indistinguishable once consumed.
	ErrUnknownRequest = errors.New(ErrMsgUnknownRequest)

	// ErrTransferFailed aborts a premium spin entry wholly; no partial charge.
	ErrTransferFailed = errors.New(ErrMsgTransferFailed)

	// ErrEnginePaused rejects new spin entries while paused. In-flight
	// fulfillments are never blocked by the pause flag.
	ErrEnginePaused = errors.New(ErrMsgEnginePaused)

	ErrInvalidParameter = errors.New(ErrMsgInvalidParameter)
	ErrUnauthorized     = errors.New(ErrMsgUnauthorized)
)
