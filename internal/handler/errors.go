package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Lookup error messages
	ErrMsgQuotaLookupFailed   = "Failed to look up spin quota"
	ErrMsgJackpotLookupFailed = "Failed to look up jackpot state"

	// Admin operation error messages
	ErrMsgWithdrawFailed = "Failed to withdraw house funds"
)

// Success messages
const (
	MsgEnginePaused    = "Spin engine paused"
	MsgEngineUnpaused  = "Spin engine unpaused"
	MsgContributionSet = "Contribution rate updated"
	MsgSeedSet         = "Seed amount updated"
	MsgWithdrawDone    = "Withdrawal submitted"
)
