package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Repository Operations
const (
	ErrMsgFailedToGetAccount     = "failed to get quota account"
	ErrMsgFailedToUpsertAccount  = "failed to upsert quota account"
	ErrMsgFailedToCreatePending  = "failed to create pending spin"
	ErrMsgFailedToConsumePending = "failed to consume pending spin"
	ErrMsgFailedToCountPending   = "failed to count pending spins"
	ErrMsgFailedToGetJackpot     = "failed to get jackpot state"
	ErrMsgFailedToInitJackpot    = "failed to initialize jackpot state"
	ErrMsgFailedToCreditPool     = "failed to credit jackpot pool"
	ErrMsgFailedToResetPool      = "failed to reset jackpot pool"
	ErrMsgFailedToUpdateJackpot  = "failed to update jackpot state"
)
