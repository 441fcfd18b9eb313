package domain

import "time"

// SpinKind distinguishes the two spin entry points.
type SpinKind string

const (
	SpinKindFree    SpinKind = "free"
	SpinKindPremium SpinKind = "premium"
)

// QuotaAccount tracks a user's rolling daily spin counters.
// Counters reset lazily the first time the account is touched on a new day.
type QuotaAccount struct {
	UserID                string    `json:"user_id"`
	LastSpinDay           int64     `json:"last_spin_day"`
	FreeSpinsUsedToday    int       `json:"free_spins_used_today"`
	PremiumSpinsUsedToday int       `json:"premium_spins_used_today"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// PendingSpin correlates a submitted randomness request with its eventual
// fulfillment callback. It exists from submission until exactly one
// fulfillment consumes it.
type PendingSpin struct {
	RequestID string    `json:"request_id"`
	UserID    string    `json:"user_id"`
	Premium   bool      `json:"premium"`
	CreatedAt time.Time `json:"created_at"`
}

// RewardItem is a single payable entry inside a tier. FallbackAmount is
// denominated in the primary in-game asset and is paid instead of Amount
// when the vault reports failure for the primary payout.
type RewardItem struct {
	Asset          string `json:"asset"`
	Amount         int64  `json:"amount"`
	FallbackAmount int64  `json:"fallback_amount"`
}

// RewardTier is one outcome of a spin. Weight is expressed in units of
// 1/10000; the weights of a full table must sum to exactly 10000.
type RewardTier struct {
	Name   string       `json:"name"`
	Weight int          `json:"weight"`
	Items  []RewardItem `json:"items"`
}

// JackpotState is the shared progressive pool. Pool only grows through
// premium-spin contributions and only shrinks by a full payout-and-reset
// to SeedAmount.
type JackpotState struct {
	Pool           int64     `json:"pool"`
	ContributionBP int       `json:"contribution_bp"` // basis points of premium cost, capped at 1000
	SeedAmount     int64     `json:"seed_amount"`
	WinningTier    int       `json:"winning_tier"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SpinOutcome is the resolved result of one fulfilled spin.
type SpinOutcome struct {
	RequestID   string `json:"request_id"`
	UserID      string `json:"user_id"`
	TierIndex   int    `json:"tier_index"`
	TierName    string `json:"tier_name"`
	Premium     bool   `json:"premium"`
	JackpotPaid int64  `json:"jackpot_paid"`
}
