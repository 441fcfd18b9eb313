package domain

// Asset symbol constants - stable identifiers for payout targets.
const (
	// AssetPrimary is the primary in-game asset. Fallback substitutions are
	// always denominated in it, as is the jackpot pool.
	AssetPrimary = "spinvault_token"
)

// Money is held in int64 base units.
const (
	// BaseUnitsPerDisplayUnit converts between base units and the display
	// denomination shown to users.
	BaseUnitsPerDisplayUnit = 100
)

// Tier table constants.
const (
	// DrawSpace is the size of the normalized draw space; tier weights are
	// expressed in units of 1/DrawSpace.
	DrawSpace = 10000

	// TierCount is the number of tiers in a full reward table.
	TierCount = 5
)

// Jackpot constants.
const (
	// MaxContributionBP caps the jackpot contribution at 10% of the premium
	// spin cost.
	MaxContributionBP = 1000

	// BPDenominator converts basis points to a fraction.
	BPDenominator = 10000
)

// Premium bonus multiplier: premium payouts are amount * 120 / 100 with
// integer truncation.
const (
	PremiumBonusNumerator   = 120
	PremiumBonusDenominator = 100
)
