package config

// Default engine parameters. Amounts are int64 base units of the primary
// asset; 100 base units equal one display unit.
const (
	DefaultPort = 8080

	DefaultDayLengthSeconds      = 86400
	DefaultDailyFreeSpinLimit    = 3
	DefaultDailyPremiumSpinLimit = 10

	DefaultPremiumSpinCost       = 5000 // 50 display units
	DefaultJackpotContributionBP = 100  // 1% of the premium spin cost
	DefaultJackpotSeedAmount     = 10000
	DefaultJackpotWinningTier    = 4

	DefaultPendingStaleAfterSeconds = 3600
	DefaultSweepIntervalSeconds     = 300
)
