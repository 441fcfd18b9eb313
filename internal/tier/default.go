package tier

import "github.com/fortunaworks/spinvault/internal/domain"

// Default returns the standard five-tier table. Weights are in units of
// 1/10000: draws 0..7749 hit tier 0, 7750..9249 tier 1, 9250..9749 tier 2,
// 9750..9949 tier 3 and 9950..9999 tier 4. Amounts are base units (100 base
// units = 1 display unit).
func Default() *Table {
	table, err := NewTable([]domain.RewardTier{
		{
			Name:   "common",
			Weight: 7750,
			Items: []domain.RewardItem{
				{Asset: domain.AssetPrimary, Amount: 100, FallbackAmount: 0},
			},
		},
		{
			Name:   "uncommon",
			Weight: 1500,
			Items: []domain.RewardItem{
				{Asset: domain.AssetPrimary, Amount: 500, FallbackAmount: 0},
			},
		},
		{
			Name:   "rare",
			Weight: 500,
			Items: []domain.RewardItem{
				{Asset: "spinvault_gem", Amount: 100, FallbackAmount: 800},
			},
		},
		{
			Name:   "epic",
			Weight: 200,
			Items: []domain.RewardItem{
				{Asset: "spinvault_gem", Amount: 500, FallbackAmount: 4000},
				{Asset: domain.AssetPrimary, Amount: 1000, FallbackAmount: 0},
			},
		},
		{
			Name:   "jackpot",
			Weight: 50,
			Items: []domain.RewardItem{
				{Asset: "spinvault_relic", Amount: 100, FallbackAmount: 10000},
			},
		},
	})
	if err != nil {
		// The built-in table is statically correct; reaching this is a bug.
		panic(err)
	}
	return table
}
