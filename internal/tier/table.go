package tier

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fortunaworks/spinvault/internal/domain"
)

// Table is the fixed ordered reward-tier sequence used for draw resolution.
// It is built once at startup and read-only thereafter.
type Table struct {
	tiers []domain.RewardTier
}

// NewTable validates and wraps an ordered tier sequence. Weights must sum to
// exactly domain.DrawSpace; a table that does not is a configuration bug and
// is rejected here rather than silently skewing selection at runtime.
func NewTable(tiers []domain.RewardTier) (*Table, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("tier table is empty")
	}

	sum := 0
	for i, t := range tiers {
		if t.Weight <= 0 {
			return nil, fmt.Errorf("tier %d (%s): weight must be positive, got %d", i, t.Name, t.Weight)
		}
		for j, item := range t.Items {
			if item.Asset == "" {
				return nil, fmt.Errorf("tier %d (%s) item %d: asset is required", i, t.Name, j)
			}
			if item.Amount < 0 || item.FallbackAmount < 0 {
				return nil, fmt.Errorf("tier %d (%s) item %d: amounts must not be negative", i, t.Name, j)
			}
		}
		sum += t.Weight
	}
	if sum != domain.DrawSpace {
		return nil, fmt.Errorf("tier weights must sum to %d, got %d", domain.DrawSpace, sum)
	}

	return &Table{tiers: tiers}, nil
}

// Load reads a tier table from a JSON config file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tier table file: %w", err)
	}

	var cfg struct {
		Tiers []domain.RewardTier `json:"tiers"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tier table file: %w", err)
	}

	table, err := NewTable(cfg.Tiers)
	if err != nil {
		return nil, fmt.Errorf("tier table %s: %w", path, err)
	}
	return table, nil
}

// Select maps a raw random word to a tier index. The word is normalized into
// [0, DrawSpace) and the ordered tiers are walked accumulating weight; the
// first tier whose cumulative weight strictly exceeds the draw wins.
//
// A draw no tier matches falls back to tier 0. NewTable rejects tables this
// could happen with, so the fallback is unreachable for validated tables; it
// mirrors the original selection policy rather than guessing a new one.
func (t *Table) Select(word uint64) int {
	draw := int(word % domain.DrawSpace)

	cumulative := 0
	for i, tier := range t.tiers {
		cumulative += tier.Weight
		if draw < cumulative {
			return i
		}
	}

	return 0
}

// Tier returns the tier at the given index.
func (t *Table) Tier(index int) domain.RewardTier {
	return t.tiers[index]
}

// Len returns the number of tiers in the table.
func (t *Table) Len() int {
	return len(t.tiers)
}
