package reward

import (
	"context"

	"github.com/fortunaworks/spinvault/internal/domain"
	"github.com/fortunaworks/spinvault/internal/event"
	"github.com/fortunaworks/spinvault/internal/logger"
	"github.com/fortunaworks/spinvault/internal/metrics"
	"github.com/fortunaworks/spinvault/internal/treasury"
)

// Service pays out the items of a resolved tier.
type Service interface {
	// Disburse pays each item of the tier to the user in sequence order.
	// Items are processed independently; one item's failure never blocks the
	// rest, so Disburse itself cannot fail.
	Disburse(ctx context.Context, tier domain.RewardTier, userID string, premium bool)
}

type service struct {
	vault     treasury.Vault
	publisher *event.ResilientPublisher
}

// NewService creates a new reward service.
func NewService(vault treasury.Vault, publisher *event.ResilientPublisher) Service {
	return &service{
		vault:     vault,
		publisher: publisher,
	}
}

// Disburse implements [Service].
func (s *service) Disburse(ctx context.Context, tier domain.RewardTier, userID string, premium bool) {
	log := logger.FromContext(ctx)

	for _, item := range tier.Items {
		amount := applyPremiumBonus(item.Amount, premium)
		if amount == 0 {
			continue
		}

		metrics.RewardPayouts.WithLabelValues(item.Asset).Inc()

		ok, err := s.vault.DistributeReward(ctx, userID, item.Asset, amount)
		if err != nil {
			log.Warn("Reward payout call failed", "error", err, "asset", item.Asset, "user_id", userID, "amount", amount)
		}
		if ok {
			continue
		}

		if item.FallbackAmount <= 0 {
			log.Warn("Reward payout failed with no fallback configured",
				"asset", item.Asset, "user_id", userID, "amount", amount)
			continue
		}

		// The depletion notification carries the originally attempted amount,
		// not the fallback.
		s.publisher.PublishWithRetry(ctx, event.NewRewardTokenDepletedEvent(item.Asset, userID, amount))
		metrics.RewardFallbacks.WithLabelValues(item.Asset).Inc()

		fallback := applyPremiumBonus(item.FallbackAmount, premium)

		// Fallback payout is fire-and-forget; its own success is not checked.
		if _, err := s.vault.DistributeReward(ctx, userID, domain.AssetPrimary, fallback); err != nil {
			log.Warn("Fallback payout call failed", "error", err, "user_id", userID, "amount", fallback)
		}
	}
}

// applyPremiumBonus scales an amount by 120/100 with integer truncation for
// premium spins.
func applyPremiumBonus(amount int64, premium bool) int64 {
	if !premium {
		return amount
	}
	return amount * domain.PremiumBonusNumerator / domain.PremiumBonusDenominator
}
