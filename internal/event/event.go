package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Engine event types
const (
	SpinRequested       Type = "spin.requested"
	SpinResolved        Type = "spin.result"
	RewardTokenDepleted Type = "reward.token_depleted"
	JackpotWon          Type = "jackpot.won"
)

// Typed event payloads for type safety

// SpinRequestedPayloadV1 is emitted when a randomness request has been
// submitted and its pending record stored.
type SpinRequestedPayloadV1 struct {
	UserID    string `json:"user_id"`
	RequestID string `json:"request_id"`
	Premium   bool   `json:"premium"`
	Timestamp int64  `json:"timestamp"`
}

// SpinResolvedPayloadV1 is emitted when a fulfillment resolves a spin.
type SpinResolvedPayloadV1 struct {
	UserID    string `json:"user_id"`
	RequestID string `json:"request_id"`
	TierIndex int    `json:"tier_index"`
	Premium   bool   `json:"premium"`
	Timestamp int64  `json:"timestamp"`
}

// RewardTokenDepletedPayloadV1 is emitted when the vault reports failure for
// a reward item. AttemptedAmount is the original amount, not the fallback.
type RewardTokenDepletedPayloadV1 struct {
	Asset           string `json:"asset"`
	UserID          string `json:"user_id"`
	AttemptedAmount int64  `json:"attempted_amount"`
	Timestamp       int64  `json:"timestamp"`
}

// JackpotWonPayloadV1 is emitted when the jackpot tier is drawn and the pool
// is paid out.
type JackpotWonPayloadV1 struct {
	WinnerID  string `json:"winner_id"`
	Amount    int64  `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewSpinRequestedEvent creates a spin-requested event.
func NewSpinRequestedEvent(userID, requestID string, premium bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SpinRequested,
		Payload: SpinRequestedPayloadV1{
			UserID:    userID,
			RequestID: requestID,
			Premium:   premium,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewSpinResolvedEvent creates a spin-result event.
func NewSpinResolvedEvent(userID, requestID string, tierIndex int, premium bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SpinResolved,
		Payload: SpinResolvedPayloadV1{
			UserID:    userID,
			RequestID: requestID,
			TierIndex: tierIndex,
			Premium:   premium,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewRewardTokenDepletedEvent creates a reward-token-depleted event.
func NewRewardTokenDepletedEvent(asset, userID string, attemptedAmount int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RewardTokenDepleted,
		Payload: RewardTokenDepletedPayloadV1{
			Asset:           asset,
			UserID:          userID,
			AttemptedAmount: attemptedAmount,
			Timestamp:       time.Now().Unix(),
		},
	}
}

// NewJackpotWonEvent creates a jackpot-won event.
func NewJackpotWonEvent(winnerID string, amount int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    JackpotWon,
		Payload: JackpotWonPayloadV1{
			WinnerID:  winnerID,
			Amount:    amount,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously;
// handler errors are collected and do not stop later handlers.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
