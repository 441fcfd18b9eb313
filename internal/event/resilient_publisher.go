package event

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/fortunaworks/spinvault/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries     int
	RetryDelay     time.Duration
	DeadLetterPath string
}

// DefaultResilientConfig returns the standard retry configuration.
func DefaultResilientConfig(deadLetterPath string) ResilientConfig {
	return ResilientConfig{
		MaxRetries:     RetryMaxAttempts,
		RetryDelay:     RetryInitialDelaySeconds * time.Second,
		DeadLetterPath: deadLetterPath,
	}
}

// ResilientPublisher wraps an Event Bus to add retry logic and dead letter queuing
type ResilientPublisher struct {
	inner  Bus
	config ResilientConfig
	mu     sync.Mutex // Protects file writes
	wg     sync.WaitGroup
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) *ResilientPublisher {
	return &ResilientPublisher{
		inner:  inner,
		config: config,
	}
}

// PublishWithRetry attempts to publish an event. If the first attempt fails
// it launches a background retry loop and returns immediately; the caller is
// decoupled from the retry mechanism.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.Warn("Failed to publish event, initiating async retry",
		"event_type", event.Type,
		"error", err,
		"retries", p.config.MaxRetries)

	p.wg.Add(1)
	go p.retryLoop(event)
}

func (p *ResilientPublisher) retryLoop(event Event) {
	defer p.wg.Done()

	// Detached context: the original request context may already be cancelled.
	ctx := context.Background()

	for i := 1; i <= p.config.MaxRetries; i++ {
		time.Sleep(p.config.RetryDelay * time.Duration(i)) // linear backoff

		err := p.inner.Publish(ctx, event)
		if err == nil {
			logger.Info("Successfully published event after retry",
				"event_type", event.Type,
				"attempt", i)
			return
		}

		logger.Warn("Retry failed",
			"event_type", event.Type,
			"attempt", i,
			"error", err)
	}

	p.writeToDeadLetter(event)
}

func (p *ResilientPublisher) writeToDeadLetter(event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := os.OpenFile(p.config.DeadLetterPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		logger.Error("Failed to open dead letter file", "error", err, "path", p.config.DeadLetterPath)
		return
	}
	defer f.Close()

	type deadLetterEntry struct {
		Timestamp time.Time `json:"timestamp"`
		Event     Event     `json:"event"`
	}

	entry := deadLetterEntry{
		Timestamp: time.Now(),
		Event:     event,
	}

	if err := json.NewEncoder(f).Encode(entry); err != nil {
		logger.Error("Failed to write to dead letter file", "error", err)
		return
	}
	logger.Info("Event written to dead letter queue", "event_type", event.Type)
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Wait blocks until all in-flight retry loops complete. Used during shutdown.
func (p *ResilientPublisher) Wait() {
	p.wg.Wait()
}
