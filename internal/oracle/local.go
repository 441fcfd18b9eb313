package oracle

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fortunaworks/spinvault/internal/logger"
)

// FulfillFunc receives an issued token and its random words.
type FulfillFunc func(ctx context.Context, requestID string, words []uint64) error

// LocalOracle is a development implementation that issues tokens immediately
// and calls back in-process after a fixed delay with crypto/rand entropy.
// It keeps the submit/fulfill phases asynchronous so the engine exercises the
// same correlation path as with a real oracle.
type LocalOracle struct {
	delay   time.Duration
	mu      sync.RWMutex
	fulfill FulfillFunc
	wg      sync.WaitGroup
}

// NewLocalOracle creates a local oracle with the given callback delay.
func NewLocalOracle(delay time.Duration) *LocalOracle {
	return &LocalOracle{delay: delay}
}

// SetFulfiller wires the callback target. Must be called before the first
// request; separated from the constructor because the orchestrator and the
// oracle reference each other.
func (o *LocalOracle) SetFulfiller(fn FulfillFunc) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fulfill = fn
}

// RequestRandomness implements [Client].
func (o *LocalOracle) RequestRandomness(_ context.Context) (string, error) {
	o.mu.RLock()
	fn := o.fulfill
	o.mu.RUnlock()
	if fn == nil {
		return "", fmt.Errorf("local oracle has no fulfiller wired")
	}

	requestID := uuid.NewString()

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		time.Sleep(o.delay)

		word, err := randomWord()
		if err != nil {
			logger.Error("Local oracle failed to draw entropy", "error", err, "request_id", requestID)
			return
		}

		// Detached context: the submitting request is long gone.
		if err := fn(context.Background(), requestID, []uint64{word}); err != nil {
			logger.Error("Local oracle fulfillment rejected", "error", err, "request_id", requestID)
		}
	}()

	return requestID, nil
}

// Wait blocks until all outstanding callbacks fire. Used in shutdown and tests.
func (o *LocalOracle) Wait() {
	o.wg.Wait()
}

// randomWord draws 64 bits from crypto/rand.
func randomWord() (uint64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}
