package token

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fortunaworks/spinvault/internal/domain"
)

const requestTimeout = 10 * time.Second

// Ledger defines the interface to the external fungible-token ledger that
// holds user balances. Transfer and burn semantics are the ledger's own;
// the engine only needs the calls to succeed or fail atomically.
type Ledger interface {
	// TransferFrom moves amount of the primary asset from one account to
	// another, failing without partial effect.
	TransferFrom(ctx context.Context, from, to string, amount int64) error

	// BurnFrom destroys amount of the primary asset held by the account.
	BurnFrom(ctx context.Context, holder string, amount int64) error
}

// HTTPLedger talks to a token ledger service over HTTP.
type HTTPLedger struct {
	endpoint string
	http     *http.Client
}

// NewHTTPLedger creates a ledger client.
func NewHTTPLedger(endpoint string) *HTTPLedger {
	return &HTTPLedger{
		endpoint: endpoint,
		http:     &http.Client{Timeout: requestTimeout},
	}
}

type transferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

type burnRequest struct {
	Holder string `json:"holder"`
	Amount int64  `json:"amount"`
}

// TransferFrom implements [Ledger].
func (l *HTTPLedger) TransferFrom(ctx context.Context, from, to string, amount int64) error {
	if err := l.post(ctx, "/transfer-from", transferRequest{From: from, To: to, Amount: amount}); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
	}
	return nil
}

// BurnFrom implements [Ledger].
func (l *HTTPLedger) BurnFrom(ctx context.Context, holder string, amount int64) error {
	if err := l.post(ctx, "/burn-from", burnRequest{Holder: holder, Amount: amount}); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
	}
	return nil
}

func (l *HTTPLedger) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ledger returned status %d", resp.StatusCode)
	}
	return nil
}
