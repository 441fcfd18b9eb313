package treasury

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const requestTimeout = 10 * time.Second

// Vault defines the interface to the external reward-paying vault.
type Vault interface {
	// DistributeReward asks the vault to pay amount of the asset to the
	// recipient. The vault may report failure without an error (it ran dry);
	// transport errors are surfaced separately but callers treat both as a
	// failed attempt.
	DistributeReward(ctx context.Context, recipient, asset string, amount int64) (bool, error)

	// Withdraw sweeps accumulated native currency to an administrative
	// principal.
	Withdraw(ctx context.Context, to string, amount int64) error
}

// HTTPVault talks to a treasury service over HTTP.
type HTTPVault struct {
	endpoint string
	http     *http.Client
}

// NewHTTPVault creates a vault client.
func NewHTTPVault(endpoint string) *HTTPVault {
	return &HTTPVault{
		endpoint: endpoint,
		http:     &http.Client{Timeout: requestTimeout},
	}
}

type distributeRequest struct {
	Recipient string `json:"recipient"`
	Asset     string `json:"asset"`
	Amount    int64  `json:"amount"`
}

type distributeResponse struct {
	Success bool `json:"success"`
}

type withdrawRequest struct {
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

// DistributeReward implements [Vault].
func (v *HTTPVault) DistributeReward(ctx context.Context, recipient, asset string, amount int64) (bool, error) {
	body, err := json.Marshal(distributeRequest{Recipient: recipient, Asset: asset, Amount: amount})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint+"/distribute", bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("treasury call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("treasury returned status %d", resp.StatusCode)
	}

	var parsed distributeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return false, fmt.Errorf("failed to decode treasury response: %w", err)
	}
	return parsed.Success, nil
}

// Withdraw implements [Vault].
func (v *HTTPVault) Withdraw(ctx context.Context, to string, amount int64) error {
	body, err := json.Marshal(withdrawRequest{To: to, Amount: amount})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint+"/withdraw", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.http.Do(req)
	if err != nil {
		return fmt.Errorf("treasury call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("treasury returned status %d", resp.StatusCode)
	}
	return nil
}
