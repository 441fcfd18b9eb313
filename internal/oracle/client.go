package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Request submission constants. These are fixed per deployment, not
// configurable per call.
const (
	DefaultCallbackGasLimit = 250000
	DefaultConfirmations    = 3
	DefaultNumWords         = 1

	requestTimeout = 10 * time.Second
)

// Client defines the interface to the external randomness collaborator.
// A submitted request is paid for at call time and fulfilled exactly once,
// at an unspecified later time, through the engine's fulfillment webhook.
// Submitted requests cannot be withdrawn.
type Client interface {
	RequestRandomness(ctx context.Context) (string, error)
}

// HTTPClient submits randomness requests to an oracle service over HTTP.
type HTTPClient struct {
	endpoint    string
	apiKey      string
	callbackURL string
	http        *http.Client
}

// NewHTTPClient creates an oracle client. callbackURL is where the oracle
// posts fulfillments.
func NewHTTPClient(endpoint, apiKey, callbackURL string) *HTTPClient {
	return &HTTPClient{
		endpoint:    endpoint,
		apiKey:      apiKey,
		callbackURL: callbackURL,
		http:        &http.Client{Timeout: requestTimeout},
	}
}

type randomnessRequest struct {
	CallbackGasLimit int    `json:"callback_gas_limit"`
	Confirmations    int    `json:"confirmations"`
	NumWords         int    `json:"num_words"`
	CallbackURL      string `json:"callback_url"`
}

type randomnessResponse struct {
	RequestID string `json:"request_id"`
}

// RequestRandomness implements [Client].
func (c *HTTPClient) RequestRandomness(ctx context.Context) (string, error) {
	body, err := json.Marshal(randomnessRequest{
		CallbackGasLimit: DefaultCallbackGasLimit,
		Confirmations:    DefaultConfirmations,
		NumWords:         DefaultNumWords,
		CallbackURL:      c.callbackURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode randomness request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/requests", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build randomness request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("randomness request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("randomness request rejected: status %d", resp.StatusCode)
	}

	var parsed randomnessResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode randomness response: %w", err)
	}
	if parsed.RequestID == "" {
		return "", fmt.Errorf("oracle returned empty request id")
	}

	return parsed.RequestID, nil
}
