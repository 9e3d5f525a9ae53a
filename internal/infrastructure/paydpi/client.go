package paydpi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"skillsprint/internal/domain/aggregate"
	"skillsprint/pkg/errors"
)

// Config holds the configuration for the National Payments Gateway
type Config struct {
	BaseURL    string
	MerchantID string
	Secret     string
}

// Client is the HTTP client for the PayDPI gateway (sandbox mode)
type Client struct {
	config     *Config
	httpClient *http.Client
}

// InitiatePayoutRequest is the gateway payment-initiation request body
type InitiatePayoutRequest struct {
	AmountLKR  float64 `json:"amountLKR"`
	GigID      string  `json:"gigId"`
	MerchantID string  `json:"merchantId"`
}

// InitiatePayoutResponse is the gateway payment-initiation response body
type InitiatePayoutResponse struct {
	PayoutID string                 `json:"payoutId"`
	Status   aggregate.PayoutStatus `json:"status"`
}

// NewClient creates a new PayDPI gateway client
func NewClient(config *Config) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// InitiatePayout performs the outbound payment-initiation call. Failures are
// surfaced as GatewayError so the caller knows a retry (with a fresh
// initiation) is appropriate.
func (c *Client) InitiatePayout(ctx context.Context, gigID string, amountLKR float64) (*InitiatePayoutResponse, error) {
	reqBody, err := json.Marshal(&InitiatePayoutRequest{
		AmountLKR:  amountLKR,
		GigID:      gigID,
		MerchantID: c.config.MerchantID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/payments", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.MerchantID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.NewGatewayError("Failed to initiate payout via National Payments Gateway")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewGatewayError("Failed to read gateway response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewGatewayError(fmt.Sprintf("PayDPI API error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	var payoutResp InitiatePayoutResponse
	if err := json.Unmarshal(respBody, &payoutResp); err != nil {
		return nil, errors.NewGatewayError("Invalid gateway response body")
	}
	if payoutResp.PayoutID == "" {
		return nil, errors.NewGatewayError("Gateway response missing payoutId")
	}

	return &payoutResp, nil
}
