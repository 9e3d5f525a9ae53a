package ndx

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"skillsprint/pkg/errors"
)

//go:embed fixtures/education-record.sample.json
var sampleRecord []byte

// Config holds the configuration for the National Data Exchange
type Config struct {
	BaseURL string
	APIKey  string
	UseMock bool
}

// Client fetches education records from the National Data Exchange
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a new NDX client
func NewClient(config *Config) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetEducationRecord fetches the education record for a subject DID.
// Mock mode returns the embedded sample record; otherwise the call is a
// pass-through to the NDX API.
func (c *Client) GetEducationRecord(ctx context.Context, subject string) (json.RawMessage, error) {
	if c.config.UseMock {
		slog.Info("fetching education record (mock mode)", "subject", subject)
		return json.RawMessage(sampleRecord), nil
	}

	endpoint := fmt.Sprintf("%s/education-records?subject=%s", c.config.BaseURL, url.QueryEscape(subject))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.NewGatewayError("Failed to fetch education record from National Data Exchange")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewGatewayError(fmt.Sprintf("NDX API error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewGatewayError("Failed to read NDX response")
	}

	slog.Info("fetched education record from NDX", "subject", subject)
	return json.RawMessage(body), nil
}
