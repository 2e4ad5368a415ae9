package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	// DefaultPageSize is the default number of items per page
	DefaultPageSize = 100
	// DefaultMaxPages caps pagination against a misbehaving upstream
	DefaultMaxPages = 1000
	// maxErrorBodyBytes limits how much of an error body is kept
	maxErrorBodyBytes = 512
)

// HTTPClient interface for HTTP operations (allows mocking in tests).
// Follows Interface Segregation Principle.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// BaseClient contains common fields and functionality for all API clients.
// Follows DRY principle by extracting shared code.
type BaseClient struct {
	BaseURL    string
	Token      string
	HTTPClient HTTPClient
	// Headers are set on every request, after the Authorization header.
	Headers map[string]string
}

// NewBaseClient creates a new base client.
// The token is used as-is; an empty token still produces requests.
func NewBaseClient(baseURL, token string, httpClient HTTPClient) *BaseClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BaseClient{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: httpClient,
		Headers:    map[string]string{},
	}
}

// GetJSON performs a GET request and decodes a 200 response into result.
//
// Transport failures are returned wrapped, non-200 responses as *StatusError
// and undecodable bodies as *DecodeError.
func (c *BaseClient) GetJSON(ctx context.Context, url string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.Token))
	for key, value := range c.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &StatusError{URL: url, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &DecodeError{URL: url, Cause: err}
	}

	return nil
}
