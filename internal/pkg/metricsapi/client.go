package metricsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/worklens/worklens-backend-go/internal/config"
	"github.com/worklens/worklens-backend-go/internal/domain/analytics"
)

// Client talks to the remote aggregates API that publishes pre-computed
// metric payloads per scope. A failed or absent payload is not an error for
// the aggregation pipeline; callers fall back to local computation.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxRetries int
}

// NewClient creates a metrics API client from configuration
func NewClient(cfg config.MetricsAPIConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		maxRetries: cfg.MaxRetries,
	}
}

// APIError represents a non-retryable metrics API error
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("metrics API error [%d]: %s", e.StatusCode, e.Message)
}

const retryBaseDelay = 250 * time.Millisecond

// FetchAggregate GETs the authoritative aggregate payload for a scope.
// Network errors and 5xx responses are retried with exponential backoff up
// to the configured bound; a 404 means no payload is published for the scope
// and returns (nil, nil).
func (c *Client) FetchAggregate(ctx context.Context, scopeID string, criteria analytics.FilterCriteria) (*analytics.PartialSnapshot, error) {
	query := url.Values{}
	query.Set("time_range", string(criteria.TimeRange))
	if criteria.Status != "" && criteria.Status != analytics.StatusAll {
		query.Set("status", criteria.Status)
	}
	endpoint := fmt.Sprintf("%s/v1/aggregates/%s?%s", c.baseURL, url.PathEscape(scopeID), query.Encode())

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBaseDelay << (attempt - 1)):
			}
		}

		payload, retryable, err := c.fetch(ctx, endpoint)
		if err == nil {
			return payload, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, fmt.Errorf("metrics API unavailable after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *Client) fetch(ctx context.Context, endpoint string) (payload *analytics.PartialSnapshot, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("metrics API request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// No aggregate published for this scope
		return nil, false, nil
	case resp.StatusCode >= 500:
		return nil, true, &APIError{StatusCode: resp.StatusCode, Message: "server error"}
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, false, &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var out analytics.PartialSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, false, fmt.Errorf("decode aggregate payload: %w", err)
	}
	return &out, false, nil
}
