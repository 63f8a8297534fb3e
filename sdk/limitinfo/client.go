// Package limitinfo provides a client for the limit-info endpoint.
//
// The client mirrors the server's fail-open contract: any failure to
// obtain a real answer (timeout, connection error, non-2xx status,
// malformed body) yields LimitInfo{Count: 0, Limit: Unlimited} instead
// of an error, so callers can always render a usage gauge.
package limitinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Unlimited is the sentinel limit value meaning no cap applies.
const Unlimited = -1

// LimitInfo is the current usage against a plan limit.
type LimitInfo struct {
	Count int `json:"count"`
	Limit int `json:"limit"`
}

// Unlimited reports whether no cap applies to this resource.
func (l LimitInfo) Unlimited() bool {
	return l.Limit == Unlimited
}

// Client is the limit-info API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// NewClient creates a new limit-info API client.
//
// Parameters:
//   - baseURL: The API base URL (e.g., "https://api.example.com")
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope matches the server's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// GetLimitInfo retrieves the current count and limit for a resource type
// of a company. It never returns an error: on any failure the zero-count
// unlimited fallback is returned so display paths keep working while the
// write path enforces the real limit.
func (c *Client) GetLimitInfo(ctx context.Context, companyID uint, resourceType string) LimitInfo {
	fallback := LimitInfo{Count: 0, Limit: Unlimited}

	url := fmt.Sprintf("%s/api/v1/companies/%d/%s/limit-info", c.baseURL, companyID, resourceType)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fallback
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fallback
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fallback
	}
	if !env.Success || env.Data == nil {
		return fallback
	}

	var info LimitInfo
	if err := json.Unmarshal(env.Data, &info); err != nil {
		return fallback
	}
	return info
}
