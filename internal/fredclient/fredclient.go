// Package fredclient implements the remote client for the FRED API.
package fredclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/fredline/fredline/internal/contract"
)

// DefaultBaseURL is the production FRED API endpoint.
const DefaultBaseURL = "https://api.stlouisfed.org/fred"

// Client talks to the FRED REST API over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ contract.FredClient = &Client{} // Compile-time check

// New creates a client against the production FRED endpoint.
func New(apiKey string) *Client {
	return NewWithBaseURL(DefaultBaseURL, apiKey)
}

// NewWithBaseURL creates a client against a custom endpoint. Used by tests
// and by deployments that proxy the FRED API.
func NewWithBaseURL(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: contract.DefaultFetchTimeout},
	}
}

// FetchSeriesMetadata implements the FredClient interface.
func (c *Client) FetchSeriesMetadata(ctx context.Context, seriesID string) (string, error) {
	params := url.Values{}
	params.Set("series_id", seriesID)
	params.Set("api_key", c.apiKey)
	params.Set("file_type", "json")
	return c.get(ctx, "/series", params)
}

// FetchSeriesObservations implements the FredClient interface.
func (c *Client) FetchSeriesObservations(ctx context.Context, seriesID, startDate, endDate string) (string, error) {
	params := url.Values{}
	params.Set("series_id", seriesID)
	params.Set("api_key", c.apiKey)
	params.Set("file_type", "json")
	if startDate != "" {
		params.Set("observation_start", startDate)
	}
	if endDate != "" {
		params.Set("observation_end", endDate)
	}
	return c.get(ctx, "/series/observations", params)
}

// get performs a single GET request and returns the raw response body.
func (c *Client) get(ctx context.Context, path string, params url.Values) (string, error) {
	reqURL := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response from %s: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("FRED API returned status %d for %s", resp.StatusCode, path)
	}

	return string(body), nil
}
