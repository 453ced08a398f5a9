// Package client implements the consumer side of the public property
// listing: an HTTP fetch layer, a serializable list/filter/sort view model
// updated through pure reducers, and a sequential page loader that drives
// incremental "load more" pagination.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rmittal-realty/api/internal/models"
)

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 10 * time.Second

// PropertyPage is the decoded public listing response.
type PropertyPage struct {
	Success    bool              `json:"success"`
	Properties []models.Property `json:"properties"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Count      int               `json:"count"`
}

// Client fetches property pages from the public listing endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the given API base URL, e.g.
// "https://api.example.com". A nil httpClient falls back to a client with
// DefaultTimeout applied.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// FetchPage retrieves one page of the public property listing.
func (c *Client) FetchPage(ctx context.Context, page, limit int) (*PropertyPage, error) {
	endpoint, err := url.Parse(c.baseURL + "/api/v1/public/properties")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	q := endpoint.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch property page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("property page request failed: status %d: %s", resp.StatusCode, body)
	}

	var result PropertyPage
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode property page: %w", err)
	}
	return &result, nil
}
