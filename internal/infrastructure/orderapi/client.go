// Package orderapi reads the caller's order history from the delivery
// platform's REST API.
package orderapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/datawolt/datawolt/internal/core/ports"
)

const (
	DefaultBaseURL = "https://restaurant-api.wolt.com/v2/order_details/"
	defaultTimeout = 30 * time.Second

	// maxErrorBody caps how much of a failed response is echoed into the error.
	maxErrorBody = 512
)

// StatusError is returned for any non-2xx answer from the platform.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("order api returned %d: %s", e.StatusCode, e.Body)
}

// Client implements ports.OrderHistorySource.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for baseURL. Empty values fall back to defaults.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchPage requests one page of the history, newest orders first.
func (c *Client) FetchPage(ctx context.Context, token string, limit, skip int) ([]ports.RemoteOrder, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse order api url: %w", err)
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var orders []ports.RemoteOrder
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		return nil, fmt.Errorf("decode order page: %w", err)
	}
	if orders == nil {
		orders = []ports.RemoteOrder{}
	}
	return orders, nil
}
