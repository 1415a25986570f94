package amazon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yxy-sys/stocksync/pkg/config"
)

var errASINRequired = errors.New("asin is required")

// Client queries the marketplace stock-signal endpoint for a product page.
// The endpoint reports availability as an opaque signal string ("わずか",
// a numeric count, or a free-text availability phrase) rather than a number.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the stock-signal client from configuration.
func NewClient(cfg config.AmazonConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

type stockResponse struct {
	ASIN         string `json:"asin"`
	Availability string `json:"availability"`
}

// CheckStock returns the raw availability signal for the given ASIN.
func (c *Client) CheckStock(ctx context.Context, asin string) (string, error) {
	asin = strings.TrimSpace(asin)
	if asin == "" {
		return "", errASINRequired
	}

	endpoint := fmt.Sprintf("%s/gp/stock/%s", c.baseURL, url.PathEscape(asin))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build stock request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch stock for %s: %w", asin, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("stock lookup for %s returned status %d", asin, resp.StatusCode)
	}

	var payload stockResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode stock response for %s: %w", asin, err)
	}
	return strings.TrimSpace(payload.Availability), nil
}
