package ebay

import (
	"bytes"
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

var (
	errListingIDRequired = errors.New("listing id is required")
	errNegativeQuantity  = errors.New("quantity cannot be negative")
)

// Client updates listing quantities through the trading inventory API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
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

// NewClient builds the listing client from configuration.
func NewClient(cfg config.EbayConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		authToken:  strings.TrimSpace(cfg.AuthToken),
		httpClient: &http.Client{Timeout: timeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity overwrites the available quantity on the listing.
func (c *Client) UpdateQuantity(ctx context.Context, listingID string, quantity int) error {
	listingID = strings.TrimSpace(listingID)
	if listingID == "" {
		return errListingIDRequired
	}
	if quantity < 0 {
		return errNegativeQuantity
	}

	body, err := json.Marshal(updateQuantityRequest{Quantity: quantity})
	if err != nil {
		return fmt.Errorf("encode quantity update: %w", err)
	}

	endpoint := fmt.Sprintf("%s/sell/inventory/v1/listing/%s/quantity", c.baseURL, url.PathEscape(listingID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build quantity request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("update listing %s: %w", listingID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("quantity update for listing %s returned status %d", listingID, resp.StatusCode)
	}
	return nil
}
