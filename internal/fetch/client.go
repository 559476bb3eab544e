// Package fetch implements the page-fetch collaborator: a retrying HTTP
// client with a bounded timeout. Extraction consumes the bytes it returns
// and owns nothing about transport policy beyond request framing.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/mirepoix/souschef/internal/domain"
	"github.com/mirepoix/souschef/internal/logger"
)

// maxBodySize caps response bodies at 10MB so a misbehaving page cannot
// exhaust memory.
const maxBodySize = 10 * 1024 * 1024

// userAgent is sent with every request. Recipe sites reject the Go
// default agent, so we frame requests as a desktop browser.
const userAgent = "Mozilla/5.0 (compatible; souschef/1.0; +https://github.com/mirepoix/souschef)"

// Compile-time interface check.
var _ domain.Fetcher = (*Client)(nil)

// Option configures the Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRetries sets the maximum number of retries after the first attempt.
func WithRetries(n int) Option {
	return func(c *Client) { c.retries = n }
}

// Client fetches page markup with bounded timeout and retry semantics.
type Client struct {
	http    *retryablehttp.Client
	log     *logger.Logger
	timeout time.Duration
	retries int
}

// NewClient creates a fetch client.
func NewClient(log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		log:     log,
		timeout: 15 * time.Second,
		retries: 3,
	}
	for _, opt := range opts {
		opt(c)
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = c.retries
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.HTTPClient.Timeout = c.timeout
	rc.Logger = nil // retry chatter goes through our logger instead
	c.http = rc

	return c
}

// Fetch retrieves the raw markup at url. Transport failures and non-2xx
// responses are surfaced as ErrFetch.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %v", domain.ErrFetch, url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	c.log.Debug("fetch: GET %s", url)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", domain.ErrFetch, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: GET %s: %s", domain.ErrFetch, url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrFetch, url, err)
	}

	c.log.Debug("fetch: %s returned %d bytes", url, len(body))
	return body, nil
}
