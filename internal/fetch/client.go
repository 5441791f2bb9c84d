package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodyBytes caps response reads; listing and detail pages are far smaller.
const maxBodyBytes = 8 << 20

// Doer describes the HTTP client used by the fetcher.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues single GET requests with a fixed user agent and returns the
// response body. It carries no retry logic: a failed fetch is a terminal
// outcome for the entry that needed it.
type Client struct {
	http      Doer
	userAgent string
}

// NewClient constructs a fetcher with the given request timeout and user
// agent. Some upstreams reject Go's default user agent outright, so the
// configured value is sent on every request.
func NewClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// NewClientWithDoer constructs a fetcher around an existing HTTP doer.
func NewClientWithDoer(doer Doer, userAgent string) *Client {
	return &Client{http: doer, userAgent: userAgent}
}

// Get fetches url and returns the response body. Any network failure or
// non-2xx status is an error.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}

// GetJSON fetches url and decodes the response body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
