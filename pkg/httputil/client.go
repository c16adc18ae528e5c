package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/nestview/pkg/buildinfo"
	"github.com/matzehuels/nestview/pkg/errors"
)

// Client defaults.
const (
	DefaultTimeout  = 30 * time.Second
	DefaultAttempts = 3
	DefaultDelay    = time.Second
	DefaultMaxBytes = 8 << 20
)

// Client fetches documents with retries and a body size limit.
type Client struct {
	http     *http.Client
	headers  map[string]string
	attempts int
	delay    time.Duration
	maxBytes int64
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHeader adds a header to every request, e.g. an Authorization token.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// WithRetry sets the number of attempts and the initial backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = max(attempts, 1)
		c.delay = delay
	}
}

// WithMaxBytes caps the accepted body size.
func WithMaxBytes(n int64) Option {
	return func(c *Client) { c.maxBytes = n }
}

// NewClient returns a client with the package defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{Timeout: DefaultTimeout},
		headers:  map[string]string{"User-Agent": "nestview/" + buildinfo.Version},
		attempts: DefaultAttempts,
		delay:    DefaultDelay,
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches url and returns its body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := Retry(ctx, c.attempts, c.delay, func() error {
		data, err := c.get(ctx, url)
		if err != nil {
			return err
		}
		body = data
		return nil
	})
	if err != nil {
		if IsRetryable(err) {
			return nil, errors.Wrap(errors.ErrCodeUnreachable, err, "fetch %s", url)
		}
		return nil, err
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "bad url %q", url)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: fmt.Errorf("request %s: %w", url, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(url, resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("read %s: %w", url, err)}
	}
	if int64(len(data)) > c.maxBytes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s exceeds %d bytes", url, c.maxBytes)
	}
	return data, nil
}

func checkStatus(url string, code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s: not found", url)
	case code == http.StatusTooManyRequests || code >= 500:
		return &RetryableError{Err: fmt.Errorf("%s: status %d", url, code)}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "%s: status %d", url, code)
	}
}
