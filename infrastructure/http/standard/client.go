// ABOUTME: Standard HTTP client implementation with retry logic and timeout support
// ABOUTME: Adds default headers and an outbound rate limit for the rate-limited document API

package standard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"blockpress-api/core/interfaces"
)

const (
	defaultMaxRetries = 2
	userAgent         = "BlockpressAPI/1.0"
)

// Options configures a StandardHTTPClient
type Options struct {
	// Timeout bounds each attempt
	Timeout time.Duration
	// Headers are sent with every request
	Headers map[string]string
	// RequestsPerSecond limits outbound requests; zero disables limiting
	RequestsPerSecond float64
	// Burst is the limiter's bucket size
	Burst int
	// MaxRetries is the number of retries after the first attempt for
	// connection errors and 5xx responses. Negative disables retries.
	MaxRetries int
	// Logger receives request traces at debug level
	Logger interfaces.Logger
}

// StandardHTTPClient implements the HTTPClient interface using standard library
type StandardHTTPClient struct {
	client     *http.Client
	headers    map[string]string
	limiter    *rate.Limiter
	maxRetries int
	logger     interfaces.Logger
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout
func NewStandardHTTPClient(timeout time.Duration) *StandardHTTPClient {
	return NewStandardHTTPClientWithOptions(Options{Timeout: timeout})
}

// NewStandardHTTPClientWithOptions creates a client with headers, rate
// limiting and retries
func NewStandardHTTPClientWithOptions(opts Options) *StandardHTTPClient {
	if opts.MaxRetries == 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.Logger == nil {
		opts.Logger = interfaces.NopLogger{}
	}

	c := &StandardHTTPClient{
		client:     &http.Client{Timeout: opts.Timeout},
		headers:    opts.Headers,
		maxRetries: opts.MaxRetries,
		logger:     opts.Logger,
	}
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return c
}

// Get performs an HTTP GET request
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return c.do(ctx, http.MethodGet, url, nil)
}

// Post performs an HTTP POST request with a JSON body
func (c *StandardHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = io.ReadAll(body); err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
	}
	return c.do(ctx, http.MethodPost, url, payload)
}

// do performs a request with retry logic. Connection errors and 5xx
// responses are retried with exponential backoff; other responses,
// including 429, are returned to the caller.
func (c *StandardHTTPClient) do(ctx context.Context, method, url string, payload []byte) (interfaces.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms, 400ms
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		req, err := c.newRequest(ctx, method, url, payload)
		if err != nil {
			return nil, err
		}

		start := time.Now()
		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		c.logger.Debug("Outbound request", map[string]interface{}{
			"method":      method,
			"url":         url,
			"status":      resp.StatusCode,
			"attempt":     attempt + 1,
			"duration_ms": time.Since(start).Milliseconds(),
		})

		// Don't retry on success or 4xx errors
		if resp.StatusCode < 500 || attempt == c.maxRetries {
			return &httpResponse{
				statusCode: resp.StatusCode,
				body:       resp.Body,
				headers:    resp.Header,
			}, nil
		}

		// Close body for retry
		resp.Body.Close()
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
	}

	return nil, lastErr
}

func (c *StandardHTTPClient) newRequest(ctx context.Context, method, url string, payload []byte) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
