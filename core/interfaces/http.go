package interfaces

import (
	"context"
	"io"
)

// HTTPClient defines the interface for making HTTP requests.
// The document store client and the enrichment services depend on it, so
// tests can substitute canned responses and the production implementation
// can add retries, default headers and outbound rate limiting.
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	Get(ctx context.Context, url string) (Response, error)

	// Post performs an HTTP POST request with a JSON body.
	Post(ctx context.Context, url string, body io.Reader) (Response, error)
}

// Response defines the interface for HTTP responses.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body.
	// The caller is responsible for closing the body when done.
	Body() io.ReadCloser

	// Header returns the value of the specified header, or "" when absent.
	Header(key string) string
}
