package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultUserAgent = "ArtGalleryViewer"
	defaultTimeout   = 30 * time.Second

	// maxBodySize caps how much of a response body is read into memory.
	maxBodySize = 16 << 20
)

// Client wraps HTTP operations used to fetch gallery resources.
//
// Client provides:
//   - Configured User-Agent header
//   - Timeout handling
//   - Status checking (anything but 200 OK is an error)
//
// Example usage:
//
//	client := NewClient("ArtGalleryViewer", 30*time.Second)
//	data, err := client.Get(ctx, "https://example.com/artworks.json")
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client.
//
// An empty userAgent or a non-positive timeout selects the defaults
// ("ArtGalleryViewer", 30 seconds).
func NewClient(userAgent string, timeout time.Duration) *Client {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// StatusError is returned when the server answers with a status other than 200.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s (%s)", e.StatusCode, e.Status, e.URL)
}

// Get performs a GET request and returns the response body as bytes.
//
// The request includes the configured User-Agent header and asks for JSON.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 200 OK (a *StatusError)
//   - Reading the body fails
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
}
