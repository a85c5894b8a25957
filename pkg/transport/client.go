// Package transport implements the HTTP GET capability the dialect clients
// build on: resolve a relative URL against a base, perform the request with
// a retry policy, and hand back status and body. Auth, TLS and proxying
// stay with the caller-provided http.Client.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/datawheel/olap-client-go/pkg/logging"
	"github.com/datawheel/olap-client-go/pkg/retry"
)

// DefaultTimeout is the maximum time to wait for a server response.
const DefaultTimeout = 30 * time.Second

// Client performs GET requests against one OLAP server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	retryCfg   *retry.Config
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.httpClient = client }
}

// WithRetry overrides the transport retry policy. Pass a zero-retry config
// to disable retries.
func WithRetry(cfg *retry.Config) Option {
	return func(c *Client) { c.retryCfg = cfg }
}

// NewClient creates a client for the server at baseURL. A trailing slash is
// appended so relative paths resolve under the base path.
func NewClient(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	if baseURL != "" && baseURL[len(baseURL)-1] != '/' {
		baseURL += "/"
	}
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logger,
		retryCfg:   retry.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// BaseURL returns the normalized base URL of the client.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get resolves relative against the base URL and performs a GET with the
// configured retry policy, returning the status code and the raw body.
func (c *Client) Get(ctx context.Context, relative string) (int, []byte, error) {
	endpoint, err := c.resolve(relative)
	if err != nil {
		return 0, nil, err
	}

	requestID := uuid.NewString()
	c.logger.Debug("requesting",
		zap.String("request_id", requestID),
		zap.String("url", logging.SanitizeURL(endpoint)))

	var status int
	var body []byte
	err = retry.Do(ctx, c.retryCfg, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to call server: %w", err)
		}
		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		status = resp.StatusCode
		return nil
	})
	if err != nil {
		c.logger.Error("request failed",
			zap.String("request_id", requestID),
			zap.String("error", logging.SanitizeError(err)))
		return 0, nil, err
	}
	return status, body, nil
}

// resolve joins a relative path (possibly carrying a query string) with the
// base URL without re-encoding the query string.
func (c *Client) resolve(relative string) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	ref, err := url.Parse(relative)
	if err != nil {
		return "", fmt.Errorf("invalid request path: %w", err)
	}
	return base.ResolveReference(ref).String(), nil
}
