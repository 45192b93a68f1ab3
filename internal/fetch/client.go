// Package fetch provides the HTTP client used for all requests against
// the documentation site origin.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// Client wraps http.Client with the credentials that apply to the site
// origin: a cookie jar shared across requests and an optional bearer
// token for protected sites.
type Client struct {
	httpClient *http.Client
	token      string
}

func NewClient(timeout time.Duration, token string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		token: token,
	}
}

// Get performs a GET request against the given URL. Transport errors are
// returned as-is; status handling is left to the caller.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.httpClient.Do(req)
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
