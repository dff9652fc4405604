package microsoft

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

// Response is a fully read Graph API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client issues authenticated GET requests against Microsoft Graph.
type Client struct {
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewClient creates a Graph client. A nil httpClient uses http.DefaultClient.
// A nil rateLimiter gets the SharePoint defaults.
func NewClient(httpClient *http.Client, rateLimiter *RateLimiter) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if rateLimiter == nil {
		rateLimiter = NewRateLimiter(ServiceSharePoint)
	}
	return &Client{
		httpClient:  httpClient,
		rateLimiter: rateLimiter,
	}
}

// Get performs an authenticated GET and reads the whole body.
// Non-2xx statuses are returned as a Response, not an error; only transport
// failures produce an error. Throttled responses set the limiter's backoff.
func (c *Client) Get(ctx context.Context, token *oauth2.Token, url, accept string) (*Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// Set per request rather than through oauth2.Transport so that redirects
	// to pre-authenticated download hosts do not carry the Graph token.
	token.SetAuthHeader(req)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if IsRateLimited(resp.StatusCode) {
		c.rateLimiter.ObserveThrottled(resp.Header)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
