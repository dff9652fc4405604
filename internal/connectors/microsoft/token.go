package microsoft

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/sharepoint-reader/internal/core/domain"
	"github.com/custodia-labs/sharepoint-reader/internal/core/ports/driven"
)

// Ensure ClientCredentials implements the interface.
var _ driven.TokenProvider = (*ClientCredentials)(nil)

// ClientCredentials exchanges an app registration's secret for an access token.
// It never caches: each Token call is one POST to the token endpoint.
type ClientCredentials struct {
	tokenURL     string
	clientID     string
	clientSecret string
	scope        string
	httpClient   *http.Client
	rateLimiter  *RateLimiter
}

// NewClientCredentials creates a token provider from configuration.
// A nil httpClient uses a client bounded by cfg.Timeout.
func NewClientCredentials(cfg *domain.Config, httpClient *http.Client) *ClientCredentials {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	scope := cfg.Scope
	if scope == "" {
		scope = domain.DefaultScope
	}
	return &ClientCredentials{
		tokenURL:     TokenURL(cfg.LoginBaseURL, cfg.TenantID),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		scope:        scope,
		httpClient:   httpClient,
		rateLimiter:  NewRateLimiter(ServiceIdentity),
	}
}

// TokenURL builds the tenant-specific v2.0 token endpoint.
func TokenURL(loginBaseURL, tenantID string) string {
	if loginBaseURL == "" {
		loginBaseURL = domain.DefaultLoginBaseURL
	}
	return fmt.Sprintf("%s/%s/oauth2/v2.0/token", strings.TrimRight(loginBaseURL, "/"), tenantID)
}

// Token performs the client-credentials exchange.
//
// A non-200 answer yields *domain.AuthError carrying the raw body. A 200
// answer without access_token yields *domain.AuthError with MissingToken set
// and the decoded body in Parsed.
func (c *ClientCredentials) Token(ctx context.Context) (*oauth2.Token, error) {
	data := url.Values{}
	data.Set("client_id", c.clientID)
	data.Set("client_secret", c.clientSecret)
	data.Set("scope", c.scope)
	data.Set("grant_type", "client_credentials")

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read token response: %w", err)
	}

	if IsRateLimited(resp.StatusCode) {
		c.rateLimiter.ObserveThrottled(resp.Header)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.AuthError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return parseTokenResponse(body)
}

// parseTokenResponse decodes a 200 token answer.
func parseTokenResponse(body []byte) (*oauth2.Token, error) {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &domain.AuthError{
			StatusCode:   http.StatusOK,
			Body:         string(body),
			MissingToken: true,
			Parsed:       string(body),
		}
	}

	fields, _ := parsed.(map[string]any)
	accessToken, _ := fields["access_token"].(string)
	if accessToken == "" {
		return nil, &domain.AuthError{
			StatusCode:   http.StatusOK,
			Body:         string(body),
			MissingToken: true,
			Parsed:       parsed,
		}
	}

	token := &oauth2.Token{AccessToken: accessToken}
	token.TokenType, _ = fields["token_type"].(string)
	if secs := expiresIn(fields["expires_in"]); secs > 0 {
		token.Expiry = time.Now().Add(time.Duration(secs) * time.Second)
	}
	return token, nil
}

// expiresIn accepts both the numeric v2.0 form and the string form older
// endpoints return.
func expiresIn(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case string:
		secs, _ := strconv.ParseInt(n, 10, 64)
		return secs
	}
	return 0
}
