package domain

import "time"

// Default endpoints and limits for the SharePoint document library.
const (
	// DefaultGraphBaseURL is the Microsoft Graph v1.0 endpoint.
	DefaultGraphBaseURL = "https://graph.microsoft.com/v1.0"
	// DefaultLoginBaseURL is the Microsoft identity platform authority.
	DefaultLoginBaseURL = "https://login.microsoftonline.com"
	// DefaultScope requests every application permission granted to the app.
	DefaultScope = "https://graph.microsoft.com/.default"
	// DefaultSiteID is the SharePoint site hosting the document library.
	DefaultSiteID = "lctoyotaoutlook.sharepoint.com,2c8b9562-cf1a-40c2-8a1a-31c6d62b59d6,8b64fd9c-db3b-480e-b34a-20d0bb183edd"
	// DefaultPageSize is the $top value used when listing the library root.
	DefaultPageSize = 100
	// DefaultRoute is the path the Functions host forwards HttpTrigger1 to.
	DefaultRoute = "/api/HttpTrigger1"
	// DefaultAddress is used when no custom handler port is provided.
	DefaultAddress = ":8080"
	// DefaultTimeout bounds each outbound HTTP call.
	DefaultTimeout = 60 * time.Second
)

// Config holds everything the request handler needs.
// It is built once at process start and passed to the services explicitly.
type Config struct {
	// TenantID, ClientID and ClientSecret identify the app registration.
	TenantID     string
	ClientID     string
	ClientSecret string

	// SiteID addresses the SharePoint site whose default drive is served.
	SiteID string
	// PageSize is the $top value for listing.
	PageSize int
	// GraphBaseURL and LoginBaseURL are overridable for tests and sovereign clouds.
	GraphBaseURL string
	LoginBaseURL string
	// Scope is the client-credentials scope.
	Scope string

	// Address is the listen address for the HTTP server.
	Address string
	// Route is the HTTP path of the handler.
	Route string
	// Timeout bounds each outbound HTTP call. Zero means no timeout.
	Timeout time.Duration
}

// DefaultConfig returns a Config with every non-secret field populated.
func DefaultConfig() *Config {
	return &Config{
		SiteID:       DefaultSiteID,
		PageSize:     DefaultPageSize,
		GraphBaseURL: DefaultGraphBaseURL,
		LoginBaseURL: DefaultLoginBaseURL,
		Scope:        DefaultScope,
		Address:      DefaultAddress,
		Route:        DefaultRoute,
		Timeout:      DefaultTimeout,
	}
}

// Validate reports ErrConfigMissing unless all three credentials are set.
func (c *Config) Validate() error {
	if c == nil || c.TenantID == "" || c.ClientID == "" || c.ClientSecret == "" {
		return ErrConfigMissing
	}
	return nil
}
