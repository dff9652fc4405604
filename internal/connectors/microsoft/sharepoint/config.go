package sharepoint

import (
	"strings"

	"github.com/custodia-labs/sharepoint-reader/internal/core/domain"
)

// RootPathMarker separates the drive prefix from the folder path in
// parentReference.path, e.g. "/drives/b!abc/root:/Shared/Reports".
const RootPathMarker = "/root:/"

// Config holds SharePoint store configuration.
type Config struct {
	// SiteID addresses the site whose default document library is served.
	SiteID string
	// GraphBaseURL is the Graph endpoint without trailing slash.
	GraphBaseURL string
	// MaxResults is the page size for listing.
	MaxResults int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SiteID:       domain.DefaultSiteID,
		GraphBaseURL: domain.DefaultGraphBaseURL,
		MaxResults:   domain.DefaultPageSize,
	}
}

// ParseConfig extracts store configuration from the process configuration.
// Empty or non-positive values keep their defaults.
func ParseConfig(cfg *domain.Config) (*Config, error) {
	if cfg == nil {
		return nil, domain.ErrInvalidInput
	}

	out := DefaultConfig()
	if v := strings.TrimSpace(cfg.SiteID); v != "" {
		out.SiteID = v
	}
	if v := strings.TrimSpace(cfg.GraphBaseURL); v != "" {
		out.GraphBaseURL = strings.TrimRight(v, "/")
	}
	if cfg.PageSize > 0 {
		out.MaxResults = cfg.PageSize
	}
	return out, nil
}
