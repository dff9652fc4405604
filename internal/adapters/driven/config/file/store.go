// Package file loads the process configuration from an optional TOML file
// and the environment.
package file

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/sharepoint-reader/internal/core/domain"
)

// Environment variables read at start-up.
const (
	EnvTenantID     = "TENANT_ID"
	EnvClientID     = "CLIENT_ID"
	EnvClientSecret = "CLIENT_SECRET"
	EnvSiteID       = "SHAREPOINT_SITE_ID"
	// EnvCustomHandlerPort is set by the Azure Functions host for custom handlers.
	EnvCustomHandlerPort = "FUNCTIONS_CUSTOMHANDLER_PORT"
)

// fileConfig mirrors the TOML layout. Secrets are never read from the file.
type fileConfig struct {
	SharePoint sharePointSection `toml:"sharepoint"`
	Server     serverSection     `toml:"server"`
}

type sharePointSection struct {
	SiteID       string `toml:"site_id"`
	PageSize     int    `toml:"page_size"`
	GraphBaseURL string `toml:"graph_base_url"`
	LoginBaseURL string `toml:"login_base_url"`
	Scope        string `toml:"scope"`
}

type serverSection struct {
	Address string `toml:"address"`
	Route   string `toml:"route"`
	// Timeout is a Go duration string such as "30s".
	Timeout string `toml:"timeout"`
}

// LookupEnv matches os.LookupEnv. Tests substitute their own.
type LookupEnv func(key string) (string, bool)

// Load builds a Config from defaults, the TOML file at path (skipped when
// path is empty or the file does not exist) and the process environment.
// Missing credentials are not an error here; they are reported per request.
func Load(path string) (*domain.Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment source.
func LoadWithEnv(path string, lookup LookupEnv) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := applyFile(cfg, data); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg, lookup)
	return cfg, nil
}

func applyFile(cfg *domain.Config, data []byte) error {
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return err
	}

	sp := fc.SharePoint
	if sp.SiteID != "" {
		cfg.SiteID = sp.SiteID
	}
	if sp.PageSize > 0 {
		cfg.PageSize = sp.PageSize
	}
	if sp.GraphBaseURL != "" {
		cfg.GraphBaseURL = sp.GraphBaseURL
	}
	if sp.LoginBaseURL != "" {
		cfg.LoginBaseURL = sp.LoginBaseURL
	}
	if sp.Scope != "" {
		cfg.Scope = sp.Scope
	}

	srv := fc.Server
	if srv.Address != "" {
		cfg.Address = srv.Address
	}
	if srv.Route != "" {
		cfg.Route = srv.Route
	}
	if srv.Timeout != "" {
		timeout, err := time.ParseDuration(srv.Timeout)
		if err != nil {
			return fmt.Errorf("server.timeout: %w", err)
		}
		cfg.Timeout = timeout
	}
	return nil
}

func applyEnv(cfg *domain.Config, lookup LookupEnv) {
	if v, ok := lookup(EnvTenantID); ok {
		cfg.TenantID = v
	}
	if v, ok := lookup(EnvClientID); ok {
		cfg.ClientID = v
	}
	if v, ok := lookup(EnvClientSecret); ok {
		cfg.ClientSecret = v
	}
	if v, ok := lookup(EnvSiteID); ok && v != "" {
		cfg.SiteID = v
	}
	if v, ok := lookup(EnvCustomHandlerPort); ok && v != "" {
		cfg.Address = ":" + v
	}
}
