// Package connectors assembles the token provider and document store of a
// backend from process configuration.
package connectors

import (
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/custodia-labs/sharepoint-reader/internal/connectors/microsoft"
	"github.com/custodia-labs/sharepoint-reader/internal/connectors/microsoft/sharepoint"
	"github.com/custodia-labs/sharepoint-reader/internal/core/domain"
	"github.com/custodia-labs/sharepoint-reader/internal/core/ports/driven"
)

// Backend pairs a token provider with the store that consumes its tokens.
type Backend struct {
	Tokens driven.TokenProvider
	Store  driven.DocumentStore
}

// Builder creates a Backend. httpClient is shared by every outbound call.
type Builder func(cfg *domain.Config, httpClient *http.Client) (*Backend, error)

// Factory creates backends by type.
type Factory struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewFactory creates a new factory with the SharePoint backend registered.
func NewFactory() *Factory {
	f := &Factory{
		builders: make(map[string]Builder),
	}
	f.registerDefaultBuilders()
	return f
}

// registerDefaultBuilders registers all built-in backends.
func (f *Factory) registerDefaultBuilders() {
	f.Register(sharepoint.StoreType, func(cfg *domain.Config, httpClient *http.Client) (*Backend, error) {
		storeCfg, err := sharepoint.ParseConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("sharepoint config: %w", err)
		}
		graph := microsoft.NewClient(httpClient, microsoft.NewRateLimiter(microsoft.ServiceSharePoint))
		return &Backend{
			Tokens: microsoft.NewClientCredentials(cfg, httpClient),
			Store:  sharepoint.New(storeCfg, graph),
		}, nil
	})
}

// Create builds the backend registered under backendType.
func (f *Factory) Create(backendType string, cfg *domain.Config, httpClient *http.Client) (*Backend, error) {
	f.mu.RLock()
	builder, ok := f.builders[backendType]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, backendType)
	}
	if cfg == nil {
		return nil, domain.ErrInvalidInput
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return builder(cfg, httpClient)
}

// Register adds a builder for the given type, replacing any existing one.
func (f *Factory) Register(backendType string, builder Builder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[backendType] = builder
}

// SupportedTypes returns all registered backend types, sorted.
func (f *Factory) SupportedTypes() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	types := make([]string, 0, len(f.builders))
	for t := range f.builders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
