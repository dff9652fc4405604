// Package sharepoint reads a SharePoint document library through Microsoft Graph.
package sharepoint

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/sharepoint-reader/internal/connectors/microsoft"
	"github.com/custodia-labs/sharepoint-reader/internal/core/domain"
	"github.com/custodia-labs/sharepoint-reader/internal/core/ports/driven"
	"github.com/custodia-labs/sharepoint-reader/internal/logger"
)

// StoreType identifies the SharePoint backend.
const StoreType = "sharepoint"

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// Store lists and downloads files of one site's default document library.
type Store struct {
	config *Config
	client *microsoft.Client
}

// New creates a new SharePoint store.
func New(cfg *Config, client *microsoft.Client) *Store {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if client == nil {
		client = microsoft.NewClient(nil, nil)
	}
	return &Store{
		config: cfg,
		client: client,
	}
}

// Type returns the store type identifier.
func (s *Store) Type() string {
	return StoreType
}

// ListFiles fetches a single page of the library root and keeps the files.
func (s *Store) ListFiles(ctx context.Context, token *oauth2.Token) ([]domain.FileEntry, error) {
	url := ListURL(s.config)
	logger.Debug("sharepoint: listing %s", url)

	resp, err := s.client.Get(ctx, token, url, "application/json")
	if err != nil {
		return nil, fmt.Errorf("list request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.StoreError{
			Op:         "list",
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       string(resp.Body),
			Err:        microsoft.NewGraphError(resp.StatusCode, resp.Body),
		}
	}

	var listResp listResponse
	if err := json.Unmarshal(resp.Body, &listResp); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}

	entries := FilesToEntries(listResp.Value)
	logger.Debug("sharepoint: %d items, %d files", len(listResp.Value), len(entries))
	return entries, nil
}

// Download fetches the raw content of a file together with its Content-Type.
func (s *Store) Download(ctx context.Context, token *oauth2.Token, fileID string) (*domain.RawContent, error) {
	url := ContentURL(s.config, fileID)

	resp, err := s.client.Get(ctx, token, url, "")
	if err != nil {
		return nil, fmt.Errorf("download request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.StoreError{
			Op:         "fetch",
			URL:        url,
			FileID:     fileID,
			StatusCode: resp.StatusCode,
			Body:       string(resp.Body),
			Err:        microsoft.NewGraphError(resp.StatusCode, resp.Body),
		}
	}

	return &domain.RawContent{
		URL:         url,
		ContentType: resp.Header.Get("Content-Type"),
		Data:        resp.Body,
	}, nil
}

// ContentURL returns the content endpoint for a file.
func (s *Store) ContentURL(fileID string) string {
	return ContentURL(s.config, fileID)
}
