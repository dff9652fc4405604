package services

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/sharepoint-reader/internal/core/domain"
	"github.com/custodia-labs/sharepoint-reader/internal/core/ports/driven"
	"github.com/custodia-labs/sharepoint-reader/internal/core/ports/driving"
	"github.com/custodia-labs/sharepoint-reader/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService composes token acquisition, the document store and text
// extraction for a single request.
type DocumentService struct {
	config     *domain.Config
	tokens     driven.TokenProvider
	store      driven.DocumentStore
	extractors driven.ExtractorRegistry
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(
	cfg *domain.Config,
	tokens driven.TokenProvider,
	store driven.DocumentStore,
	extractors driven.ExtractorRegistry,
) *DocumentService {
	return &DocumentService{
		config:     cfg,
		tokens:     tokens,
		store:      store,
		extractors: extractors,
	}
}

// Open checks configuration and acquires a fresh access token.
func (s *DocumentService) Open(ctx context.Context) (driving.DocumentSession, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("services: acquired access token (type %s)", token.Type())

	return &documentSession{service: s, token: token}, nil
}

// documentSession binds the service to one access token.
type documentSession struct {
	service *DocumentService
	token   *oauth2.Token
}

// ListFiles lists the files of the library root in store order.
func (d *documentSession) ListFiles(ctx context.Context) ([]domain.FileEntry, error) {
	return d.service.store.ListFiles(ctx, d.token)
}

// GetContent downloads a file, extracts its text by content type and
// applies summary and debug options.
func (d *documentSession) GetContent(
	ctx context.Context, fileID string, opts domain.ContentOptions,
) (*domain.FileContent, error) {
	if fileID == "" {
		return nil, fmt.Errorf("file id: %w", domain.ErrInvalidInput)
	}

	raw, err := d.service.store.Download(ctx, d.token, fileID)
	if err != nil {
		return nil, err
	}

	kind := domain.KindForContentType(raw.ContentType)
	logger.Debug("services: %s is %q, extracting as %s (%d bytes)",
		fileID, raw.ContentType, kind, len(raw.Data))

	text, err := d.service.extractors.Extract(ctx, kind, raw.Data)
	if err != nil {
		return nil, err
	}

	if opts.Summary {
		text = domain.Summarise(text)
	}

	result := &domain.FileContent{Content: text}
	if opts.Debug {
		url := raw.URL
		if url == "" {
			url = d.service.store.ContentURL(fileID)
		}
		result.ContentURL = &url
	}
	return result, nil
}
