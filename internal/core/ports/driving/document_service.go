package driving

import (
	"context"

	"github.com/custodia-labs/sharepoint-reader/internal/core/domain"
)

// DocumentService is the entry point used by the HTTP and CLI adapters.
type DocumentService interface {
	// Open validates configuration and acquires an access token.
	// Returns domain.ErrConfigMissing before any network call when
	// credentials are unset, or *domain.AuthError when the exchange fails.
	Open(ctx context.Context) (DocumentSession, error)
}

// DocumentSession performs store operations with a single access token.
type DocumentSession interface {
	// ListFiles lists the files of the document library root.
	ListFiles(ctx context.Context) ([]domain.FileEntry, error)

	// GetContent downloads a file and extracts its text.
	GetContent(ctx context.Context, fileID string, opts domain.ContentOptions) (*domain.FileContent, error)
}
