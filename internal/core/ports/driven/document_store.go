package driven

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/sharepoint-reader/internal/core/domain"
)

// DocumentStore is the remote document library.
type DocumentStore interface {
	// ListFiles returns the files at the library root, in store order.
	// Folders and other non-file items are skipped.
	// Non-200 answers are reported as *domain.StoreError.
	ListFiles(ctx context.Context, token *oauth2.Token) ([]domain.FileEntry, error)

	// Download fetches the raw bytes of a file.
	// Non-200 answers are reported as *domain.StoreError.
	Download(ctx context.Context, token *oauth2.Token, fileID string) (*domain.RawContent, error)

	// ContentURL returns the content endpoint for a file.
	ContentURL(fileID string) string
}
