package driven

import (
	"context"

	"github.com/custodia-labs/sharepoint-reader/internal/core/domain"
)

// Extractor turns the bytes of one document kind into plain text.
type Extractor interface {
	// Kind returns the document kind handled by this extractor.
	Kind() domain.DocumentKind

	// Extract returns the text content of data.
	Extract(ctx context.Context, data []byte) (string, error)
}

// ExtractorRegistry dispatches extraction by document kind.
type ExtractorRegistry interface {
	// Extract runs the extractor registered for kind.
	// Failures are reported as *domain.ExtractionError.
	Extract(ctx context.Context, kind domain.DocumentKind, data []byte) (string, error)
}
