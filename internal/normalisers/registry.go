// Package normalisers turns downloaded documents into plain text.
package normalisers

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/sharepoint-reader/internal/core/domain"
	"github.com/custodia-labs/sharepoint-reader/internal/core/ports/driven"
	"github.com/custodia-labs/sharepoint-reader/internal/normalisers/docx"
	"github.com/custodia-labs/sharepoint-reader/internal/normalisers/pdf"
	"github.com/custodia-labs/sharepoint-reader/internal/normalisers/plaintext"
	"github.com/custodia-labs/sharepoint-reader/internal/normalisers/xlsx"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry holds one extractor per document kind.
type Registry struct {
	mu     sync.RWMutex
	byKind map[domain.DocumentKind]driven.Extractor
}

// NewRegistry creates a new registry with the default extractors.
func NewRegistry() *Registry {
	r := &Registry{
		byKind: make(map[domain.DocumentKind]driven.Extractor),
	}
	r.Register(docx.New())
	r.Register(xlsx.New())
	r.Register(pdf.New())
	r.Register(plaintext.New())
	return r
}

// Register adds an extractor, replacing any previous one for the same kind.
func (r *Registry) Register(e driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKind[e.Kind()] = e
}

// Extract runs the extractor registered for kind.
// Errors and panics raised by the parsing libraries are returned as
// *domain.ExtractionError.
func (r *Registry) Extract(ctx context.Context, kind domain.DocumentKind, data []byte) (text string, err error) {
	r.mu.RLock()
	e, ok := r.byKind[kind]
	r.mu.RUnlock()

	if !ok {
		return "", &domain.ExtractionError{
			Kind: kind,
			Err:  fmt.Errorf("no extractor for %q: %w", kind, domain.ErrNotImplemented),
		}
	}

	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = &domain.ExtractionError{Kind: kind, Err: fmt.Errorf("%v", rec)}
		}
	}()

	text, err = e.Extract(ctx, data)
	if err != nil {
		return "", &domain.ExtractionError{Kind: kind, Err: err}
	}
	return text, nil
}

