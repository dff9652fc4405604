// Package plaintext decodes text documents.
package plaintext

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/sharepoint-reader/internal/core/domain"
	"github.com/custodia-labs/sharepoint-reader/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor decodes bytes as UTF-8. It is also the fallback for content
// types without a dedicated extractor.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the document kind handled by this extractor.
func (e *Extractor) Kind() domain.DocumentKind {
	return domain.KindText
}

// Extract decodes data as UTF-8, replacing every undecodable byte with
// U+FFFD. It never fails.
func (e *Extractor) Extract(_ context.Context, data []byte) (string, error) {
	return Decode(data), nil
}

// Decode converts data to a valid UTF-8 string.
func Decode(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	var b strings.Builder
	b.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(utf8.RuneError)
		} else {
			b.Write(data[:size])
		}
		data = data[size:]
	}
	return b.String()
}
