// Package pdf extracts page text from PDF documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/sharepoint-reader/internal/core/domain"
	"github.com/custodia-labs/sharepoint-reader/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Document abstracts a parsed PDF for testing.
type Document interface {
	// NumPage returns the number of pages.
	NumPage() int
	// PageText returns the text of page i, counting from 1.
	PageText(i int) (string, error)
}

// Opener parses raw bytes into a Document.
type Opener func(data []byte) (Document, error)

// Extractor concatenates the text of every page.
type Extractor struct {
	open Opener
}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{open: Open}
}

// NewWithOpener creates a PDF extractor with a custom parser (for testing).
func NewWithOpener(open Opener) *Extractor {
	return &Extractor{open: open}
}

// Kind returns the document kind handled by this extractor.
func (e *Extractor) Kind() domain.DocumentKind {
	return domain.KindPDF
}

// Extract returns the text of all pages in order with no separator.
// A page without extractable text contributes an empty string; only a
// document that cannot be opened is an error.
func (e *Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	doc, err := e.open(data)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := doc.PageText(i)
		if err != nil {
			continue
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

// reader adapts *pdf.Reader to Document.
type reader struct {
	r *pdf.Reader
}

// Open parses data with github.com/ledongthuc/pdf.
func Open(data []byte) (Document, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return &reader{r: r}, nil
}

func (d *reader) NumPage() int {
	return d.r.NumPage()
}

// PageText extracts the text of a page row by row, top to bottom. Rows are
// separated by a newline; fragments within a row are joined as they are.
// The parser panics on some malformed content streams; those pages are
// reported as errors.
func (d *reader) PageText(i int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("page %d: %v", i, rec)
		}
	}()

	page := d.r.Page(i)
	if page.V.IsNull() {
		return "", nil
	}
	rows, err := page.GetTextByRow()
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		var b strings.Builder
		for _, t := range row.Content {
			b.WriteString(t.S)
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n"), nil
}
