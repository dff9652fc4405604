// Package docx extracts paragraph text from Office Open XML word documents.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/sharepoint-reader/internal/core/domain"
	"github.com/custodia-labs/sharepoint-reader/internal/core/ports/driven"
)

// ErrNoDocumentPart is returned when the package has no word/document.xml.
var ErrNoDocumentPart = errors.New("docx: word/document.xml not found")

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

const documentPart = "word/document.xml"

// Extractor reads the main document part of a .docx package.
type Extractor struct{}

// New creates a new word document extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the document kind handled by this extractor.
func (e *Extractor) Kind() domain.DocumentKind {
	return domain.KindWord
}

// Extract returns the text of every body-level paragraph, joined by "\n".
// Paragraphs inside tables and text boxes are not included.
func (e *Extractor) Extract(_ context.Context, data []byte) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open package: %w", err)
	}

	var part *zip.File
	for _, f := range r.File {
		if strings.EqualFold(f.Name, documentPart) {
			part = f
			break
		}
	}
	if part == nil {
		return "", ErrNoDocumentPart
	}

	rc, err := part.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", documentPart, err)
	}
	defer rc.Close()

	paragraphs, err := bodyParagraphs(rc)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", documentPart, err)
	}
	return strings.Join(paragraphs, "\n"), nil
}

// bodyParagraphs walks document.xml and returns the text of each w:p that
// is a direct child of w:body.
func bodyParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		stack      []string
		current    strings.Builder
		inPara     bool // inside a body-level paragraph
		nested     int  // depth of paragraphs nested in the current one
		inText     bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			parent := ""
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			stack = append(stack, name)

			switch {
			case name == "p" && !inPara && parent == "body":
				inPara = true
				current.Reset()
			case name == "p" && inPara:
				nested++
			case !inPara || nested > 0:
			case name == "t":
				inText = true
			case name == "tab" && parent == "r":
				current.WriteByte('\t')
			case (name == "br" || name == "cr") && parent == "r":
				current.WriteByte('\n')
			}

		case xml.EndElement:
			name := t.Name.Local
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

			switch {
			case name == "p" && nested > 0:
				nested--
			case name == "p" && inPara:
				paragraphs = append(paragraphs, current.String())
				inPara = false
			case name == "t":
				inText = false
			}

		case xml.CharData:
			if inText && inPara && nested == 0 {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
