package domain

import (
	"mime"
	"strings"
)

// DocumentKind identifies one of the supported extraction paths.
type DocumentKind string

const (
	// KindWord is an Office Open XML word-processing document.
	KindWord DocumentKind = ".docx"
	// KindSpreadsheet is an Office Open XML workbook.
	KindSpreadsheet DocumentKind = ".xlsx"
	// KindPDF is a PDF document.
	KindPDF DocumentKind = ".pdf"
	// KindText is plain text and the fallback for unknown types.
	KindText DocumentKind = ".txt"
)

// contentTypeKinds is the fixed content type lookup table.
var contentTypeKinds = map[string]DocumentKind{
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": KindWord,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       KindSpreadsheet,
	"application/pdf": KindPDF,
	"text/plain":      KindText,
}

// KindForContentType maps a Content-Type header value to a DocumentKind.
// Parameters such as charset are ignored. Unknown types map to KindText;
// the bytes are never sniffed.
func KindForContentType(contentType string) DocumentKind {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	if kind, ok := contentTypeKinds[mediaType]; ok {
		return kind
	}
	return KindText
}

// FileEntry is one file of the document library listing.
type FileEntry struct {
	Name         string `json:"name"`
	FileID       string `json:"fileId"`
	Type         string `json:"type"`
	LastModified string `json:"lastModified"`
	Path         string `json:"path"`
}

// RawContent is a downloaded file before extraction.
type RawContent struct {
	// URL is the content endpoint the bytes came from.
	URL string
	// ContentType is the Content-Type response header.
	ContentType string
	// Data holds the response body.
	Data []byte
}

// ContentOptions controls post-processing of extracted text.
type ContentOptions struct {
	// Summary truncates the text to SummaryLimit characters.
	Summary bool
	// Debug exposes the content URL in the result.
	Debug bool
}

// FileContent is the extracted text of a single file.
// ContentURL is nil unless debug output was requested.
type FileContent struct {
	Content    string  `json:"content"`
	ContentURL *string `json:"contentUrl"`
}

// Summary mode constants.
const (
	// SummaryLimit is the number of characters kept in summary mode.
	SummaryLimit = 2000
	// TruncationMarker is appended to summarised text.
	TruncationMarker = "\n...\n[Content truncated]"
)

// Summarise keeps the first SummaryLimit characters of text and appends
// TruncationMarker. The marker is appended even when nothing was cut.
func Summarise(text string) string {
	if n := runeIndex(text, SummaryLimit); n >= 0 {
		text = text[:n]
	}
	return text + TruncationMarker
}

// runeIndex returns the byte offset of the n-th rune, or -1 if text is shorter.
func runeIndex(text string, n int) int {
	count := 0
	for i := range text {
		if count == n {
			return i
		}
		count++
	}
	return -1
}
