package domain

import (
	"strings"
	"time"
)

// Document is a stored upload in the Content Source.
// Content holds the extracted text; the raw bytes are not retained.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Filename is the original file name as uploaded.
	Filename string

	// Content is the extracted plain text.
	Content string

	// MIMEType is the detected content type of the upload.
	MIMEType string

	// Size is the upload size in bytes.
	Size int64

	// WordCount is the number of whitespace separated words in Content.
	WordCount int

	// UploadedAt is when the document was added.
	UploadedAt time.Time

	// Metadata contains extractor-specific key-value pairs.
	Metadata map[string]any
}

// Source returns the view of the document consumed by the analysis pipeline.
func (d Document) Source() SourceDocument {
	return SourceDocument{
		ID:         d.ID,
		Filename:   d.Filename,
		Text:       d.Content,
		UploadedAt: d.UploadedAt,
	}
}

// SourceDocument is the immutable tuple the Content Source yields for analysis.
type SourceDocument struct {
	ID         string
	Filename   string
	Text       string
	UploadedAt time.Time
}

// CountWords returns the number of whitespace separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
