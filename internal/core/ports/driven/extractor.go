package driven

import (
	"context"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
)

// Extractor turns uploaded bytes into plain text.
// Each extractor handles specific MIME types (e.g., HTML, DOCX).
type Extractor interface {
	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific extractors should return 50-89.
	// Fallback extractors should return 1-9.
	Priority() int

	// Extract returns the text content of a raw document.
	Extract(ctx context.Context, raw *domain.RawDocument) (*ExtractResult, error)
}

// ExtractResult contains the output of content extraction.
type ExtractResult struct {
	// Text is the extracted plain text.
	Text string

	// Metadata contains format-specific key-value pairs (e.g., title).
	Metadata map[string]any
}

// ExtractorRegistry selects the extractor for a MIME type.
type ExtractorRegistry interface {
	// Register adds an extractor.
	Register(e Extractor)

	// Get returns the highest priority extractor for mimeType.
	// Returns domain.ErrUnsupportedType if none handles it.
	Get(mimeType string) (Extractor, error)

	// SupportedMIMETypes returns every MIME type some extractor handles.
	SupportedMIMETypes() []string
}
