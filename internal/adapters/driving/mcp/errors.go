// Package mcp provides an MCP (Model Context Protocol) server adapter for
// dupecheck. It lets AI assistants upload documents, start similarity
// analyses, and read their reports.
package mcp

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
)

var (
	// ErrMissingDocumentService is returned when the document service is not provided.
	ErrMissingDocumentService = errors.New("mcp: document service is required")

	// ErrMissingAnalysisService is returned when the analysis service is not provided.
	ErrMissingAnalysisService = errors.New("mcp: analysis service is required")
)

// toolError prefixes err with its stable kind so clients can branch on it.
// The SDK reports a handler error as a tool result with IsError set.
func toolError(err error) error {
	return fmt.Errorf("%s: %w", domain.ErrorKind(err), err)
}
