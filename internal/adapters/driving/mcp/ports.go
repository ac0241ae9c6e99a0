package mcp

import (
	"github.com/custodia-labs/dupecheck/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Document manages the stored documents.
	Document driving.DocumentService

	// Analysis runs and tracks similarity jobs.
	Analysis driving.AnalysisService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	return nil
}
