package driving

import (
	"context"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
)

// DocumentService manages the Content Source.
type DocumentService interface {
	// Add extracts and stores an upload. The MIME type is detected
	// from the filename extension.
	Add(ctx context.Context, filename string, content []byte) (*domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// List returns all documents, newest first.
	List(ctx context.Context) ([]domain.Document, error)

	// Delete removes a document.
	Delete(ctx context.Context, documentID string) error

	// Clear removes every document and returns how many were removed.
	Clear(ctx context.Context) (int, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)

	// ResolveIDs returns the ordered document set an analysis would use:
	// exactly ids when given, otherwise every stored document.
	// Unknown ids fail with domain.ErrDocumentNotFound.
	ResolveIDs(ctx context.Context, ids []string) ([]string, error)

	// Sources returns the analysis view of exactly the requested documents, in order.
	Sources(ctx context.Context, ids []string) ([]domain.SourceDocument, error)

	// SupportedExtensions returns the accepted filename extensions.
	SupportedExtensions() []string
}
