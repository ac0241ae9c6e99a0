package driven

import (
	"context"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
)

// DocumentStore persists uploaded documents for the Content Source.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns all documents, newest upload first.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a document.
	// Returns domain.ErrNotFound if it does not exist.
	DeleteDocument(ctx context.Context, id string) error

	// Clear removes every document and returns how many were removed.
	Clear(ctx context.Context) (int, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)
}
