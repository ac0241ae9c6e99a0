package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
	"github.com/custodia-labs/dupecheck/internal/core/ports/driven"
	"github.com/custodia-labs/dupecheck/internal/core/ports/driving"
	"github.com/custodia-labs/dupecheck/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages the Content Source: uploaded documents whose
// extracted text feeds the analysis pipeline.
type DocumentService struct {
	docStore   driven.DocumentStore
	extractors driven.ExtractorRegistry
	maxBytes   int64
	now        func() time.Time
	newID      func() string
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	docStore driven.DocumentStore,
	extractors driven.ExtractorRegistry,
	upload domain.UploadSettings,
) *DocumentService {
	return &DocumentService{
		docStore:   docStore,
		extractors: extractors,
		maxBytes:   upload.MaxBytes(),
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Add validates an upload, extracts its text, and stores it.
func (s *DocumentService) Add(ctx context.Context, filename string, content []byte) (*domain.Document, error) {
	if err := domain.ValidateFilename(filename); err != nil {
		return nil, err
	}

	mimeType, err := domain.MIMETypeForFilename(filename)
	if err != nil {
		return nil, err
	}

	size := int64(len(content))
	if size == 0 {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrInvalidInput, filename)
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", domain.ErrFileTooLarge, filename, size, s.maxBytes)
	}

	extractor, err := s.extractors.Get(mimeType)
	if err != nil {
		return nil, err
	}

	result, err := extractor.Extract(ctx, &domain.RawDocument{
		Filename: filename,
		MIMEType: mimeType,
		Content:  content,
	})
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", filename, err)
	}

	doc := &domain.Document{
		ID:         s.newID(),
		Filename:   filename,
		Content:    result.Text,
		MIMEType:   mimeType,
		Size:       size,
		WordCount:  domain.CountWords(result.Text),
		UploadedAt: s.now(),
		Metadata:   result.Metadata,
	}

	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("saving %s: %w", filename, err)
	}

	logger.Debug("documents: added %s (%s, %d words)", doc.ID, filename, doc.WordCount)
	return doc, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, notFound(err, documentID)
	}
	return doc, nil
}

// List returns all documents, newest first.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx)
}

// Delete removes a document.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	if err := s.docStore.DeleteDocument(ctx, documentID); err != nil {
		return notFound(err, documentID)
	}
	logger.Debug("documents: deleted %s", documentID)
	return nil
}

// Clear removes every document.
func (s *DocumentService) Clear(ctx context.Context) (int, error) {
	n, err := s.docStore.Clear(ctx)
	if err != nil {
		return 0, err
	}
	logger.Debug("documents: cleared %d", n)
	return n, nil
}

// Count returns the number of stored documents.
func (s *DocumentService) Count(ctx context.Context) (int, error) {
	return s.docStore.Count(ctx)
}

// ResolveIDs returns ids unchanged after checking each exists. With no ids
// it returns every stored document in upload order.
func (s *DocumentService) ResolveIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		docs, err := s.docStore.ListDocuments(ctx)
		if err != nil {
			return nil, err
		}
		resolved := make([]string, len(docs))
		for i, doc := range docs {
			// ListDocuments is newest first
			resolved[len(docs)-1-i] = doc.ID
		}
		return resolved, nil
	}

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: document %s listed twice", domain.ErrInvalidInput, id)
		}
		seen[id] = struct{}{}

		if _, err := s.docStore.GetDocument(ctx, id); err != nil {
			return nil, notFound(err, id)
		}
	}
	return append([]string(nil), ids...), nil
}

// Sources returns the analysis view of the requested documents, in order.
func (s *DocumentService) Sources(ctx context.Context, ids []string) ([]domain.SourceDocument, error) {
	sources := make([]domain.SourceDocument, 0, len(ids))
	for _, id := range ids {
		doc, err := s.docStore.GetDocument(ctx, id)
		if err != nil {
			return nil, notFound(err, id)
		}
		sources = append(sources, doc.Source())
	}
	return sources, nil
}

// SupportedExtensions returns the accepted filename extensions.
func (s *DocumentService) SupportedExtensions() []string {
	return domain.SupportedExtensions()
}

// notFound translates a store miss into domain.ErrDocumentNotFound.
func notFound(err error, id string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
	}
	return err
}
