package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
	"github.com/custodia-labs/dupecheck/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

type storedDocument struct {
	doc domain.Document
	seq uint64
}

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]storedDocument
	seq       uint64
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]storedDocument),
	}
}

// SaveDocument stores or updates a document.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, exists := s.documents[doc.ID]
	if !exists {
		s.seq++
		entry.seq = s.seq
	}
	entry.doc = copyDocument(*doc)
	s.documents[doc.ID] = entry
	return nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc := copyDocument(entry.doc)
	return &doc, nil
}

// ListDocuments returns all documents, newest upload first.
func (s *DocumentStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	entries := make([]storedDocument, 0, len(s.documents))
	for _, e := range s.documents {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.doc.UploadedAt.Equal(b.doc.UploadedAt) {
			return a.doc.UploadedAt.After(b.doc.UploadedAt)
		}
		return a.seq > b.seq
	})

	docs := make([]domain.Document, len(entries))
	for i, e := range entries {
		docs[i] = copyDocument(e.doc)
	}
	return docs, nil
}

// DeleteDocument removes a document.
func (s *DocumentStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.documents, id)
	return nil
}

// Clear removes every document.
func (s *DocumentStore) Clear(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.documents)
	s.documents = make(map[string]storedDocument)
	return n, nil
}

// Count returns the number of stored documents.
func (s *DocumentStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents), nil
}

// copyDocument detaches the metadata map from the caller's copy.
func copyDocument(doc domain.Document) domain.Document {
	if doc.Metadata != nil {
		meta := make(map[string]any, len(doc.Metadata))
		for k, v := range doc.Metadata {
			meta[k] = v
		}
		doc.Metadata = meta
	}
	return doc
}
