package extractors

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
	"github.com/custodia-labs/dupecheck/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry holds extractors keyed by the MIME types they support.
type Registry struct {
	mu     sync.RWMutex
	byType map[string][]driven.Extractor
}

// NewRegistry creates a registry holding the given extractors.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{byType: make(map[string][]driven.Extractor)}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// Register adds an extractor for each MIME type it supports.
func (r *Registry) Register(e driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, mimeType := range e.SupportedMIMETypes() {
		list := append(r.byType[mimeType], e)
		// Highest priority first; equal priorities keep registration order.
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
		r.byType[mimeType] = list
	}
}

// Get returns the preferred extractor for mimeType.
func (r *Registry) Get(mimeType string) (driven.Extractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.byType[mimeType]
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, mimeType)
	}
	return list[0], nil
}

// SupportedMIMETypes returns every MIME type with at least one extractor.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.byType))
	for t := range r.byType {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
