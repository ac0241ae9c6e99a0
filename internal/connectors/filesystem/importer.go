package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
	"github.com/custodia-labs/dupecheck/internal/core/ports/driving"
	"github.com/custodia-labs/dupecheck/internal/logger"
)

// ImportFailure records a file that could not be added.
type ImportFailure struct {
	Path string
	Err  error
}

// ImportResult summarises one directory import.
type ImportResult struct {
	Added  []domain.Document
	Failed []ImportFailure
}

// WatchEvent reports what Follow did with one change.
type WatchEvent struct {
	Change   domain.FileChange
	Document *domain.Document
	Err      error
}

// Importer feeds files from a Connector into the DocumentService, at most
// perSecond files per second. It remembers which document each path became
// so later changes replace or remove it.
type Importer struct {
	docs    driving.DocumentService
	limiter *rate.Limiter

	mu      sync.Mutex
	tracked map[string]string // path -> document ID
}

// NewImporter creates an importer. A perSecond below 1 disables pacing.
func NewImporter(docs driving.DocumentService, perSecond int) *Importer {
	limit := rate.Inf
	burst := 1
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
		burst = perSecond
	}
	return &Importer{
		docs:    docs,
		limiter: rate.NewLimiter(limit, burst),
		tracked: make(map[string]string),
	}
}

// Import adds every importable file under the connector's root.
// Individual failures are collected; only a scan failure or a cancelled
// context aborts the import.
func (i *Importer) Import(ctx context.Context, conn *Connector) (*ImportResult, error) {
	paths, err := conn.Scan(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for _, path := range paths {
		doc, err := i.addFile(ctx, conn, path)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			logger.Warn("import: %s: %v", path, err)
			result.Failed = append(result.Failed, ImportFailure{Path: path, Err: err})
			continue
		}
		result.Added = append(result.Added, *doc)
	}

	logger.Info("import: %d added, %d failed from %s", len(result.Added), len(result.Failed), conn.RootPath())
	return result, nil
}

// Follow watches the connector and applies each change until ctx ends.
// Every applied change is reported to onEvent when it is non-nil.
func (i *Importer) Follow(ctx context.Context, conn *Connector, onEvent func(WatchEvent)) error {
	changes, err := conn.Watch(ctx)
	if err != nil {
		return err
	}
	for change := range changes {
		doc, err := i.Apply(ctx, conn, change)
		if err != nil {
			logger.Warn("watch: %s %s: %v", change.Type, change.Path, err)
		}
		if onEvent != nil {
			onEvent(WatchEvent{Change: change, Document: doc, Err: err})
		}
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}

// Apply handles one change. Created and updated files replace any document
// previously imported from the same path; deleted files remove it.
func (i *Importer) Apply(ctx context.Context, conn *Connector, change domain.FileChange) (*domain.Document, error) {
	switch change.Type {
	case domain.ChangeCreated, domain.ChangeUpdated:
		return i.addFile(ctx, conn, change.Path)
	case domain.ChangeDeleted:
		return nil, i.forget(ctx, change.Path)
	default:
		return nil, fmt.Errorf("%w: unknown change %s", domain.ErrInvalidInput, change.Type)
	}
}

// Tracked returns the document ID imported from path.
func (i *Importer) Tracked(path string) (string, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	id, ok := i.tracked[path]
	return id, ok
}

func (i *Importer) addFile(ctx context.Context, conn *Connector, path string) (*domain.Document, error) {
	if err := i.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc, err := i.docs.Add(ctx, conn.RelativeName(path), content)
	if err != nil {
		return nil, err
	}

	i.mu.Lock()
	previous, replaced := i.tracked[path]
	i.tracked[path] = doc.ID
	i.mu.Unlock()

	if replaced && previous != doc.ID {
		if err := i.docs.Delete(ctx, previous); err != nil && !domain.IsNotFound(err) {
			logger.Warn("import: could not remove previous version of %s: %v", path, err)
		}
	}
	logger.Debug("import: %s -> %s", path, doc.ID)
	return doc, nil
}

func (i *Importer) forget(ctx context.Context, path string) error {
	i.mu.Lock()
	id, ok := i.tracked[path]
	delete(i.tracked, path)
	i.mu.Unlock()

	if !ok {
		return nil
	}
	if err := i.docs.Delete(ctx, id); err != nil && !domain.IsNotFound(err) {
		return err
	}
	logger.Debug("import: removed %s (%s)", path, id)
	return nil
}
