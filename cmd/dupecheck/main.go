// Command dupecheck finds near-duplicate documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/dupecheck/internal/adapters/driven/config/env"
	"github.com/custodia-labs/dupecheck/internal/adapters/driven/config/file"
	"github.com/custodia-labs/dupecheck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/dupecheck/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/dupecheck/internal/adapters/driving/cli"
	"github.com/custodia-labs/dupecheck/internal/core/domain"
	"github.com/custodia-labs/dupecheck/internal/core/ports/driven"
	"github.com/custodia-labs/dupecheck/internal/core/services"
	"github.com/custodia-labs/dupecheck/internal/engine"
	"github.com/custodia-labs/dupecheck/internal/extractors"
	"github.com/custodia-labs/dupecheck/internal/extractors/docx"
	"github.com/custodia-labs/dupecheck/internal/extractors/html"
	"github.com/custodia-labs/dupecheck/internal/extractors/markdown"
	"github.com/custodia-labs/dupecheck/internal/extractors/pdf"
	"github.com/custodia-labs/dupecheck/internal/extractors/plaintext"
	"github.com/custodia-labs/dupecheck/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := env.LoadDotEnv(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}

	fileStore, err := file.NewConfigStore(os.Getenv(env.Prefix + "CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(env.NewStore(fileStore))

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	app, err := newApp(ctx, settings, os.Getenv(env.Prefix+"DATA_DIR"))
	if err != nil {
		return err
	}
	defer app.Close()

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Document: app.documents,
		Analysis: app.analysis,
		Settings: settingsService,
	})
	return cli.Execute(ctx)
}

// app holds the running core services and what must be released on exit.
type app struct {
	documents *services.DocumentService
	analysis  *services.AnalysisService
	engine    *engine.Engine
	closers   []io.Closer
}

// newApp composes the core services from settings and starts the worker pool.
// An empty dataDir selects the store's default location.
func newApp(ctx context.Context, settings *domain.AppSettings, dataDir string) (*app, error) {
	store, closer, err := openDocumentStore(settings.Storage.Backend, dataDir)
	if err != nil {
		return nil, err
	}

	registry := extractors.NewRegistry(
		plaintext.New(),
		markdown.New(),
		html.New(),
		docx.New(),
		pdf.New(),
	)
	documents := services.NewDocumentService(store, registry, settings.Upload)

	eng, err := engine.New(engine.OptionsFromSettings(settings.Analysis))
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	analysis := services.NewAnalysisService(eng, documents, settings.Analysis)
	if err := analysis.Start(ctx); err != nil {
		_ = eng.Close()
		if closer != nil {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("starting analysis workers: %w", err)
	}

	a := &app{documents: documents, analysis: analysis, engine: eng}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}
	return a, nil
}

// Close stops the worker pool, then releases the engine and the store.
func (a *app) Close() error {
	a.analysis.Stop()
	errs := []error{a.engine.Close()}
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// openDocumentStore returns the configured store and its closer, if any.
func openDocumentStore(backend domain.StorageBackend, dataDir string) (driven.DocumentStore, io.Closer, error) {
	switch backend {
	case domain.StorageMemory:
		logger.Debug("storage: memory")
		return memory.NewDocumentStore(), nil, nil
	case domain.StorageSQLite:
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening document store: %w", err)
		}
		logger.Debug("storage: sqlite")
		return store.DocumentStore(), store, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown storage backend %q", domain.ErrInvalidInput, backend)
	}
}
