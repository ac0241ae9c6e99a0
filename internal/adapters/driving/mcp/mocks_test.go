package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dupecheck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/dupecheck/internal/core/domain"
	"github.com/custodia-labs/dupecheck/internal/core/ports/driving"
	"github.com/custodia-labs/dupecheck/internal/core/services"
	"github.com/custodia-labs/dupecheck/internal/engine"
	"github.com/custodia-labs/dupecheck/internal/extractors"
	"github.com/custodia-labs/dupecheck/internal/extractors/plaintext"
)

// newTestServer builds a server over real memory-backed services.
func newTestServer(t *testing.T) (*Server, *Ports) {
	t.Helper()
	settings := domain.DefaultAppSettings()

	docs := services.NewDocumentService(
		memory.NewDocumentStore(),
		extractors.NewRegistry(plaintext.New()),
		settings.Upload,
	)
	eng, err := engine.New(engine.OptionsFromSettings(settings.Analysis))
	require.NoError(t, err)
	analysis := services.NewAnalysisService(eng, docs, settings.Analysis)
	require.NoError(t, analysis.Start(context.Background()))
	t.Cleanup(func() {
		analysis.Stop()
		_ = eng.Close()
	})

	ports := &Ports{Document: docs, Analysis: analysis}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server, ports
}

// mockDocumentService is a driving.DocumentService whose every call fails with err.
type mockDocumentService struct {
	err error
}

var _ driving.DocumentService = (*mockDocumentService)(nil)

func (m *mockDocumentService) Add(_ context.Context, _ string, _ []byte) (*domain.Document, error) {
	return nil, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return nil, m.err
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return nil, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockDocumentService) Clear(_ context.Context) (int, error) {
	return 0, m.err
}

func (m *mockDocumentService) Count(_ context.Context) (int, error) {
	return 0, m.err
}

func (m *mockDocumentService) ResolveIDs(_ context.Context, _ []string) ([]string, error) {
	return nil, m.err
}

func (m *mockDocumentService) Sources(_ context.Context, _ []string) ([]domain.SourceDocument, error) {
	return nil, m.err
}

func (m *mockDocumentService) SupportedExtensions() []string {
	return nil
}

// mockAnalysisService is a driving.AnalysisService whose every call fails with err.
type mockAnalysisService struct {
	err error
}

var _ driving.AnalysisService = (*mockAnalysisService)(nil)

func (m *mockAnalysisService) Create(_ context.Context, _ []string, _ domain.AnalysisConfig) (string, error) {
	return "", m.err
}

func (m *mockAnalysisService) Submit(_ context.Context, _ string) error {
	return m.err
}

func (m *mockAnalysisService) Analyze(_ context.Context, _ []string, _ domain.AnalysisConfig) (string, error) {
	return "", m.err
}

func (m *mockAnalysisService) Get(_ context.Context, _ string) (*domain.AnalysisJob, error) {
	return nil, m.err
}

func (m *mockAnalysisService) List(_ context.Context) ([]domain.AnalysisJob, error) {
	return nil, m.err
}

func (m *mockAnalysisService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockAnalysisService) Wait(_ context.Context, _ string) (*domain.AnalysisJob, error) {
	return nil, m.err
}

func (m *mockAnalysisService) DefaultConfig() domain.AnalysisConfig {
	return domain.DefaultAppSettings().Analysis.DefaultConfig()
}
