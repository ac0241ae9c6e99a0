package pdf

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
	"github.com/custodia-labs/dupecheck/internal/core/ports/driven"
)

const fakePDF = "%PDF-1.4 fake pdf content"

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error

	name  string
	args  []string
	input []byte
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.name = name
	m.args = args
	// The input file is the second to last argument and only exists during the call.
	if len(args) >= 2 {
		m.input, _ = os.ReadFile(args[len(args)-2])
	}
	return m.output, m.err
}

func TestNew(t *testing.T) {
	e := New()
	require.NotNil(t, e)
	assert.IsType(t, execRunner{}, e.runner)
	assert.Equal(t, []string{MIMEType}, e.SupportedMIMETypes())
	assert.Equal(t, 50, e.Priority())
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Extractor = (*Extractor)(nil)
}

func TestNewWithRunner(t *testing.T) {
	runner := &mockRunner{output: []byte("test output")}
	e := NewWithRunner(runner)
	require.NotNil(t, e)
	assert.Equal(t, runner, e.runner)
}

func TestExtract_WithMockRunner(t *testing.T) {
	runner := &mockRunner{
		output: []byte("PDF Title\n\nThis is the content of the PDF.\n\fSecond page.\n"),
	}
	raw := &domain.RawDocument{
		Filename: "reports/document.pdf",
		MIMEType: MIMEType,
		Content:  []byte(fakePDF),
	}

	result, err := NewWithRunner(runner).Extract(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "PDF Title\n\nThis is the content of the PDF.\n\nSecond page.", result.Text)
	assert.Equal(t, "PDF Title", result.Metadata["title"])
	assert.Equal(t, "pdf", result.Metadata["format"])

	assert.Equal(t, "pdftotext", runner.name)
	assert.Equal(t, "-", runner.args[len(runner.args)-1])
	assert.Contains(t, runner.args, "UTF-8")
	assert.Equal(t, fakePDF, string(runner.input))
	_, statErr := os.Stat(runner.args[len(runner.args)-2])
	assert.True(t, os.IsNotExist(statErr), "temp file should be removed")
}

func TestExtract_RunnerError(t *testing.T) {
	runner := &mockRunner{err: errors.New("pdftotext crashed")}
	raw := &domain.RawDocument{Filename: "broken.pdf", Content: []byte(fakePDF)}

	result, err := NewWithRunner(runner).Extract(context.Background(), raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "pdftotext failed")
	assert.Nil(t, result)
}

func TestExtract_ToolNotFound(t *testing.T) {
	runner := &mockRunner{err: ErrPDFToolNotFound}
	raw := &domain.RawDocument{Filename: "a.pdf", Content: []byte(fakePDF)}

	_, err := NewWithRunner(runner).Extract(context.Background(), raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPDFToolNotFound)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Equal(t, domain.KindUnsupportedFile, domain.ErrorKind(err))
}

func TestExtract_NotPDF(t *testing.T) {
	runner := &mockRunner{output: []byte("never used")}
	raw := &domain.RawDocument{Filename: "fake.pdf", Content: []byte("plain text pretending")}

	_, err := NewWithRunner(runner).Extract(context.Background(), raw)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, runner.name)
}

func TestExtract_Nil(t *testing.T) {
	_, err := New().Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		filename string
		expected string
	}{
		{
			name:     "first line as title",
			content:  "Document Title\n\nSome content here.",
			filename: "doc.pdf",
			expected: "Document Title",
		},
		{
			name:     "skip empty lines",
			content:  "\n\n\nActual Title\nContent",
			filename: "doc.pdf",
			expected: "Actual Title",
		},
		{
			name:     "fallback to filename",
			content:  "",
			filename: "path/to/my_document.pdf",
			expected: "my document",
		},
		{
			name:     "skip very long first line",
			content:  strings.Repeat("x", 250) + "\nShort Title\nContent",
			filename: "doc.pdf",
			expected: "Short Title",
		},
		{
			name:     "no content and no filename",
			content:  "",
			filename: "",
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, extractTitle(tc.content, tc.filename))
		})
	}
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "pdftotext")
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}

func TestErrPDFToolNotFound(t *testing.T) {
	assert.Contains(t, ErrPDFToolNotFound.Error(), "pdftotext")
}

// Runs only where poppler is installed.
func TestExecRunner_Integration(t *testing.T) {
	if err := CheckAvailable(); err != nil {
		t.Skip("pdftotext not available, skipping integration test")
	}

	_, err := execRunner{}.Run(context.Background(), toolName, "-v")
	assert.NoError(t, err)
}

func TestExecRunner_MissingTool(t *testing.T) {
	_, err := execRunner{}.Run(context.Background(), "dupecheck-no-such-tool")
	assert.ErrorIs(t, err, ErrPDFToolNotFound)
}
