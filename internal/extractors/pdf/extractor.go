// Package pdf provides an Extractor for PDF documents.
// Text is extracted by the external pdftotext tool from poppler.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
	"github.com/custodia-labs/dupecheck/internal/core/ports/driven"
)

// MIMEType is the PDF document type.
const MIMEType = domain.MIMEPDF

const toolName = "pdftotext"

// maxTitleLength is the longest first line accepted as a title.
const maxTitleLength = 200

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// CommandRunner runs an external command and returns its standard output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, ErrPDFToolNotFound
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}

// Extractor handles PDF documents.
type Extractor struct {
	runner CommandRunner
}

// New creates a PDF extractor that shells out to pdftotext.
func New() *Extractor {
	return NewWithRunner(execRunner{})
}

// NewWithRunner creates a PDF extractor using the given command runner.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// CheckAvailable reports whether pdftotext can be found in PATH.
func CheckAvailable() error {
	if _, err := exec.LookPath(toolName); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions describes how to install pdftotext.
func InstallInstructions() string {
	return `PDF extraction requires pdftotext (part of poppler):
  macOS:         brew install poppler
  Debian/Ubuntu: sudo apt install poppler-utils
  Fedora:        sudo dnf install poppler-utils`
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{MIMEType}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50 // Generic MIME extractor
}

// Extract converts the PDF to text. pdftotext reads from a temporary file
// and writes UTF-8 text to standard output.
func (e *Extractor) Extract(ctx context.Context, raw *domain.RawDocument) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if !bytes.HasPrefix(raw.Content, []byte("%PDF-")) {
		return nil, fmt.Errorf("%w: not a pdf file", domain.ErrInvalidInput)
	}

	tmp, err := os.CreateTemp("", "dupecheck-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	_, err = tmp.Write(raw.Content)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("writing temp file: %w", err)
	}

	out, err := e.runner.Run(ctx, toolName, "-enc", "UTF-8", "-q", tmp.Name(), "-")
	switch {
	case errors.Is(err, ErrPDFToolNotFound):
		return nil, fmt.Errorf("%w: %w", domain.ErrUnsupportedType, err)
	case err != nil:
		return nil, fmt.Errorf("%w: pdftotext failed: %v", domain.ErrInvalidInput, err)
	}

	text := cleanText(string(out))
	metadata := map[string]any{"format": "pdf"}
	if title := extractTitle(text, raw.Filename); title != "" {
		metadata["title"] = title
	}

	return &driven.ExtractResult{
		Text:     text,
		Metadata: metadata,
	}, nil
}

// cleanText replaces page breaks and invalid UTF-8 and trims the result.
func cleanText(text string) string {
	text = strings.ToValidUTF8(text, "�")
	text = strings.ReplaceAll(text, "\f", "\n")
	return strings.TrimSpace(text)
}

// extractTitle returns the first short non-empty line, falling back to the
// filename without its extension.
func extractTitle(content, filename string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && len(line) <= maxTitleLength {
			return line
		}
	}

	base := filepath.Base(filename)
	if base == "." || base == "/" {
		return ""
	}
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.NewReplacer("_", " ", "-", " ").Replace(name)
}
