package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// MaxFilenameLength is the longest accepted upload filename.
const MaxFilenameLength = 255

// MIMEDocx is the Office Open XML word processing type.
const MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// MIMEPDF is the Portable Document Format type.
const MIMEPDF = "application/pdf"

// extensionTypes maps accepted upload extensions to MIME types.
var extensionTypes = map[string]string{
	".txt":      "text/plain",
	".text":     "text/plain",
	".csv":      "text/csv",
	".json":     "application/json",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".html":     "text/html",
	".htm":      "text/html",
	".xhtml":    "application/xhtml+xml",
	".docx":     MIMEDocx,
	".pdf":      MIMEPDF,
}

var invalidFilenameChars = regexp.MustCompile(`[<>:"|?*\x00]`)

// MIMETypeForFilename returns the MIME type implied by filename's extension.
// Returns ErrUnsupportedType for unknown extensions.
func MIMETypeForFilename(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	mimeType, ok := extensionTypes[ext]
	if !ok {
		return "", fmt.Errorf("%w: extension %q", ErrUnsupportedType, ext)
	}
	return mimeType, nil
}

// SupportedExtensions returns the accepted upload extensions in sorted order.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionTypes))
	for ext := range extensionTypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ValidateFilename rejects empty, overlong, or unsafe upload names.
func ValidateFilename(filename string) error {
	switch {
	case strings.TrimSpace(filename) == "":
		return fmt.Errorf("%w: filename is empty", ErrInvalidInput)
	case len(filename) > MaxFilenameLength:
		return fmt.Errorf("%w: filename longer than %d characters", ErrInvalidInput, MaxFilenameLength)
	case invalidFilenameChars.MatchString(filename):
		return fmt.Errorf("%w: filename contains invalid characters", ErrInvalidInput)
	}
	return nil
}
