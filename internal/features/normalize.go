package features

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// Normalize lowercases text, replaces every character outside [a-z0-9]
// and whitespace with a space, collapses whitespace runs and trims.
// It fails with domain.ErrEmptyDocument when nothing is left.
func Normalize(raw string) (string, error) {
	if raw == "" {
		return "", domain.ErrEmptyDocument
	}

	text := strings.ToLower(raw)
	text = nonAlphanumeric.ReplaceAllString(text, " ")
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if text == "" {
		return "", domain.ErrEmptyDocument
	}
	return text, nil
}
