package features

import (
	"fmt"
	"strings"

	"github.com/orsinium-labs/stopwords"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
)

// StopwordsNone disables the language list; only extra words are removed.
const StopwordsNone = "none"

// StopwordSet reports whether a token is dropped before vocabulary fitting.
type StopwordSet interface {
	Contains(word string) bool
}

// wordSet is a fixed set of lowercase words.
type wordSet map[string]struct{}

func (s wordSet) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// stopwordList combines a language list with extra words.
type stopwordList struct {
	language func(string) bool
	extra    wordSet
}

func (l *stopwordList) Contains(word string) bool {
	if l.extra.Contains(word) {
		return true
	}
	return l.language != nil && l.language(word)
}

// LoadStopwords returns the stopword set for an ISO 639-1 language code
// plus any extra words. Extra words are lowercased and trimmed.
func LoadStopwords(language string, extra ...string) (set StopwordSet, err error) {
	list := &stopwordList{extra: make(wordSet, len(extra))}
	for _, w := range extra {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			list.extra[w] = struct{}{}
		}
	}

	language = strings.ToLower(strings.TrimSpace(language))
	if language == StopwordsNone {
		return list, nil
	}

	// MustGet panics for languages it does not ship.
	defer func() {
		if r := recover(); r != nil {
			set = nil
			err = fmt.Errorf("%w: no stopword list for language %q", domain.ErrInvalidInput, language)
		}
	}()
	words := stopwords.MustGet(language)
	list.language = words.Contains

	return list, nil
}

// NewWordSet builds a StopwordSet from literal words.
func NewWordSet(words ...string) StopwordSet {
	set := make(wordSet, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}
