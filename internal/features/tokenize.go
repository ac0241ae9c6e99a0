package features

import "strings"

// TokenizedDocument is a normalised document split into surviving terms.
type TokenizedDocument struct {
	ID     string
	Tokens []string
}

// Tokenizer splits normalised text on whitespace and drops stopwords.
type Tokenizer struct {
	stopwords StopwordSet
}

// NewTokenizer creates a tokenizer. A nil set keeps every token.
func NewTokenizer(stop StopwordSet) *Tokenizer {
	return &Tokenizer{stopwords: stop}
}

// Tokenize returns the ordered tokens of normalised text.
func (t *Tokenizer) Tokenize(normalized string) []string {
	fields := strings.Fields(normalized)
	if t.stopwords == nil {
		return fields
	}
	out := fields[:0]
	for _, tok := range fields {
		if t.stopwords.Contains(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}
