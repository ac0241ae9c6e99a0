package features

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
)

// Vocabulary is the term index shared by every vector of one job.
// Indices run 0..Size()-1 in descending document frequency order,
// ties broken by ascending term.
type Vocabulary struct {
	terms   []string
	index   map[string]int
	docFreq []int
	numDocs int
}

// FitVocabulary builds a Vocabulary over the whole corpus.
//
// Terms seen in fewer than minDocFreq documents are dropped. When more than
// maxVocabSize terms survive, only the top maxVocabSize by document
// frequency are kept, equal frequencies ordered lexicographically.
// It fails with domain.ErrEmptyCorpus when no document has a single token.
func FitVocabulary(docs []TokenizedDocument, maxVocabSize, minDocFreq int) (*Vocabulary, error) {
	if maxVocabSize < 1 {
		return nil, fmt.Errorf("%w: max vocabulary size %d", domain.ErrInvalidInput, maxVocabSize)
	}
	if minDocFreq < 1 {
		minDocFreq = 1
	}

	df := make(map[string]int)
	tokens := 0
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc.Tokens))
		for _, tok := range doc.Tokens {
			tokens++
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if tokens == 0 {
		return nil, domain.ErrEmptyCorpus
	}

	terms := make([]string, 0, len(df))
	for term, n := range df {
		if n >= minDocFreq {
			terms = append(terms, term)
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxVocabSize {
		terms = terms[:maxVocabSize]
	}

	v := &Vocabulary{
		terms:   terms,
		index:   make(map[string]int, len(terms)),
		docFreq: make([]int, len(terms)),
		numDocs: len(docs),
	}
	for i, term := range terms {
		v.index[term] = i
		v.docFreq[i] = df[term]
	}
	return v, nil
}

// Size returns the number of terms.
func (v *Vocabulary) Size() int {
	return len(v.terms)
}

// NumDocs returns the corpus size the vocabulary was fitted on.
func (v *Vocabulary) NumDocs() int {
	return v.numDocs
}

// Index returns the index of term.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

