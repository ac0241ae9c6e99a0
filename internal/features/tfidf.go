package features

import (
	"math"
	"sort"
)

// Vectorizer converts tokenized documents into TF-IDF vectors against one Vocabulary.
type Vectorizer struct {
	vocab *Vocabulary
	idf   []float64
}

// NewVectorizer precomputes the smoothed inverse document frequency
// idf(t) = ln((N+1)/(df(t)+1)) + 1 for every vocabulary term.
func NewVectorizer(vocab *Vocabulary) *Vectorizer {
	n := float64(vocab.NumDocs())
	idf := make([]float64, vocab.Size())
	for i, df := range vocab.docFreq {
		idf[i] = math.Log((n+1)/(float64(df)+1)) + 1
	}
	return &Vectorizer{vocab: vocab, idf: idf}
}

// Transform weights each vocabulary term by its raw count times its idf.
// Tokens outside the vocabulary are ignored.
func (z *Vectorizer) Transform(doc TokenizedDocument) Vector {
	counts := make(map[int]int)
	for _, tok := range doc.Tokens {
		if i, ok := z.vocab.Index(tok); ok {
			counts[i]++
		}
	}

	vec := Vector{
		Dim:     z.vocab.Size(),
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for i := range counts {
		vec.Indices = append(vec.Indices, i)
	}
	sort.Ints(vec.Indices)
	for _, i := range vec.Indices {
		vec.Values = append(vec.Values, float64(counts[i])*z.idf[i])
	}
	return vec
}

// TransformAll vectorizes docs in order.
func (z *Vectorizer) TransformAll(docs []TokenizedDocument) []Vector {
	out := make([]Vector, len(docs))
	for i, doc := range docs {
		out[i] = z.Transform(doc)
	}
	return out
}
