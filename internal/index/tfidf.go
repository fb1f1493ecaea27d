package index

import (
	"errors"
	"math"
	"sort"

	"faqbot/internal/textproc"
)

// TFIDF implements a TF-IDF vectorizer over a fixed corpus. It builds a
// vocabulary from the corpus and computes smoothed IDF values; query
// vectors are produced against the same fitted vocabulary, with
// out-of-vocabulary tokens contributing zero weight.
type TFIDF struct {
	normalizer *textproc.Normalizer
	vocabulary map[string]int
	idf        []float64
	dimension  int
	fitted     bool
}

// NewTFIDF creates an unfitted vectorizer using the given normalizer.
func NewTFIDF(n *textproc.Normalizer) *TFIDF {
	return &TFIDF{
		normalizer: n,
		vocabulary: make(map[string]int),
	}
}

// Fit builds the vocabulary and IDF values from the corpus texts.
func (v *TFIDF) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("empty corpus for TF-IDF fit")
	}
	// Document frequencies over normalized tokens
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range v.normalizer.Normalize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	// Stable dimension ordering
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if len(terms) == 0 {
		return errors.New("no tokens found in corpus questions")
	}
	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	N := float64(len(corpus))
	for i, term := range terms {
		v.vocabulary[term] = i
		// Smoothed IDF
		v.idf[i] = math.Log((1+N)/(1+float64(df[term]))) + 1.0
	}
	v.dimension = len(terms)
	v.fitted = true
	return nil
}

// Dimension returns the vector length after fitting.
func (v *TFIDF) Dimension() int { return v.dimension }

// Vectorize computes the L2-normalized TF-IDF vector for text. A text
// with no in-vocabulary tokens yields the zero vector.
func (v *TFIDF) Vectorize(text string) []float64 {
	vec := make([]float64, v.dimension)
	if !v.fitted {
		return vec
	}
	tf := make(map[int]int)
	total := 0
	for _, tok := range v.normalizer.Normalize(text) {
		if idx, ok := v.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec
	}
	for idx, count := range tf {
		vec[idx] = float64(count) / float64(total) * v.idf[idx]
	}
	// L2 normalize so dot products are cosine similarities
	norm := 0.0
	for _, x := range vec {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
