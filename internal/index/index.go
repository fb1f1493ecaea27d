// Package index fits a term-weighting vector space over the corpus
// questions and serves nearest-neighbor and top-k queries against it.
package index

import (
	"fmt"

	"faqbot/internal/corpus"
	"faqbot/internal/domain"
)

// Index is the fitted similarity index over one corpus. It is built once
// and read-only afterwards; a corpus change requires a full rebuild.
type Index struct {
	corpus     *corpus.Corpus
	vectorizer domain.Vectorizer
	store      domain.Storage
}

// Build fits the vectorizer on the corpus questions and loads one vector
// per entry into the storage backend.
func Build(c *corpus.Corpus, v domain.Vectorizer, s domain.Storage) (*Index, error) {
	questions := c.Questions()
	if err := v.Fit(questions); err != nil {
		return nil, fmt.Errorf("fit vectorizer: %w", err)
	}
	// drop leftovers first: Init may create fresh backing storage with a
	// new dimension
	if err := s.Clear(); err != nil {
		return nil, fmt.Errorf("clear storage: %w", err)
	}
	if err := s.Init(v.Dimension()); err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	vectors := make([][]float64, len(questions))
	for i, q := range questions {
		vectors[i] = v.Vectorize(q)
	}
	if err := s.Upsert(c.Entries(), vectors); err != nil {
		return nil, fmt.Errorf("load vectors: %w", err)
	}
	return &Index{corpus: c, vectorizer: v, store: s}, nil
}

// Corpus returns the corpus this index was built from.
func (ix *Index) Corpus() *corpus.Corpus { return ix.corpus }

// Release frees backend resources held by the index's storage, if it
// holds any (remote stores drop their per-build collection). Call only
// after a replacement index has been swapped in.
func (ix *Index) Release() error {
	if r, ok := ix.store.(interface{ Release() error }); ok {
		return r.Release()
	}
	return nil
}

// Score computes the cosine similarity of the query against every corpus
// entry, keyed by entry index. Scores are in [0,1]; a query sharing no
// vocabulary with the corpus scores 0 everywhere.
func (ix *Index) Score(query string) (map[int]float64, error) {
	matches, err := ix.store.Search(ix.vectorizer.Vectorize(query), ix.corpus.Len())
	if err != nil {
		return nil, err
	}
	scores := make(map[int]float64, len(matches))
	for _, m := range matches {
		scores[m.Index] = clamp01(m.Score)
	}
	return scores, nil
}

// BestMatch returns the highest-scoring entry. ok is false when the best
// score is below threshold; the match score is still reported so callers
// can use it to decide fallback behavior. Ties resolve to the lowest
// corpus index.
func (ix *Index) BestMatch(query string, threshold float64) (domain.Match, bool, error) {
	matches, err := ix.store.Search(ix.vectorizer.Vectorize(query), 1)
	if err != nil {
		return domain.Match{}, false, err
	}
	if len(matches) == 0 {
		return domain.Match{Index: -1}, false, nil
	}
	best := matches[0]
	best.Score = clamp01(best.Score)
	return best, best.Score >= threshold, nil
}

// TopK returns up to k entries with score >= threshold, ordered by
// descending score with ties broken by ascending corpus index.
func (ix *Index) TopK(query string, k int, threshold float64) ([]domain.Match, error) {
	if k <= 0 {
		return nil, nil
	}
	matches, err := ix.store.Search(ix.vectorizer.Vectorize(query), k)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Match, 0, len(matches))
	for _, m := range matches {
		m.Score = clamp01(m.Score)
		if m.Score >= threshold {
			out = append(out, m)
		}
	}
	return out, nil
}

// clamp01 keeps similarities inside [0,1] regardless of the storage
// backend's float arithmetic.
func clamp01(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
