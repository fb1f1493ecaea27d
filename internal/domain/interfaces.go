package domain

import "context"

// FAQ is one stored question/answer record. Entries are identified by their
// position in the loaded corpus, which stays stable for the process lifetime.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// Source tells the caller which path produced an answer.
type Source string

const (
	// SourceLocalMatch means the answer came straight from a stored FAQ.
	SourceLocalMatch Source = "faq"
	// SourceGenerated means the answer was produced by the completion backend.
	SourceGenerated Source = "generated"
	// SourceError means the completion backend failed and a fixed apology
	// was returned instead.
	SourceError Source = "error"
)

// Answer is the final result of one query. It is always complete: the
// engine absorbs backend failures and low-confidence matches internally.
type Answer struct {
	Text       string  `json:"text"`
	Source     Source  `json:"source"`
	Confidence float64 `json:"confidence"`
}

// Match pairs a corpus entry with its similarity score against a query.
type Match struct {
	Index int
	Entry FAQ
	Score float64
}

// Vectorizer converts free text into a fixed-length weight vector.
// Fit must be called once over the corpus questions before Vectorize.
type Vectorizer interface {
	Fit(corpus []string) error
	Dimension() int
	Vectorize(text string) []float64
}

// Storage persists entry vectors and answers nearest-neighbor queries.
// Search results are ordered by descending score, ties broken by
// ascending corpus index.
type Storage interface {
	Init(dimension int) error
	Upsert(entries []FAQ, vectors [][]float64) error
	Search(vector []float64, topK int) ([]Match, error)
	Clear() error
}

// Completer is the opaque text-completion backend. Failures surface as a
// typed backend error, never a raw transport error.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Bot defines the operations the engine exposes to front-ends.
type Bot interface {
	Answer(ctx context.Context, query string) Answer
	Categories() []string
	QuestionsInCategory(name string) []string
}
