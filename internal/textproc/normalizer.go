// Package textproc normalizes free text into tokens for indexing and
// query matching: lower-casing, punctuation stripping, stopword removal
// and dictionary lemmatization.
package textproc

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

//go:embed stopwords.txt
var stopwordData string

//go:embed lemmas.json
var lemmaData []byte

// Normalizer turns raw text into a token sequence. It is stateless per
// call and safe for concurrent use. A degraded normalizer only
// lower-cases and splits on whitespace; it is used when the linguistic
// resources are unavailable.
type Normalizer struct {
	stopwords map[string]struct{}
	lemmas    map[string]string
	degraded  bool
}

// New builds a normalizer from the embedded stopword and lemma resources.
// A resource failure here is fatal: callers must not serve queries with a
// broken normalizer and should fall back to NewDegraded explicitly.
func New() (*Normalizer, error) {
	return build(stopwordData, lemmaData)
}

// NewDegraded returns the degraded normalizer (lower-case + whitespace
// split only). It is deterministic and never fails.
func NewDegraded() *Normalizer {
	return &Normalizer{degraded: true}
}

func build(stopwords string, lemmas []byte) (*Normalizer, error) {
	n := &Normalizer{
		stopwords: make(map[string]struct{}),
		lemmas:    make(map[string]string),
	}
	for _, line := range strings.Split(stopwords, "\n") {
		w := strings.TrimSpace(line)
		if w != "" {
			n.stopwords[w] = struct{}{}
		}
	}
	if len(n.stopwords) == 0 {
		return nil, errors.New("stopword resource is empty")
	}
	if err := json.Unmarshal(lemmas, &n.lemmas); err != nil {
		return nil, fmt.Errorf("parse lemma resource: %w", err)
	}
	return n, nil
}

// Degraded reports whether this normalizer runs the reduced pipeline.
func (n *Normalizer) Degraded() bool { return n.degraded }

// Normalize tokenizes text: lower-case, split on whitespace, strip
// non-alphanumeric characters, drop non-alphabetic tokens and stopwords,
// then lemmatize. It is a pure function of its input.
func (n *Normalizer) Normalize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	if n.degraded {
		return fields
	}
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := stripNonAlnum(f)
		if tok == "" || !isAlpha(tok) {
			continue
		}
		if _, stop := n.stopwords[tok]; stop {
			continue
		}
		out = append(out, n.lemmatize(tok))
	}
	return out
}

// lemmatize reduces a token to its dictionary base form: exception table
// first, then regular English plural suffix rules.
func (n *Normalizer) lemmatize(tok string) string {
	if base, ok := n.lemmas[tok]; ok {
		return base
	}
	switch {
	case strings.HasSuffix(tok, "ies") && len(tok) > 4:
		return tok[:len(tok)-3] + "y"
	case hasAnySuffix(tok, "sses", "ches", "shes", "xes", "zes") && len(tok) > 4:
		return tok[:len(tok)-2]
	case strings.HasSuffix(tok, "s") && len(tok) > 3 &&
		!hasAnySuffix(tok, "ss", "us", "is"):
		return tok[:len(tok)-1]
	}
	return tok
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
