// Package chatbot implements the hybrid question-answering engine: a
// lexical-similarity matcher over the FAQ corpus with a confidence-gated
// fallback to a generative completion backend grounded on retrieved FAQs.
package chatbot

import (
	"context"
	"log"
	"sync"

	"faqbot/internal/corpus"
	"faqbot/internal/domain"
	"faqbot/internal/index"
)

// Options are the matching policy knobs. LocalMatchThreshold decides
// between the local matcher and the generative fallback; lower values
// favor the cheap local matcher. ContextThreshold only gates which FAQs
// are retrieved as prompt context for the fallback.
type Options struct {
	LocalMatchThreshold float64
	ContextThreshold    float64
	ContextTopK         int
}

// DefaultOptions returns the standard matching policy.
func DefaultOptions() Options {
	return Options{
		LocalMatchThreshold: 0.6,
		ContextThreshold:    0.2,
		ContextTopK:         3,
	}
}

// IndexBuilder constructs a fresh similarity index for a corpus. The
// service uses it at startup and on every explicit reload, so each
// rebuild gets its own fitted vocabulary and storage.
type IndexBuilder func(*corpus.Corpus) (*index.Index, error)

// Service is the hybrid orchestrator. The index is read-only between
// reloads and shared by all concurrent queries; the mutex only guards
// the index pointer swap.
type Service struct {
	mu        sync.RWMutex
	index     *index.Index
	build     IndexBuilder
	completer domain.Completer
	opts      Options
}

// New builds the initial index for c and returns a ready service. A
// build failure here is fatal: the process must not serve queries
// without a fitted index.
func New(c *corpus.Corpus, build IndexBuilder, completer domain.Completer, opts Options) (*Service, error) {
	ix, err := build(c)
	if err != nil {
		return nil, err
	}
	if opts.ContextTopK <= 0 {
		opts.ContextTopK = DefaultOptions().ContextTopK
	}
	return &Service{
		index:     ix,
		build:     build,
		completer: completer,
		opts:      opts,
	}, nil
}

// Answer resolves one query. It never fails partway: backend errors and
// low-confidence matches are absorbed into a complete Answer value.
func (s *Service) Answer(ctx context.Context, query string) domain.Answer {
	ix := s.snapshot()

	match, ok, err := ix.BestMatch(query, s.opts.LocalMatchThreshold)
	if err != nil {
		log.Printf("[WARN] similarity lookup failed, falling back to generation: %v", err)
		return s.generate(ctx, ix, query, 0)
	}
	if ok {
		return domain.Answer{
			Text:       match.Entry.Answer,
			Source:     domain.SourceLocalMatch,
			Confidence: match.Score,
		}
	}
	return s.generate(ctx, ix, query, match.Score)
}

// generate runs the retrieval-augmented fallback: fetch top-k FAQs as
// grounding context, build the prompt and call the completion backend.
// The backend's answer is authoritative; its failure yields the fixed
// apology, never an error to the caller.
func (s *Service) generate(ctx context.Context, ix *index.Index, query string, bestScore float64) domain.Answer {
	matches, err := ix.TopK(query, s.opts.ContextTopK, s.opts.ContextThreshold)
	if err != nil {
		log.Printf("[WARN] context retrieval failed, generating without FAQ context: %v", err)
		matches = nil
	}
	text, err := s.completer.Complete(ctx, systemPrompt, buildUserPrompt(matches, query))
	if err != nil {
		log.Printf("[WARN] completion backend failed: %v", err)
		return domain.Answer{
			Text:       apologyText,
			Source:     domain.SourceError,
			Confidence: 0,
		}
	}
	return domain.Answer{
		Text:       text,
		Source:     domain.SourceGenerated,
		Confidence: bestScore,
	}
}

// Categories returns all corpus category names in ascending order.
func (s *Service) Categories() []string {
	return s.snapshot().Corpus().Categories()
}

// QuestionsInCategory returns the questions of the named category in
// corpus order; unknown categories yield an empty slice.
func (s *Service) QuestionsInCategory(name string) []string {
	return s.snapshot().Corpus().QuestionsInCategory(name)
}

// Reload rebuilds the index from a fresh corpus and swaps it in.
// Queries in flight keep using the previous index snapshot; its backend
// resources are released only after the swap, so at worst a straggler
// hits a released remote store and degrades to the generation path.
func (s *Service) Reload(c *corpus.Corpus) error {
	ix, err := s.build(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	old := s.index
	s.index = ix
	s.mu.Unlock()
	if err := old.Release(); err != nil {
		log.Printf("[WARN] releasing previous index storage: %v", err)
	}
	log.Printf("[INFO] corpus reloaded: %d entries, %d categories", c.Len(), len(c.Categories()))
	return nil
}

func (s *Service) snapshot() *index.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}
