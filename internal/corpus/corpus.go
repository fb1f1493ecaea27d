package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"faqbot/internal/domain"
)

// DefaultCategory is assigned to entries loaded without a category.
const DefaultCategory = "General"

// ErrEmpty is returned when a corpus source contains no entries.
// The process must not serve queries without a corpus, so callers treat
// this as fatal at startup.
var ErrEmpty = errors.New("corpus contains no entries")

// Corpus is the ordered, read-only FAQ set plus its category index.
// It is built once at startup and safely shared by concurrent queries.
type Corpus struct {
	entries    []domain.FAQ
	byCategory map[string][]int
	categories []string
}

// New builds a corpus from the given entries. Entries without a category
// get DefaultCategory. The category index preserves insertion order
// within each category; category names are reported sorted.
func New(entries []domain.FAQ) (*Corpus, error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}
	c := &Corpus{
		entries:    make([]domain.FAQ, len(entries)),
		byCategory: make(map[string][]int),
	}
	copy(c.entries, entries)
	for i := range c.entries {
		if c.entries[i].Category == "" {
			c.entries[i].Category = DefaultCategory
		}
		cat := c.entries[i].Category
		c.byCategory[cat] = append(c.byCategory[cat], i)
	}
	c.categories = make([]string, 0, len(c.byCategory))
	for cat := range c.byCategory {
		c.categories = append(c.categories, cat)
	}
	sort.Strings(c.categories)
	return c, nil
}

// LoadFile reads a JSON array of FAQ entries from path.
func LoadFile(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}
	var entries []domain.FAQ
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}
	return New(entries)
}

// Len reports the number of entries.
func (c *Corpus) Len() int { return len(c.entries) }

// Entry returns the entry at index i.
func (c *Corpus) Entry(i int) domain.FAQ { return c.entries[i] }

// Questions returns the question text of every entry in corpus order.
func (c *Corpus) Questions() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Question
	}
	return out
}

// Entries returns a copy of all entries in corpus order.
func (c *Corpus) Entries() []domain.FAQ {
	out := make([]domain.FAQ, len(c.entries))
	copy(out, c.entries)
	return out
}

// Categories returns all category names in ascending order.
func (c *Corpus) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// QuestionsInCategory returns the question text of every entry in the
// named category, in corpus order. Unknown categories yield an empty slice.
func (c *Corpus) QuestionsInCategory(name string) []string {
	idxs, ok := c.byCategory[name]
	if !ok {
		return []string{}
	}
	out := make([]string, len(idxs))
	for i, idx := range idxs {
		out[i] = c.entries[idx].Question
	}
	return out
}
