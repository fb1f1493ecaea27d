package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"faqbot/internal/domain"
)

func sample() []domain.FAQ {
	return []domain.FAQ{
		{Question: "How do I return a product?", Answer: "Within 30 days.", Category: "Returns"},
		{Question: "What payment methods are accepted?", Answer: "Cards and PayPal.", Category: "Payments"},
		{Question: "Where is my order?", Answer: "Check the tracking link.", Category: "Shipping"},
		{Question: "Can I pay on delivery?", Answer: "No, payment is upfront.", Category: "Payments"},
	}
}

func TestNew_EmptyCorpus(t *testing.T) {
	if _, err := New(nil); err != ErrEmpty {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestNew_DefaultCategory(t *testing.T) {
	c, err := New([]domain.FAQ{{Question: "q", Answer: "a"}})
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if c.Entry(0).Category != DefaultCategory {
		t.Errorf("expected default category, got %q", c.Entry(0).Category)
	}
}

func TestCategories_Sorted(t *testing.T) {
	c, _ := New(sample())
	got := c.Categories()
	want := []string{"Payments", "Returns", "Shipping"}
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("category %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestQuestionsInCategory_PreservesCorpusOrder(t *testing.T) {
	c, _ := New(sample())
	qs := c.QuestionsInCategory("Payments")
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[0] != "What payment methods are accepted?" || qs[1] != "Can I pay on delivery?" {
		t.Errorf("unexpected order: %v", qs)
	}
}

func TestQuestionsInCategory_Unknown(t *testing.T) {
	c, _ := New(sample())
	qs := c.QuestionsInCategory("Nope")
	if qs == nil || len(qs) != 0 {
		t.Errorf("expected empty slice, got %v", qs)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faqs.json")
	data := `[{"question":"q1","answer":"a1","category":"C"},{"question":"q2","answer":"a2"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", c.Len())
	}
	if c.Entry(1).Category != DefaultCategory {
		t.Errorf("missing category not defaulted: %q", c.Entry(1).Category)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	os.WriteFile(path, []byte("{not json"), 0o644)
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for malformed corpus")
	}
}
