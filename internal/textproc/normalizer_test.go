package textproc

import (
	"reflect"
	"testing"
)

func TestNormalize_FullPipeline(t *testing.T) {
	n, err := New()
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	got := n.Normalize("How do I return my Products?!")
	want := []string{"return", "product"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestNormalize_DropsNonAlphabetic(t *testing.T) {
	n, _ := New()
	got := n.Normalize("order #12345 item2x shipped")
	for _, tok := range got {
		if tok == "12345" || tok == "item2x" {
			t.Errorf("non-alphabetic token survived: %q", tok)
		}
	}
}

func TestNormalize_Stopwords(t *testing.T) {
	n, _ := New()
	got := n.Normalize("what is the meaning of life")
	want := []string{"meaning", "life"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestNormalize_LemmatizesIrregulars(t *testing.T) {
	n, _ := New()
	got := n.Normalize("women children feet")
	want := []string{"woman", "child", "foot"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestNormalize_LemmatizesRegularPlurals(t *testing.T) {
	n, _ := New()
	cases := map[string]string{
		"categories": "category",
		"boxes":      "box",
		"wishes":     "wish",
		"orders":     "order",
		"address":    "address",
		"status":     "status",
	}
	for in, want := range cases {
		got := n.Normalize(in)
		if len(got) != 1 || got[0] != want {
			t.Errorf("%q: got %v want [%s]", in, got, want)
		}
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	n, _ := New()
	a := n.Normalize("Return Policies For Damaged Items")
	b := n.Normalize("Return Policies For Damaged Items")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("normalization not deterministic: %v vs %v", a, b)
	}
}

func TestDegraded_LowercaseSplitOnly(t *testing.T) {
	n := NewDegraded()
	if !n.Degraded() {
		t.Fatal("expected degraded normalizer")
	}
	got := n.Normalize("What IS the Meaning?")
	want := []string{"what", "is", "the", "meaning?"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestBuild_CorruptResources(t *testing.T) {
	if _, err := build("", []byte("{}")); err == nil {
		t.Error("expected error for empty stopwords")
	}
	if _, err := build("the\n", []byte("{broken")); err == nil {
		t.Error("expected error for malformed lemma resource")
	}
}
