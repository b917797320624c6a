package enrich

import (
	"context"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("First one. Second one! Third? Fourth")
	want := []string{"First one.", "Second one!", "Third?", "Fourth"}
	if len(got) != len(want) {
		t.Fatalf("SplitSentences = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitSentencesNoBoundaryInsideNumbers(t *testing.T) {
	// A period not followed by whitespace (e.g. a decimal point) is not a
	// sentence boundary.
	got := SplitSentences("Total was 10.50 overall. Next sentence.")
	if len(got) != 2 {
		t.Fatalf("SplitSentences = %v, want 2 sentences", got)
	}
	if got[0] != "Total was 10.50 overall." {
		t.Errorf("sentence[0] = %q", got[0])
	}
}

func TestFirstSentences(t *testing.T) {
	in := "One. Two. Three. Four. Five."
	if got := FirstSentences(in, 3); got != "One. Two. Three." {
		t.Errorf("FirstSentences = %q, want %q", got, "One. Two. Three.")
	}
	if got := FirstSentences(in, 10); got != in {
		t.Errorf("FirstSentences with large cap = %q, want full text", got)
	}
	if got := FirstSentences("", 3); got != "" {
		t.Errorf("FirstSentences(\"\") = %q, want empty", got)
	}
	if got := FirstSentences(in, 0); got != "" {
		t.Errorf("FirstSentences with zero cap = %q, want empty", got)
	}
}

func TestHeuristicSummarizer(t *testing.T) {
	s := &HeuristicSummarizer{MaxSentences: 2}
	got, err := s.Summarize(context.Background(), "A. B. C.")
	if err != nil {
		t.Fatal(err)
	}
	if got != "A. B." {
		t.Errorf("Summarize = %q, want %q", got, "A. B.")
	}
}

func TestHashEmbedder(t *testing.T) {
	e := &HashEmbedder{Dim: 64}

	a, err := e.Embed(context.Background(), "some document text")
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}

	// Deterministic: same text, same vector.
	b, _ := e.Embed(context.Background(), "some document text")
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("embedding not deterministic at %d: %v != %v", i, a[i], b[i])
		}
	}

	// Different text, different vector.
	c, _ := e.Embed(context.Background(), "entirely different text")
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different texts produced identical embeddings")
	}

	// Values stay within [-1, 1).
	for i, v := range a {
		if v < -1 || v >= 1 {
			t.Errorf("embedding[%d] = %v out of range", i, v)
		}
	}

	// Empty text embeds to the zero vector.
	z, _ := e.Embed(context.Background(), "")
	for i, v := range z {
		if v != 0 {
			t.Errorf("zero vector expected, got %v at %d", v, i)
		}
	}
}

func TestHashEmbedderDimExtension(t *testing.T) {
	e := &HashEmbedder{Dim: 100} // larger than one sha256 digest
	v, err := e.Embed(context.Background(), "text")
	if err != nil {
		t.Fatal(err)
	}
	if len(v) != 100 {
		t.Fatalf("len = %d, want 100", len(v))
	}
	// The digest repeats after 32 values.
	if v[0] != v[32] || v[5] != v[37] {
		t.Error("extension should repeat the digest")
	}
}
