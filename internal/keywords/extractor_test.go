package keywords

import (
	"errors"
	"hash/fnv"
	"strings"
	"testing"
)

// fakeEmbedder produces deterministic bag-of-words vectors so similarity
// behaves sensibly without an ONNX session.
type fakeEmbedder struct {
	calls int
}

func (f *fakeEmbedder) Embed(texts []string) ([][]float32, error) {
	f.calls++
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v := make([]float32, 64)
		for _, w := range strings.Fields(strings.ToLower(text)) {
			h := fnv.New32a()
			h.Write([]byte(w))
			v[h.Sum32()%64]++
		}
		out[i] = v
	}
	return out, nil
}

type errEmbedder struct{}

func (errEmbedder) Embed([]string) ([][]float32, error) {
	return nil, errors.New("session gone")
}

func TestExtractEmptyPool(t *testing.T) {
	fake := &fakeEmbedder{}
	e := NewExtractor(fake)

	got, err := e.Extract(nil, true)
	if err != nil {
		t.Fatalf("Extract(empty) returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Extract(empty) = %v, want none", got)
	}
	if fake.calls != 0 {
		t.Error("empty pool must not invoke the embedder")
	}
}

func TestExtractPositiveBucket(t *testing.T) {
	pool := []string{
		"the battery life is fantastic and the keyboard feels great",
		"gorgeous oled display with excellent brightness",
		"the speakers sound amazing and the battery charges quickly",
	}

	e := NewExtractor(&fakeEmbedder{})
	got, err := e.Extract(pool, true)
	if err != nil {
		t.Fatalf("Extract() returned error: %v", err)
	}

	if len(got) > MaxKeywords {
		t.Errorf("got %d keywords, cap is %d", len(got), MaxKeywords)
	}

	seen := make(map[string]bool)
	for _, kw := range got {
		if seen[kw] {
			t.Errorf("duplicate keyword %q", kw)
		}
		seen[kw] = true

		if !containsAny(kw, techConcepts) {
			t.Errorf("positive keyword %q has no technical concept", kw)
		}
		for _, bad := range negativeConcepts {
			if strings.Contains(kw, bad) {
				t.Errorf("positive keyword %q contains negative concept %q", kw, bad)
			}
		}
	}
}

func TestExtractEmbedderError(t *testing.T) {
	e := NewExtractor(errEmbedder{})
	if _, err := e.Extract([]string{"the battery is fine"}, false); err == nil {
		t.Error("expected error when the embedder fails")
	}
}

func TestCandidatePhrases(t *testing.T) {
	got := candidatePhrases("the battery life is great")

	want := map[string]bool{
		"battery": true, "life": true, "great": true,
		"battery life": true, "life great": true,
	}
	for _, c := range got {
		if !want[c] {
			t.Errorf("unexpected candidate %q", c)
		}
		delete(want, c)
	}
	for missing := range want {
		t.Errorf("missing candidate %q", missing)
	}
}

func TestCandidatePhrasesSkipsStopwords(t *testing.T) {
	for _, c := range candidatePhrases("it is the and of") {
		t.Errorf("stopword-only input produced candidate %q", c)
	}
}

func TestMaximalMarginalRelevance(t *testing.T) {
	target := []float32{1, 0, 0}
	candidates := []string{"close", "closer", "far"}
	vectors := [][]float32{
		{0.9, 0.1, 0},
		{1, 0, 0},
		{0, 0, 1},
	}

	got := maximalMarginalRelevance(target, candidates, vectors, 2)

	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %v", got)
	}
	if got[0] != "closer" {
		t.Errorf("first pick should be the most similar candidate, got %q", got[0])
	}
	// With diversity weighting the near-duplicate of the first pick loses
	// to the dissimilar candidate.
	if got[1] != "far" {
		t.Errorf("second pick should favor diversity, got %q", got[1])
	}
}

func TestCosineSimilarity(t *testing.T) {
	a := []float32{1, 0}
	if sim := cosineSimilarity(a, a); sim < 0.999 {
		t.Errorf("self similarity = %v, want 1", sim)
	}
	if sim := cosineSimilarity(a, []float32{0, 1}); sim != 0 {
		t.Errorf("orthogonal similarity = %v, want 0", sim)
	}
	if sim := cosineSimilarity(a, []float32{0, 0}); sim != 0 {
		t.Errorf("zero vector similarity = %v, want 0", sim)
	}
}
