package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/revradar/revradar/internal/collector"
	"github.com/revradar/revradar/internal/persona"
	"github.com/revradar/revradar/internal/store"
)

type fakeCollector struct {
	source  string
	reviews []string
	err     error
	calls   int32
}

func (f *fakeCollector) Source() string { return f.source }

func (f *fakeCollector) Fetch(_ context.Context, _ string) ([]string, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.reviews, f.err
}

type stubKeywords struct {
	positive []string
	negative []string
	err      error
}

func (s *stubKeywords) Extract(pool []string, positiveBucket bool) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(pool) == 0 {
		return nil, nil
	}
	if positiveBucket {
		return s.positive, nil
	}
	return s.negative, nil
}

var _ collector.Collector = (*fakeCollector)(nil)

func newTestPipeline(t *testing.T, collectors []collector.Collector) (*Pipeline, *store.MemStore) {
	t.Helper()
	ms := store.NewMemStore()
	p := New(Config{
		Collectors: collectors,
		Store:      ms,
		Keywords:   &stubKeywords{positive: []string{"great battery"}, negative: []string{"loud fans"}},
	})
	return p, ms
}

func TestProcessModelEmptyPoolFallback(t *testing.T) {
	p, ms := newTestPipeline(t, []collector.Collector{
		&fakeCollector{source: "reddit"},
		&fakeCollector{source: "youtube"},
	})

	got, err := p.ProcessModel(context.Background(), "Ghost Model 9000")
	if err != nil {
		t.Fatalf("ProcessModel() failed: %v", err)
	}

	if !got.IsDummy {
		t.Error("empty merged pool must yield the placeholder artifact")
	}
	if got.TotalReviews != 125 {
		t.Errorf("placeholder TotalReviews = %d, want 125", got.TotalReviews)
	}
	if len(got.PlatformStats) == 0 {
		t.Error("placeholder platform_stats must keep the fixed shape, not an empty mapping")
	}

	exists, err := ms.Exists(context.Background(), "ghost_model_9000")
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("placeholder artifact must be persisted to stop retry loops")
	}
}

func TestProcessModelAnalyzesGroups(t *testing.T) {
	reddit := &fakeCollector{source: "reddit", reviews: []string{
		"Great battery and fast CPU for coding all day",
		"Battery drains fast, terrible for gaming",
	}}
	p, _ := newTestPipeline(t, []collector.Collector{reddit})

	got, err := p.ProcessModel(context.Background(), "IdeaPad Slim 5")
	if err != nil {
		t.Fatalf("ProcessModel() failed: %v", err)
	}

	if got.IsDummy {
		t.Fatal("non-empty pool must not use the placeholder")
	}
	if got.TotalReviews != 2 {
		t.Errorf("TotalReviews = %d, want 2", got.TotalReviews)
	}

	prog := got.GroupAnalysis.SentimentByGroup[persona.Programmers]
	if prog.TotalReviews != 1 {
		t.Fatalf("programmer pool size = %d, want 1", prog.TotalReviews)
	}
	if prog.Positive != 1 {
		t.Errorf("programmer positives = %d, want 1", prog.Positive)
	}

	for name, agg := range got.GroupAnalysis.SentimentByGroup {
		if agg.Positive+agg.Neutral+agg.Negative != agg.TotalReviews {
			t.Errorf("group %q: %d+%d+%d != %d",
				name, agg.Positive, agg.Neutral, agg.Negative, agg.TotalReviews)
		}
	}

	stats, ok := got.PlatformStats["reddit"]
	if !ok {
		t.Fatal("missing platform stats for reddit")
	}
	if stats.TotalReviews != 2 {
		t.Errorf("reddit platform total = %d, want 2", stats.TotalReviews)
	}
}

func TestProcessModelKeywordCaps(t *testing.T) {
	reddit := &fakeCollector{source: "reddit", reviews: []string{
		"Great battery and fast CPU for coding all day",
	}}
	p, _ := newTestPipeline(t, []collector.Collector{reddit})

	got, err := p.ProcessModel(context.Background(), "IdeaPad Slim 5")
	if err != nil {
		t.Fatal(err)
	}

	for name, kw := range got.GroupAnalysis.KeywordsByGroup {
		for _, bucket := range [][]string{kw.Positive, kw.Negative} {
			if len(bucket) > 5 {
				t.Errorf("group %q keyword list exceeds 5: %v", name, bucket)
			}
			seen := make(map[string]bool)
			for _, phrase := range bucket {
				if seen[phrase] {
					t.Errorf("group %q has duplicate keyword %q", name, phrase)
				}
				seen[phrase] = true
			}
		}
	}
}

func TestProcessModelCacheHitIsIdempotent(t *testing.T) {
	reddit := &fakeCollector{source: "reddit", reviews: []string{
		"Great battery and fast CPU for coding all day",
	}}
	p, _ := newTestPipeline(t, []collector.Collector{reddit})
	ctx := context.Background()

	first, err := p.ProcessModel(ctx, "IdeaPad Slim 5")
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.ProcessModel(ctx, "IdeaPad Slim 5")
	if err != nil {
		t.Fatal(err)
	}

	if atomic.LoadInt32(&reddit.calls) != 1 {
		t.Errorf("collector called %d times, want 1", reddit.calls)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Error("cache hit returned a different artifact")
	}
}

func TestProcessModelNameCanonicalization(t *testing.T) {
	reddit := &fakeCollector{source: "reddit", reviews: []string{
		"Great battery and fast CPU for coding all day",
	}}
	p, _ := newTestPipeline(t, []collector.Collector{reddit})
	ctx := context.Background()

	if _, err := p.ProcessModel(ctx, "IdeaPad Slim 5"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.ProcessModel(ctx, "ideapad  slim 5"); err != nil {
		t.Fatal(err)
	}

	if atomic.LoadInt32(&reddit.calls) != 1 {
		t.Errorf("different spellings triggered %d fetches, want 1", reddit.calls)
	}
}

func TestProcessModelCollectorFailureContained(t *testing.T) {
	reddit := &fakeCollector{source: "reddit", err: errors.New("auth down")}
	youtube := &fakeCollector{source: "youtube", reviews: []string{
		"Great battery and fast CPU for coding all day",
	}}
	p, _ := newTestPipeline(t, []collector.Collector{reddit, youtube})

	got, err := p.ProcessModel(context.Background(), "IdeaPad Slim 5")
	if err != nil {
		t.Fatalf("one failing collector must not fail the run: %v", err)
	}

	if got.IsDummy {
		t.Error("surviving source's reviews were lost")
	}
	if got.TotalReviews != 1 {
		t.Errorf("TotalReviews = %d, want 1", got.TotalReviews)
	}
	if stats := got.PlatformStats["reddit"]; stats.TotalReviews != 0 {
		t.Errorf("failed source should report zero reviews, got %+v", stats)
	}
}

func TestProcessModelKeywordFailureContained(t *testing.T) {
	reddit := &fakeCollector{source: "reddit", reviews: []string{
		"Great battery and fast CPU for coding all day",
	}}
	ms := store.NewMemStore()
	p := New(Config{
		Collectors: []collector.Collector{reddit},
		Store:      ms,
		Keywords:   &stubKeywords{err: errors.New("model not loaded")},
	})

	got, err := p.ProcessModel(context.Background(), "IdeaPad Slim 5")
	if err != nil {
		t.Fatalf("keyword failure must not fail the run: %v", err)
	}

	kw := got.GroupAnalysis.KeywordsByGroup[persona.Programmers]
	if len(kw.Positive) != 0 || len(kw.Negative) != 0 {
		t.Errorf("expected empty keywords on extractor failure, got %+v", kw)
	}
	if got.GroupAnalysis.SentimentByGroup[persona.Programmers].TotalReviews != 1 {
		t.Error("sentiment analysis should survive keyword failure")
	}
}

func TestProcessModelSnippetLengths(t *testing.T) {
	reddit := &fakeCollector{source: "reddit", reviews: []string{
		"This laptop is absolutely amazing for coding, I love the gorgeous display and fantastic keyboard.",
		"The fans are horrible for gaming, awful noise and terrible heat all the time.",
	}}
	p, _ := newTestPipeline(t, []collector.Collector{reddit})

	got, err := p.ProcessModel(context.Background(), "IdeaPad Slim 5")
	if err != nil {
		t.Fatal(err)
	}

	for name, snips := range got.GroupAnalysis.SnippetsByGroup {
		for _, bucket := range [][]string{snips.Positive, snips.Negative} {
			if len(bucket) > 3 {
				t.Errorf("group %q has %d snippets, cap is 3", name, len(bucket))
			}
			for _, s := range bucket {
				if len(s) <= 20 || len(s) >= 300 {
					t.Errorf("group %q snippet length %d outside (20, 300)", name, len(s))
				}
			}
		}
	}
}

func TestProcessModelsBatch(t *testing.T) {
	reddit := &fakeCollector{source: "reddit", reviews: []string{
		"Great battery and fast CPU for coding all day",
	}}
	p, ms := newTestPipeline(t, []collector.Collector{reddit})

	names := []string{"Model A1", "Model B2", "Model C3"}
	got := p.ProcessModels(context.Background(), names)

	if len(got) != len(names) {
		t.Fatalf("batch returned %d artifacts, want %d", len(got), len(names))
	}

	for _, name := range []string{"model_a1", "model_b2", "model_c3"} {
		exists, err := ms.Exists(context.Background(), name)
		if err != nil {
			t.Fatal(err)
		}
		if !exists {
			t.Errorf("artifact %q not persisted", name)
		}
	}
}
