// Package pipeline orchestrates the per-model review analysis run: cache
// check, concurrent collection, merge, persona analysis, persistence.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/revradar/revradar/internal/collector"
	"github.com/revradar/revradar/internal/models"
	"github.com/revradar/revradar/internal/persona"
	"github.com/revradar/revradar/internal/sentiment"
	"github.com/revradar/revradar/internal/snippets"
	"github.com/revradar/revradar/internal/store"
	"github.com/revradar/revradar/internal/textproc"
)

const (
	defaultCollectorTimeout = 30 * time.Second
	defaultMaxModelWorkers  = 5
)

// KeywordExtractor is the seam between the orchestrator and the embedding
// model so runs can be composed without an ONNX session.
type KeywordExtractor interface {
	Extract(pool []string, positiveBucket bool) ([]string, error)
}

// Publisher optionally receives every persisted artifact, e.g. to hand it
// to downstream consumers over Kafka.
type Publisher interface {
	Publish(ctx context.Context, analysis *models.ModelAnalysis) error
}

type Config struct {
	Collectors []collector.Collector
	Store      store.Store
	Keywords   KeywordExtractor
	Publisher  Publisher

	// CollectorTimeout bounds one collector's fetch; an expired collector
	// contributes an empty result instead of stalling the model run.
	CollectorTimeout time.Duration
	// MaxModelWorkers caps concurrent in-flight model pipelines in a batch.
	MaxModelWorkers int
}

type Pipeline struct {
	cfg Config
}

func New(cfg Config) *Pipeline {
	if cfg.CollectorTimeout <= 0 {
		cfg.CollectorTimeout = defaultCollectorTimeout
	}
	if cfg.MaxModelWorkers <= 0 {
		cfg.MaxModelWorkers = defaultMaxModelWorkers
	}
	return &Pipeline{cfg: cfg}
}

// ProcessModel runs the full pipeline for one model name. The caller
// always receives a well-formed artifact for a valid name; only a failure
// of the orchestrator itself (store write included) surfaces as an error.
func (p *Pipeline) ProcessModel(ctx context.Context, modelName string) (*models.ModelAnalysis, error) {
	slog.Info("[Pipeline] Processing model", slog.String("model", modelName))
	start := time.Now()
	key := textproc.CanonicalKey(modelName)

	if cached := p.checkCache(ctx, key); cached != nil {
		return cached, nil
	}

	rawBySource := p.fetchAll(ctx, modelName)

	var merged []string
	for _, c := range p.cfg.Collectors {
		merged = append(merged, rawBySource[c.Source()]...)
	}

	if len(merged) == 0 {
		// A persisted placeholder stops callers from re-triggering an
		// identical empty fetch forever.
		slog.Warn("[Pipeline] No reviews found, persisting placeholder",
			slog.String("model", modelName))
		return p.finish(ctx, key, FallbackAnalysis(modelName))
	}

	slog.Info("[Pipeline] Analyzing merged pool",
		slog.String("model", modelName),
		slog.Int("total_reviews", len(merged)))

	platformStats := make(map[string]models.GroupSentiment, len(rawBySource))
	for source, reviews := range rawBySource {
		platformStats[source] = sentiment.Aggregate(reviews)
	}

	analysis := &models.ModelAnalysis{
		ModelName:     modelName,
		TotalReviews:  len(merged),
		PlatformStats: platformStats,
		GroupAnalysis: p.analyzeGroups(merged),
	}
	analysis.Timings.TotalTimeSec = round2(time.Since(start).Seconds())

	return p.finish(ctx, key, analysis)
}

// ProcessModels runs a batch with bounded concurrency and returns the
// artifacts in completion order.
func (p *Pipeline) ProcessModels(ctx context.Context, modelNames []string) []*models.ModelAnalysis {
	start := time.Now()

	sem := make(chan struct{}, p.cfg.MaxModelWorkers)
	results := make(chan *models.ModelAnalysis, len(modelNames))

	var wg sync.WaitGroup
	for _, name := range modelNames {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			analysis, err := p.ProcessModel(ctx, name)
			if err != nil {
				slog.Error("[Pipeline] Model run failed",
					slog.String("model", name),
					slog.String("error", err.Error()))
				return
			}
			results <- analysis
		}(name)
	}
	wg.Wait()
	close(results)

	var all []*models.ModelAnalysis
	for analysis := range results {
		all = append(all, analysis)
	}

	slog.Info("[Pipeline] Batch completed",
		slog.Int("models", len(modelNames)),
		slog.Duration("elapsed", time.Since(start)))
	return all
}

func (p *Pipeline) checkCache(ctx context.Context, key string) *models.ModelAnalysis {
	exists, err := p.cfg.Store.Exists(ctx, key)
	if err != nil {
		slog.Warn("[Pipeline] Cache existence check failed",
			slog.String("key", key), slog.String("error", err.Error()))
		return nil
	}
	if !exists {
		return nil
	}

	analysis, err := p.cfg.Store.Read(ctx, key)
	if err != nil {
		// Corrupted artifact: treat as miss and recompute.
		slog.Warn("[Pipeline] Cached artifact unreadable, recomputing",
			slog.String("key", key), slog.String("error", err.Error()))
		return nil
	}

	slog.Info("[Pipeline] Unified analysis cache hit", slog.String("key", key))
	return analysis
}

// fetchAll invokes every collector concurrently. A collector failure or
// timeout contributes an empty slice and never aborts the run.
func (p *Pipeline) fetchAll(ctx context.Context, modelName string) map[string][]string {
	slog.Info("[Pipeline] Fetching reviews",
		slog.String("model", modelName),
		slog.Int("sources", len(p.cfg.Collectors)))

	results := make(map[string][]string, len(p.cfg.Collectors))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, c := range p.cfg.Collectors {
		wg.Add(1)
		go func(c collector.Collector) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					slog.Error("[Pipeline] Collector panicked",
						slog.String("source", c.Source()),
						slog.Any("panic", r))
					mu.Lock()
					results[c.Source()] = nil
					mu.Unlock()
				}
			}()

			fetchCtx, cancel := context.WithTimeout(ctx, p.cfg.CollectorTimeout)
			defer cancel()

			reviews, err := c.Fetch(fetchCtx, modelName)
			if err != nil {
				slog.Warn("[Pipeline] Collector fetch failed",
					slog.String("source", c.Source()),
					slog.String("model", modelName),
					slog.String("error", err.Error()))
				reviews = nil
			}

			mu.Lock()
			results[c.Source()] = reviews
			mu.Unlock()
		}(c)
	}
	wg.Wait()

	return results
}

// analyzeGroups runs the persona-level analysis over the merged pool.
// A failure inside one persona's analysis substitutes an empty group and
// leaves the others untouched.
func (p *Pipeline) analyzeGroups(merged []string) models.GroupAnalysis {
	cleaned := make([]string, 0, len(merged))
	for _, review := range merged {
		if c := textproc.Clean(review); len(c) > textproc.MinReviewLen {
			cleaned = append(cleaned, c)
		}
	}

	categorized := persona.Classify(cleaned, persona.Keywords)

	analysis := models.GroupAnalysis{
		SentimentByGroup: make(map[string]models.GroupSentiment, len(persona.Keywords)),
		KeywordsByGroup:  make(map[string]models.GroupKeywords, len(persona.Keywords)),
		SnippetsByGroup:  make(map[string]models.GroupSnippets, len(persona.Keywords)),
	}

	for _, name := range persona.All() {
		agg, kw, snips := p.analyzeGroup(name, categorized[name])
		analysis.SentimentByGroup[name] = agg
		analysis.KeywordsByGroup[name] = kw
		analysis.SnippetsByGroup[name] = snips
	}
	return analysis
}

func (p *Pipeline) analyzeGroup(name string, reviews []string) (agg models.GroupSentiment, kw models.GroupKeywords, snips models.GroupSnippets) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[Pipeline] Persona analysis failed",
				slog.String("persona", name),
				slog.Any("panic", r))
			agg, kw, snips = models.GroupSentiment{}, models.GroupKeywords{}, models.GroupSnippets{}
		}
	}()

	var scored []models.ScoredSnippet
	agg, scored = sentiment.Detailed(reviews)

	var posPool, negPool []string
	for _, s := range scored {
		switch s.Label {
		case "positive":
			posPool = append(posPool, s.Text)
		case "negative":
			negPool = append(negPool, s.Text)
		}
	}

	kw.Positive = p.extractKeywords(name, posPool, true)
	kw.Negative = p.extractKeywords(name, negPool, false)
	snips = snippets.Select(reviews)
	return agg, kw, snips
}

func (p *Pipeline) extractKeywords(name string, pool []string, positiveBucket bool) []string {
	if p.cfg.Keywords == nil {
		return nil
	}
	phrases, err := p.cfg.Keywords.Extract(pool, positiveBucket)
	if err != nil {
		slog.Warn("[Pipeline] Keyword extraction failed",
			slog.String("persona", name),
			slog.Bool("positive_bucket", positiveBucket),
			slog.String("error", err.Error()))
		return nil
	}
	return phrases
}

func (p *Pipeline) finish(ctx context.Context, key string, analysis *models.ModelAnalysis) (*models.ModelAnalysis, error) {
	if err := p.cfg.Store.Write(ctx, key, analysis); err != nil {
		return nil, fmt.Errorf("[Pipeline] failed to persist artifact: %w", err)
	}

	if p.cfg.Publisher != nil {
		if err := p.cfg.Publisher.Publish(ctx, analysis); err != nil {
			slog.Warn("[Pipeline] Failed to publish artifact",
				slog.String("model", analysis.ModelName),
				slog.String("error", err.Error()))
		}
	}
	return analysis, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
