// Package collector defines the per-source review collectors. A collector
// resolves a free-form product model name into a flat slice of raw review
// texts, consulting its raw cache before any live fetch.
package collector

import (
	"context"
	"log/slog"

	"github.com/revradar/revradar/internal/cache"
)

type Collector interface {
	// Source identifies the platform, used as the cache namespace and the
	// platform_stats key.
	Source() string
	// Fetch returns raw review texts for the model. Total failure yields
	// an empty slice; zero reviews is a legitimate terminal state.
	Fetch(ctx context.Context, modelName string) ([]string, error)
}

// Options are shared collector knobs. RetryEmptyCache controls whether a
// cached empty result is honored (default) or treated as an invitation to
// fetch again; the policy varies between deployments, so it is
// configuration, never hardcoded.
type Options struct {
	Cache           cache.RawCache
	RetryEmptyCache bool
}

// lookup consults the raw cache and decides whether a live fetch is
// needed. Cache errors degrade to a miss.
func lookup(ctx context.Context, opts Options, source, model string) ([]string, bool) {
	if opts.Cache == nil {
		return nil, false
	}

	reviews, ok, err := opts.Cache.Get(ctx, source, model)
	if err != nil {
		slog.Warn("[Collector] Raw cache lookup failed, fetching live",
			slog.String("source", source),
			slog.String("model", model),
			slog.String("error", err.Error()))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	if len(reviews) == 0 && opts.RetryEmptyCache {
		slog.Info("[Collector] Cached result empty, retrying fetch",
			slog.String("source", source),
			slog.String("model", model))
		return nil, false
	}

	slog.Info("[Collector] Raw cache hit",
		slog.String("source", source),
		slog.String("model", model),
		slog.Int("count", len(reviews)))
	return reviews, true
}

func persist(ctx context.Context, opts Options, source, model string, reviews []string) {
	if opts.Cache == nil {
		return
	}
	if err := opts.Cache.Set(ctx, source, model, reviews); err != nil {
		slog.Warn("[Collector] Failed to persist raw reviews",
			slog.String("source", source),
			slog.String("model", model),
			slog.String("error", err.Error()))
	}
}
