package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/revradar/revradar/config"
	"github.com/revradar/revradar/internal/cache"
	"github.com/revradar/revradar/internal/clients"
	"github.com/revradar/revradar/internal/collector"
	"github.com/revradar/revradar/internal/keywords"
	"github.com/revradar/revradar/internal/logging"
	"github.com/revradar/revradar/internal/pipeline"
	"github.com/revradar/revradar/internal/publish"
	"github.com/revradar/revradar/internal/recommend"
	"github.com/revradar/revradar/internal/store"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	modelNames := os.Args[1:]
	if len(modelNames) == 0 {
		query := os.Getenv("USER_QUERY")
		if query == "" {
			slog.Error("[Main] No model names given and USER_QUERY is unset")
			os.Exit(1)
		}
		items, err := recommend.ForQuery(ctx, query)
		if err != nil {
			slog.Error("[Main] Failed to generate recommendations",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		modelNames = recommend.ModelNames(items)
	}

	rawCache := buildRawCache()
	opts := collector.Options{
		Cache:           rawCache,
		RetryEmptyCache: os.Getenv("RETRY_EMPTY_CACHE") == "true",
	}

	collectors := []collector.Collector{collector.NewRedditCollector(opts)}
	if os.Getenv("YOUTUBE_API_KEY") != "" {
		collectors = append(collectors, collector.NewYouTubeCollector(opts))
	}

	cfg := pipeline.Config{
		Collectors: collectors,
		Store:      buildStore(),
	}

	embedder, err := keywords.GetEmbedder()
	if err != nil {
		slog.Error("[Main] Embedding model unavailable, keywords will be empty",
			slog.String("error", err.Error()))
	} else {
		cfg.Keywords = keywords.NewExtractor(embedder)
	}

	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		publisher, err := publish.NewKafkaPublisher(broker)
		if err != nil {
			slog.Error("[Main] Failed to initialize Kafka publisher",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer publisher.Close()
		cfg.Publisher = publisher
	}

	results := pipeline.New(cfg).ProcessModels(ctx, modelNames)
	slog.Info("[Main] Analysis complete",
		slog.Int("requested", len(modelNames)),
		slog.Int("completed", len(results)))
}

func buildRawCache() cache.RawCache {
	if os.Getenv("VALKEY_INIT_ADDRESS") != "" {
		vc, err := cache.NewValkeyCache()
		if err == nil {
			return vc
		}
		slog.Warn("[Main] Valkey unavailable, falling back to file cache",
			slog.String("error", err.Error()))
	}

	dir := os.Getenv("RAW_CACHE_DIR")
	if dir == "" {
		dir = "./data/raw_reviews"
	}
	return cache.NewFileCache(dir)
}

func buildStore() store.Store {
	if os.Getenv("STORE_BACKEND") == "dynamodb" {
		return store.NewDynamoStore(clients.GetDynamoDBClient())
	}

	dir := os.Getenv("ANALYSIS_STORE_DIR")
	if dir == "" {
		dir = "./data/unified_analysis"
	}
	return store.NewFileStore(dir)
}
