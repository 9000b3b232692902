package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/revradar/revradar/internal/textproc"
)

// FileCache stores raw review slices as JSON files under
// <dir>/<source>/<canonical_model>.json, the layout of the reference
// system. Concurrent writers for different keys are independent; for the
// same key last-writer-wins, which is acceptable since content is
// deterministic per model and input.
type FileCache struct {
	dir string
}

func NewFileCache(dir string) *FileCache {
	return &FileCache{dir: dir}
}

func (f *FileCache) path(source, model string) string {
	return filepath.Join(f.dir, source, textproc.CanonicalKey(model)+".json")
}

func (f *FileCache) Get(_ context.Context, source, model string) ([]string, bool, error) {
	data, err := os.ReadFile(f.path(source, model))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("[FileCache] read failed: %w", err)
	}

	var reviews []string
	if err := json.Unmarshal(data, &reviews); err != nil {
		// Corrupted artifact: treat as a miss so the collector re-fetches.
		slog.Warn("[FileCache] Corrupted cache entry, treating as miss",
			slog.String("source", source),
			slog.String("model", model),
			slog.String("error", err.Error()))
		return nil, false, nil
	}
	return reviews, true, nil
}

func (f *FileCache) Set(_ context.Context, source, model string, reviews []string) error {
	path := f.path(source, model)
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("[FileCache] failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(reviews, "", "  ")
	if err != nil {
		return fmt.Errorf("[FileCache] marshal failed: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("[FileCache] write failed: %w", err)
	}

	slog.Debug("[FileCache] Saved raw reviews",
		slog.String("source", source),
		slog.String("model", model),
		slog.Int("count", len(reviews)))
	return nil
}
