package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/revradar/revradar/internal/models"
)

// FileStore writes one <key>_unified.json per model under its directory.
// Re-running a model overwrites the artifact; writes for different keys
// never contend.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+"_unified.json")
}

func (f *FileStore) Exists(_ context.Context, key string) (bool, error) {
	_, err := os.Stat(f.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("[FileStore] stat failed: %w", err)
	}
	return true, nil
}

func (f *FileStore) Read(_ context.Context, key string) (*models.ModelAnalysis, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		return nil, fmt.Errorf("[FileStore] read failed: %w", err)
	}

	var analysis models.ModelAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, fmt.Errorf("[FileStore] corrupted artifact for %q: %w", key, err)
	}
	return &analysis, nil
}

func (f *FileStore) Write(_ context.Context, key string, analysis *models.ModelAnalysis) error {
	if err := os.MkdirAll(f.dir, os.ModePerm); err != nil {
		return fmt.Errorf("[FileStore] failed to create store directory: %w", err)
	}

	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return fmt.Errorf("[FileStore] marshal failed: %w", err)
	}
	if err := os.WriteFile(f.path(key), data, 0o644); err != nil {
		return fmt.Errorf("[FileStore] write failed: %w", err)
	}

	slog.Info("[FileStore] Saved unified analysis", slog.String("key", key))
	return nil
}
