package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileCacheRoundtrip(t *testing.T) {
	fc := NewFileCache(t.TempDir())
	ctx := context.Background()

	reviews := []string{"great machine", "fans are loud"}
	if err := fc.Set(ctx, "reddit", "IdeaPad Slim 5", reviews); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	got, ok, err := fc.Get(ctx, "reddit", "IdeaPad Slim 5")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 2 || got[0] != reviews[0] || got[1] != reviews[1] {
		t.Errorf("Get() = %v, want %v", got, reviews)
	}
}

func TestFileCacheMiss(t *testing.T) {
	fc := NewFileCache(t.TempDir())

	_, ok, err := fc.Get(context.Background(), "reddit", "nope")
	if err != nil {
		t.Fatalf("Get() on miss errored: %v", err)
	}
	if ok {
		t.Error("expected miss")
	}
}

func TestFileCacheEmptyIsHit(t *testing.T) {
	fc := NewFileCache(t.TempDir())
	ctx := context.Background()

	if err := fc.Set(ctx, "youtube", "obscure model", []string{}); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	got, ok, err := fc.Get(ctx, "youtube", "obscure model")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !ok {
		t.Error("a cached empty result is a complete result, not a miss")
	}
	if len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
}

func TestFileCacheCorruptionIsMiss(t *testing.T) {
	dir := t.TempDir()
	fc := NewFileCache(dir)

	path := filepath.Join(dir, "reddit", "broken.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, ok, err := fc.Get(context.Background(), "reddit", "broken")
	if err != nil {
		t.Fatalf("corrupted entry should degrade to a miss, got error: %v", err)
	}
	if ok {
		t.Error("corrupted entry reported as hit")
	}
}

func TestFileCacheKeysAreCanonical(t *testing.T) {
	fc := NewFileCache(t.TempDir())
	ctx := context.Background()

	if err := fc.Set(ctx, "reddit", "IdeaPad Slim 5", []string{"a"}); err != nil {
		t.Fatal(err)
	}

	_, ok, err := fc.Get(ctx, "reddit", "ideapad  slim 5")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("different spellings of one model should share a cache entry")
	}
}
