package cache

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/revradar/revradar/internal/textproc"
)

// ValkeyCache keeps raw review slices in Valkey under raw_reviews:<source>:<key>.
// Entries optionally expire via RAW_CACHE_TTL_SECONDS (0 = never).
type ValkeyCache struct {
	client valkey.Client
	ttl    int64
	mu     sync.Mutex
}

func NewValkeyCache() (*ValkeyCache, error) {
	client, err := newValkeyClient()
	if err != nil {
		return nil, err
	}

	var ttl int64
	if raw := os.Getenv("RAW_CACHE_TTL_SECONDS"); raw != "" {
		ttl, _ = strconv.ParseInt(raw, 10, 64)
	}

	slog.Info("[ValkeyCache] Successfully connected to valkey")
	return &ValkeyCache{client: client, ttl: ttl}, nil
}

func newValkeyClient() (valkey.Client, error) {
	opts := valkey.ClientOption{
		InitAddress:      []string{os.Getenv("VALKEY_INIT_ADDRESS")},
		Password:         os.Getenv("VALKEY_PASSWORD"),
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if os.Getenv("VALKEY_TLS") == "true" {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyCache] failed to create Valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyCache] failed to ping Valkey: %w", err)
	}
	return client, nil
}

func (vc *ValkeyCache) Close() {
	vc.client.Close()
}

func cacheKey(source, model string) string {
	return "raw_reviews:" + source + ":" + textproc.CanonicalKey(model)
}

func (vc *ValkeyCache) Get(ctx context.Context, source, model string) ([]string, bool, error) {
	res := vc.doWithRetry(ctx, vc.client.B().Get().Key(cacheKey(source, model)).Build(), 3)
	if err := res.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("[ValkeyCache] get failed: %w", err)
	}

	data, err := res.AsBytes()
	if err != nil {
		return nil, false, fmt.Errorf("[ValkeyCache] get failed: %w", err)
	}

	var reviews []string
	if err := json.Unmarshal(data, &reviews); err != nil {
		slog.Warn("[ValkeyCache] Corrupted cache entry, treating as miss",
			slog.String("source", source),
			slog.String("model", model),
			slog.String("error", err.Error()))
		return nil, false, nil
	}
	return reviews, true, nil
}

func (vc *ValkeyCache) Set(ctx context.Context, source, model string, reviews []string) error {
	data, err := json.Marshal(reviews)
	if err != nil {
		return fmt.Errorf("[ValkeyCache] marshal failed: %w", err)
	}

	key := cacheKey(source, model)
	var cmd valkey.Completed
	if vc.ttl > 0 {
		cmd = vc.client.B().Set().Key(key).Value(string(data)).ExSeconds(vc.ttl).Build()
	} else {
		cmd = vc.client.B().Set().Key(key).Value(string(data)).Build()
	}

	if err := vc.doWithRetry(ctx, cmd, 3).Error(); err != nil {
		return fmt.Errorf("[ValkeyCache] set failed: %w", err)
	}

	slog.Debug("[ValkeyCache] Saved raw reviews",
		slog.String("key", key),
		slog.Int("count", len(reviews)))
	return nil
}

func (vc *ValkeyCache) doWithRetry(ctx context.Context, cmd valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		result = vc.client.Do(ctx, cmd)
		err := result.Error()
		if err == nil || valkey.IsValkeyNil(err) {
			break
		}

		slog.Warn("[ValkeyCache] Command failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))

		if isConnectionError(err) {
			vc.recreateClient()
		}
		time.Sleep(250 * time.Millisecond)
	}
	return result
}

func (vc *ValkeyCache) recreateClient() {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	slog.Warn("[ValkeyCache] Attempting to recreate Valkey client...")
	vc.client.Close()

	client, err := newValkeyClient()
	if err != nil {
		slog.Error("[ValkeyCache] Recreate failed", slog.String("error", err.Error()))
		return
	}
	vc.client = client
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
