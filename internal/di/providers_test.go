package di

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"StarChart/internal/astro"
	"StarChart/pkg/cache"
	"StarChart/pkg/config"
)

func TestProvideCacheMemoryDefaults(t *testing.T) {
	svc, err := ProvideCache(&config.Config{})
	if err != nil {
		t.Fatalf("ProvideCache: %v", err)
	}
	defer svc.Close()
	ctx := context.Background()

	// With no size limit configured the backend keeps its default capacity
	// instead of evicting on every write.
	for i := 0; i < 5; i++ {
		if err := svc.Set(ctx, fmt.Sprintf("k%d", i), "v", time.Minute); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	var got string
	if err := svc.Get(ctx, "k0", &got); err != nil {
		t.Fatalf("entry lost without a configured size limit: %v", err)
	}
}

func TestProvideCacheHonorsMemoryLimit(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Backend = "memory"
	cfg.Cache.Memory.MaxEntries = 1
	cfg.Cache.Memory.CleanupInterval = time.Minute

	svc, err := ProvideCache(cfg)
	if err != nil {
		t.Fatalf("ProvideCache: %v", err)
	}
	defer svc.Close()
	ctx := context.Background()

	if err := svc.Set(ctx, "a", "1", time.Minute); err != nil {
		t.Fatalf("Set a: %v", err)
	}
	if err := svc.Set(ctx, "b", "2", time.Minute); err != nil {
		t.Fatalf("Set b: %v", err)
	}
	var got string
	if err := svc.Get(ctx, "a", &got); !errors.Is(err, cache.ErrCacheMiss) {
		t.Fatalf("max_entries=1 should evict the older key, got %v", err)
	}
}

func TestProvideCacheRejectsUnknownBackend(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Backend = "memcached"
	if _, err := ProvideCache(cfg); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestProvideEngineAppliesParams(t *testing.T) {
	cfg := &config.Config{}
	cfg.Engine.Ayanamsa = 20
	cfg.Engine.WeightScheme = "uniform"

	chart, err := ProvideEngine(cfg).Compute(context.Background(), astro.Request{
		Instant:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Sidereal: true,
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if chart.Ayanamsa != 20 {
		t.Fatalf("configured ayanamsa not applied, got %v", chart.Ayanamsa)
	}
}

func TestProvideTransitStreamDisabled(t *testing.T) {
	cfg := &config.Config{}
	if s := ProvideTransitStream(nil, nil, nil, cfg); s != nil {
		t.Fatal("stream should be nil when disabled")
	}
}
