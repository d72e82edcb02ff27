package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/farm-manager/backend/internal/domain/entity"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, *seriesCache) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, &seriesCache{client: client}
}

func testSnapshot() *entity.SeriesSnapshot {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	return &entity.SeriesSnapshot{
		Today:      day,
		WindowDays: 1,
		SubTypes:   []string{"Poultry"},
		Series: entity.DailySeries{{
			Date: day,
			Revenue: entity.MetricBreakdown{
				Total:     decimal.RequireFromString("12.50"),
				Breakdown: []entity.SubTypeAmount{{Name: "Poultry", Value: decimal.RequireFromString("12.50")}},
			},
			COGS:        entity.ZeroBreakdown(),
			GrossProfit: entity.ZeroBreakdown(),
			Expenses:    entity.ZeroBreakdown(),
			NetProfit:   entity.ZeroBreakdown(),
		}},
		Diagnostics: entity.RecordDiagnostics{UnpricedLines: 2},
	}
}

func TestSeriesCache_SetAndGet(t *testing.T) {
	server, cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "finance:series:test", testSnapshot(), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := cache.Get(ctx, "finance:series:test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected a cached snapshot")
	}
	if !got.Series[0].Revenue.Total.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("unexpected revenue %s", got.Series[0].Revenue.Total)
	}
	if got.Diagnostics.UnpricedLines != 2 || got.SubTypes[0] != "Poultry" {
		t.Errorf("unexpected snapshot %+v", got)
	}
	if !got.Today.Equal(testSnapshot().Today) {
		t.Errorf("unexpected today %s", got.Today)
	}

	if ttl := server.TTL("finance:series:test"); ttl != time.Minute {
		t.Errorf("expected a one minute TTL, got %s", ttl)
	}
}

func TestSeriesCache_Miss(t *testing.T) {
	_, cache := newTestCache(t)

	got, err := cache.Get(context.Background(), "finance:series:absent")
	if err != nil || got != nil {
		t.Errorf("expected nil, nil on a miss; got %v, %v", got, err)
	}
}

func TestSeriesCache_Expiry(t *testing.T) {
	server, cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "finance:series:test", testSnapshot(), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	server.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, "finance:series:test")
	if err != nil || got != nil {
		t.Errorf("expected the entry to expire; got %v, %v", got, err)
	}
}

func TestSeriesCache_CorruptEntry(t *testing.T) {
	server, cache := newTestCache(t)
	if err := server.Set("finance:series:test", "not json"); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	if _, err := cache.Get(context.Background(), "finance:series:test"); err == nil {
		t.Fatal("expected a decode error")
	}
	if server.Exists("finance:series:test") {
		t.Error("expected the corrupt entry to be removed")
	}
}

func TestSeriesCache_Ping(t *testing.T) {
	server, cache := newTestCache(t)

	if err := cache.Ping(context.Background()); err != nil {
		t.Errorf("expected ping to succeed, got %v", err)
	}
	server.Close()
	if err := cache.Ping(context.Background()); err == nil {
		t.Error("expected ping to fail once redis is down")
	}
}
