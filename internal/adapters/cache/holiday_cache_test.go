package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/namorima/notion-todo/internal/domain/entities"
)

func newTestCache(t *testing.T) (*HolidayCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return &HolidayCache{rdb: rdb, ttl: time.Hour}, mr
}

func TestHolidayCache_MissThenHit(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	got, err := c.Get(ctx, "Kelantan", 2025)
	if err != nil || got != nil {
		t.Fatalf("Get() on miss = %v, %v; want nil, nil", got, err)
	}

	season := []*entities.Holiday{
		{ID: 1, Date: entities.MustParseDate("2025-03-31"), Name: "Hari Raya Aidilfitri", State: "Kelantan", Year: 2025},
	}
	if err := c.Set(ctx, "Kelantan", 2025, season); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !mr.Exists("holidays:kelantan:2025") {
		t.Fatalf("key not written, have %v", mr.Keys())
	}
	if ttl := mr.TTL("holidays:kelantan:2025"); ttl != time.Hour {
		t.Errorf("ttl = %v, want 1h", ttl)
	}

	got, err = c.Get(ctx, "kelantan", 2025)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got) != 1 || got[0].Date.String() != "2025-03-31" || got[0].Name != "Hari Raya Aidilfitri" {
		t.Errorf("Get() = %+v", got)
	}
}

func TestHolidayCache_EmptyListIsAHit(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	if err := c.Set(ctx, "Perlis", 2030, nil); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := c.Get(ctx, "Perlis", 2030)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Get() = %#v, want empty non-nil list", got)
	}
}

func TestHolidayCache_InvalidateAll(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	_ = c.Set(ctx, "Kelantan", 2025, nil)
	_ = c.Set(ctx, "", 0, nil)
	mr.Set("session:other", "keep")

	if err := c.InvalidateAll(ctx); err != nil {
		t.Fatalf("InvalidateAll() error = %v", err)
	}
	if mr.Exists("holidays:kelantan:2025") || mr.Exists("holidays:all:all") {
		t.Errorf("holiday keys survived: %v", mr.Keys())
	}
	if !mr.Exists("session:other") {
		t.Error("unrelated key removed")
	}
}
