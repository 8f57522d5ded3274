package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/infrastructure/config"
	"github.com/namorima/notion-todo/internal/ports"
)

const keyPrefix = "holidays:"

// HolidayCache caches holiday lists per state and year in Redis.
type HolidayCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewHolidayCache returns a new HolidayCache.
func NewHolidayCache(rdb *redis.Client, ttl time.Duration) ports.HolidayCache {
	return &HolidayCache{rdb: rdb, ttl: ttl}
}

// NewClient opens a Redis client and checks it answers.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

// Get returns the cached list, or nil on a miss.
func (c *HolidayCache) Get(ctx context.Context, state string, year int) ([]*entities.Holiday, error) {
	b, err := c.rdb.Get(ctx, key(state, year)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	list := []*entities.Holiday{}
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Set stores the list for one state and year.
func (c *HolidayCache) Set(ctx context.Context, state string, year int, holidays []*entities.Holiday) error {
	if holidays == nil {
		holidays = []*entities.Holiday{}
	}
	b, err := json.Marshal(holidays)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(state, year), b, c.ttl).Err()
}

// InvalidateAll removes every cached season. Called after any write.
func (c *HolidayCache) InvalidateAll(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// key uses "all" for an unset state or year.
func key(state string, year int) string {
	s := strings.ToLower(strings.TrimSpace(state))
	if s == "" {
		s = "all"
	}
	y := "all"
	if year > 0 {
		y = fmt.Sprint(year)
	}
	return keyPrefix + s + ":" + y
}
