package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/axellelanca/qrlinks/internal/models"
)

const linkCacheKeyPrefix = "link:"

// Each entry is a hash {v: version, data: json}. An empty data field is a
// tombstone left by InvalidateLink. A write only lands when its version is not
// older than the stored one, so a slow fill never overwrites a newer state.
var setIfNewer = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'v')
if cur and tonumber(cur) > tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'v', ARGV[1], 'data', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

// cachedLink is the subset of a link the redirect path needs.
type cachedLink struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Destination string    `json:"destination"`
	Active      bool      `json:"active"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RedisLinkCache caches redirect lookups by code.
type RedisLinkCache struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisLinkCache parses url (redis://...) and returns a cache with the given TTL.
func NewRedisLinkCache(url string, ttl time.Duration) (*RedisLinkCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.MaxRetries = 1
	opt.DialTimeout = 2 * time.Second
	opt.ReadTimeout = 200 * time.Millisecond
	opt.WriteTimeout = 200 * time.Millisecond
	return NewRedisLinkCacheFromClient(redis.NewClient(opt), ttl), nil
}

// NewRedisLinkCacheFromClient wraps an existing client.
func NewRedisLinkCacheFromClient(client *redis.Client, ttl time.Duration) *RedisLinkCache {
	return &RedisLinkCache{client: client, ttl: ttl, now: time.Now}
}

// GetLink returns the cached link, or (nil, nil) on a miss or a tombstone.
func (c *RedisLinkCache) GetLink(ctx context.Context, code string) (*models.Link, error) {
	raw, err := c.client.HGet(ctx, linkCacheKeyPrefix+code, "data").Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %q: %w", code, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var cl cachedLink
	if err := json.Unmarshal(raw, &cl); err != nil {
		return nil, fmt.Errorf("decode cached link %q: %w", code, err)
	}
	return &models.Link{ID: cl.ID, Code: cl.Code, Destination: cl.Destination, Active: cl.Active, UpdatedAt: cl.UpdatedAt}, nil
}

// SetLink stores the redirect-relevant fields of link, versioned by UpdatedAt.
// It is a no-op when the cache already holds a newer version.
func (c *RedisLinkCache) SetLink(ctx context.Context, link *models.Link) error {
	raw, err := json.Marshal(cachedLink{
		ID:          link.ID,
		Code:        link.Code,
		Destination: link.Destination,
		Active:      link.Active,
		UpdatedAt:   link.UpdatedAt,
	})
	if err != nil {
		return err
	}
	return c.write(ctx, link.Code, link.UpdatedAt.UnixMicro(), string(raw))
}

// InvalidateLink replaces the entry with a tombstone stamped now, so fills
// carrying a state read before the invalidation are rejected.
func (c *RedisLinkCache) InvalidateLink(ctx context.Context, code string) error {
	return c.write(ctx, code, c.now().UnixMicro(), "")
}

func (c *RedisLinkCache) write(ctx context.Context, code string, version int64, data string) error {
	err := setIfNewer.Run(ctx, c.client, []string{linkCacheKeyPrefix + code}, version, data, c.ttl.Milliseconds()).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis set %q: %w", code, err)
	}
	return nil
}

// Close closes the underlying client.
func (c *RedisLinkCache) Close() error {
	return c.client.Close()
}
