package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rms-demo/rms-backend/internal/records/domain"
)

const (
	listKey = "records:list:all" // Unfiltered list only; bbox results are never cached
	listTTL = 30 * time.Second
)

// ErrMiss is returned when the cached list is absent or expired.
var ErrMiss = errors.New("cache miss")

// ListCache is a read-through cache for the unfiltered record list. A nil
// *ListCache is a valid no-op, so callers never branch on configuration.
type ListCache struct {
	client *redis.Client
}

func NewListCache(client *redis.Client) *ListCache {
	if client == nil {
		return nil
	}
	return &ListCache{client: client}
}

// GetList returns the cached unfiltered list, or ErrMiss.
func (c *ListCache) GetList(ctx context.Context) ([]domain.Record, error) {
	if c == nil {
		return nil, ErrMiss
	}

	data, err := c.client.Get(ctx, listKey).Result()
	if err == redis.Nil {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var records []domain.Record
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return records, nil
}

// SetList stores the unfiltered list with a short TTL.
func (c *ListCache) SetList(ctx context.Context, records []domain.Record) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, listKey, data, listTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached list; called after every create.
func (c *ListCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.client.Del(ctx, listKey).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
