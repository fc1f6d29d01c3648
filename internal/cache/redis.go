package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chibusonma0x/swiftslot-chibusonma/config"
	"github.com/chibusonma0x/swiftslot-chibusonma/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client          *redis.Client
	vendorsTTL      time.Duration
	availabilityTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, vendorsTTL, availabilityTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:          redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		vendorsTTL:      vendorsTTL,
		availabilityTTL: availabilityTTL,
	}
}

func (c *RedisCache) GetVendors(ctx context.Context) ([]domain.Vendor, error) {
	data, err := c.client.Get(ctx, vendorsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var vendors []domain.Vendor
	if err := json.Unmarshal(data, &vendors); err != nil {
		return nil, err
	}
	return vendors, nil
}

func (c *RedisCache) SetVendors(ctx context.Context, vendors []domain.Vendor) error {
	payload, err := json.Marshal(vendors)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, vendorsKey(), payload, c.vendorsTTL).Err()
}

// Availability entries are advisory: short TTL plus invalidation on a
// successful reserve. The slot ledger stays the source of truth.
func (c *RedisCache) GetAvailability(ctx context.Context, vendorID int64, date string) ([]time.Time, error) {
	data, err := c.client.Get(ctx, availabilityKey(vendorID, date)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var slots []time.Time
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *RedisCache) SetAvailability(ctx context.Context, vendorID int64, date string, slots []time.Time) error {
	payload, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, availabilityKey(vendorID, date), payload, c.availabilityTTL).Err()
}

func (c *RedisCache) InvalidateAvailability(ctx context.Context, vendorID int64, date string) error {
	return c.client.Del(ctx, availabilityKey(vendorID, date)).Err()
}

func vendorsKey() string {
	return "cache:vendors"
}

func availabilityKey(vendorID int64, date string) string {
	return fmt.Sprintf("cache:availability:%d:%s", vendorID, date)
}
