package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Nikolay2099/airtickets/config"
	"github.com/Nikolay2099/airtickets/internal/domain"
)

// RedisCache is a cache-aside store for the unfiltered flight and airport
// lists. Mutating services invalidate the corresponding key.
type RedisCache struct {
	client  *redis.Client
	listTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, listTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:  redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		listTTL: listTTL,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	return getList[domain.Flight](ctx, c.client, flightsKey())
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	return setList(ctx, c.client, flightsKey(), flights, c.listTTL)
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey()).Err()
}

func (c *RedisCache) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	return getList[domain.Airport](ctx, c.client, airportsKey())
}

func (c *RedisCache) SetAirports(ctx context.Context, airports []domain.Airport) error {
	return setList(ctx, c.client, airportsKey(), airports, c.listTTL)
}

func (c *RedisCache) InvalidateAirports(ctx context.Context) error {
	return c.client.Del(ctx, airportsKey()).Err()
}

func getList[T any](ctx context.Context, client *redis.Client, key string) ([]T, error) {
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func setList[T any](ctx context.Context, client *redis.Client, key string, items []T, ttl time.Duration) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, payload, ttl).Err()
}

func flightsKey() string {
	return "cache:flights"
}

func airportsKey() string {
	return "cache:airports"
}
