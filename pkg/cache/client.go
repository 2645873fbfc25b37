package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client contrato mínimo de cache que consumen las vistas de inventario (DIP).
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ErrCacheMiss se devuelve cuando la clave no existe en el cache.
var ErrCacheMiss = redis.Nil

// RedisClient implementación de Client sobre Redis.
type RedisClient struct {
	rdb *redis.Client
}

// NewRedisClient conecta a Redis y verifica con PING. El cache es opcional:
// el caller decide si un fallo aquí es fatal o si sigue sin cache.
func NewRedisClient(addr string) (Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisClient{rdb: rdb}, nil
}

// Get recupera el valor asociado a una clave.
func (c *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set guarda un valor con expiración.
func (c *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// Delete elimina una clave (no falla si no existe).
func (c *RedisClient) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}
