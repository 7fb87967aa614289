package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// latestKey хранит последний снимок состояния хоста
const latestKey = "syshealth:last"

// SnapshotCache публикует последний результат цикла в Redis,
// чтобы соседние инструменты читали состояние без повторного опроса хоста.
// Реализует интерфейс port.SnapshotCache.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache создает подключение к Redis и проверяет его
func NewSnapshotCache(host, port, password string, db int, ttl time.Duration) (*SnapshotCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:       fmt.Sprintf("%s:%s", host, port),
		Password:   password,
		DB:         db,
		MaxRetries: 3,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &SnapshotCache{
		client: client,
		ttl:    ttl,
	}, nil
}

// StoreLatest сохраняет снимок под общим ключом с TTL.
// Протухший снимок лучше, чем вечно висящий устаревший: TTL обязателен.
func (c *SnapshotCache) StoreLatest(ctx context.Context, snapshot interface{}) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := c.client.Set(ctx, latestKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	return nil
}

// Close закрывает подключение к Redis
func (c *SnapshotCache) Close() error {
	return c.client.Close()
}
