package progress

import (
	"context"

	"github.com/p-n-ai/studymate/internal/platform/cache"
	"github.com/p-n-ai/studymate/internal/platform/database"
)

// RedisBackend stores records as namespaced Redis/Dragonfly strings.
type RedisBackend struct {
	cache *cache.Cache
}

func NewRedisBackend(c *cache.Cache) *RedisBackend {
	return &RedisBackend{cache: c}
}

func (b *RedisBackend) Load(ctx context.Context, key string) (string, bool, error) {
	return b.cache.Get(ctx, key)
}

func (b *RedisBackend) Save(ctx context.Context, key, value string) error {
	return b.cache.Set(ctx, key, value)
}

func (b *RedisBackend) HealthCheck(ctx context.Context) error {
	return b.cache.HealthCheck(ctx)
}

func (b *RedisBackend) Close() error {
	return b.cache.Close()
}

// PostgresBackend stores records as rows of the kv_records table.
type PostgresBackend struct {
	db *database.DB
}

func NewPostgresBackend(db *database.DB) *PostgresBackend {
	return &PostgresBackend{db: db}
}

func (b *PostgresBackend) Load(ctx context.Context, key string) (string, bool, error) {
	return b.db.GetRecord(ctx, key)
}

func (b *PostgresBackend) Save(ctx context.Context, key, value string) error {
	return b.db.PutRecord(ctx, key, value)
}

func (b *PostgresBackend) HealthCheck(ctx context.Context) error {
	return b.db.HealthCheck(ctx)
}

func (b *PostgresBackend) Close() error {
	b.db.Close()
	return nil
}
