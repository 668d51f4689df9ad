package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/cdce-console/internal/config"
)

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	logger.Info("connected to redis", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return client, nil
}

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Close() error
}

// RedisSlots stores each slot as a plain string key without expiry.
type RedisSlots struct {
	store  cmdable
	prefix string
}

// NewRedisSlots wraps a connected client. A non-empty prefix namespaces keys
// as "<prefix>:<slot>".
func NewRedisSlots(client *redis.Client, prefix string) *RedisSlots {
	return &RedisSlots{store: client, prefix: prefix}
}

func (s *RedisSlots) key(slot string) string {
	if s.prefix == "" {
		return slot
	}
	return s.prefix + ":" + slot
}

func (s *RedisSlots) Get(ctx context.Context, key string) ([]byte, error) {
	if s.store == nil {
		return nil, errors.New("redis client not initialized")
	}
	value, err := s.store.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", key, err)
	}
	return value, nil
}

func (s *RedisSlots) Put(ctx context.Context, key string, value []byte) error {
	if s.store == nil {
		return errors.New("redis client not initialized")
	}
	if err := s.store.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

func (s *RedisSlots) Ping(ctx context.Context) error {
	if s.store == nil {
		return errors.New("redis client not initialized")
	}
	return s.store.Ping(ctx).Err()
}

func (s *RedisSlots) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
