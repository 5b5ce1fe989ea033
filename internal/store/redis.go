package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "weather-cache:"

// RedisStore keeps each kind's record under its own Redis key, without
// expiry; freshness is decided by the caller, not by Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to redisURL and verifies the connection.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) key(kind Kind) string {
	return redisKeyPrefix + string(kind)
}

// Read fetches and decodes the record for kind.
func (s *RedisStore) Read(ctx context.Context, kind Kind) (Record, error) {
	if err := checkKind(kind); err != nil {
		return Record{}, err
	}

	raw, err := s.client.Get(ctx, s.key(kind)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("redis get %s: %w", kind, err)
	}
	return DecodeRecord(kind, raw)
}

// Write replaces the record for kind with a single SET.
func (s *RedisStore) Write(ctx context.Context, kind Kind, rec Record) error {
	raw, err := EncodeRecord(kind, rec)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(kind), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", kind, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
