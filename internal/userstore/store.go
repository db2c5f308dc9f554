// Package userstore is the small local key-value store that persists the
// signed-in user's identifier. Gateway call sites read it to build request
// bodies; nothing else lives here.
package userstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrNoUser is returned when no user id has been stored yet.
var ErrNoUser = errors.New("userstore: no user id stored")

type Store interface {
	UserID(ctx context.Context) (string, error)
	SetUserID(ctx context.Context, id string) error
}

const userIDKey = "journey:user:id"

// RedisStore keeps the user id in Redis.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedis(addr, password string, db int) *RedisStore {
	return &RedisStore{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// Ping checks the connection. Callers may treat a failure as non-fatal and
// fall back to a memory store.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) UserID(ctx context.Context) (string, error) {
	v, err := s.rdb.Get(ctx, userIDKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoUser
	}
	if err != nil {
		return "", fmt.Errorf("userstore: get user id: %w", err)
	}
	return v, nil
}

func (s *RedisStore) SetUserID(ctx context.Context, id string) error {
	if err := s.rdb.Set(ctx, userIDKey, id, 0).Err(); err != nil {
		return fmt.Errorf("userstore: set user id: %w", err)
	}
	return nil
}

// MemoryStore is the in-process fallback, also used in tests.
type MemoryStore struct {
	id string
}

func NewMemory(id string) *MemoryStore {
	return &MemoryStore{id: id}
}

func (s *MemoryStore) UserID(ctx context.Context) (string, error) {
	if s.id == "" {
		return "", ErrNoUser
	}
	return s.id, nil
}

func (s *MemoryStore) SetUserID(ctx context.Context, id string) error {
	s.id = id
	return nil
}
