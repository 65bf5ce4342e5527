package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type redisSlotRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisSlotRepository stores slots as plain string keys under prefix.
func NewRedisSlotRepository(client *redis.Client, prefix string) SlotRepository {
	return &redisSlotRepository{client: client, prefix: prefix}
}

func (r *redisSlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (r *redisSlotRepository) Put(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, r.prefix+key, value, 0).Err()
}

func (r *redisSlotRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
