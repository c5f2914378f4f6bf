package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func NewClient(redisAddress string, redisUsername string, redisPassword string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// Source reads widget data stored as plain string keys, optionally namespaced by prefix.
type Source struct {
	client *redis.Client
	prefix string
}

func NewSource(client *redis.Client, prefix string) *Source {
	return &Source{client: client, prefix: prefix}
}

func (s *Source) Lookup(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %q: %w", s.prefix+key, err)
	}
	return v, true, nil
}

func (s *Source) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return err
	}
	log.Info().Str("addr", s.client.Options().Addr).Msg("connected to redis")
	return nil
}

func (s *Source) Close() error {
	return s.client.Close()
}
