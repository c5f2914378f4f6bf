package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan-widget/internal/db"
	"github.com/Nixie-Tech-LLC/athan-widget/internal/redis"
	"github.com/Nixie-Tech-LLC/athan-widget/internal/state"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitStateSource selects and returns the configured widget data backend.
func InitStateSource(ctx context.Context, env Environment) (state.Source, io.Closer, error) {
	switch env.StateBackend {
	case backendPostgres:
		conn, err := db.Connect(env.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(conn, env.MigrationsPath); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("db migrate: %w", err)
		}
		store := db.NewStore(conn)
		log.Info().Msg("Using PostgreSQL widget data")
		return store, store, nil

	case backendMemory:
		log.Warn().Msg("Using in-memory widget data, every widget shows defaults until the app writes state")
		return state.NewMapSource(nil), nopCloser{}, nil

	default:
		src := redis.NewSource(redis.NewClient(env.RedisAddress, env.RedisUsername, env.RedisPassword), env.RedisKeyPrefix)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := src.Ping(pingCtx); err != nil {
			// reads fall back to defaults until redis is reachable
			log.Error().Err(err).Str("addr", env.RedisAddress).Msg("redis not reachable at startup")
		}
		log.Info().Str("prefix", env.RedisKeyPrefix).Msg("Using Redis widget data")
		return src, src, nil
	}
}
