package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var ErrMissingEnv = errors.New("missing required environment variable")

const (
	backendRedis    = "redis"
	backendPostgres = "postgres"
	backendMemory   = "memory"
)

type Environment struct {
	Environment   string
	ServerAddress string
	SecretKey     string

	StateBackend   string
	RedisAddress   string
	RedisUsername  string
	RedisPassword  string
	RedisKeyPrefix string
	DatabaseURL    string
	MigrationsPath string

	MQTTBrokerURL   string
	MQTTClientID    string
	MQTTTopicPrefix string

	NativeCountdown bool
	ElapsedText     string
}

// LoadEnvironment reads a .env file if one exists, then reads and validates env vars.
func LoadEnvironment() (Environment, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env file")
	}

	env := Environment{
		Environment:   getenv("APP_ENV", "production"),
		ServerAddress: getenv("SERVER_ADDRESS", ":8080"),
		SecretKey:     os.Getenv("JWT_SECRET"),

		StateBackend:   getenv("STATE_BACKEND", backendRedis),
		RedisAddress:   getenv("REDIS_ADDRESS", "localhost:6379"),
		RedisUsername:  os.Getenv("REDIS_USERNAME"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisKeyPrefix: os.Getenv("REDIS_KEY_PREFIX"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: getenv("MIGRATIONS_PATH", "./migrations"),

		MQTTBrokerURL:   getenv("MQTT_BROKER_URL", "tcp://localhost:1883"),
		MQTTClientID:    getenv("MQTT_CLIENT_ID", "athan-widget"),
		MQTTTopicPrefix: getenv("MQTT_TOPIC_PREFIX", "widgets"),

		ElapsedText: getenv("ELAPSED_TEXT", "Now"),
	}

	native, err := strconv.ParseBool(getenv("NATIVE_COUNTDOWN", "true"))
	if err != nil {
		return Environment{}, fmt.Errorf("NATIVE_COUNTDOWN: %w", err)
	}
	env.NativeCountdown = native

	if env.SecretKey == "" {
		return Environment{}, fmt.Errorf("%w: JWT_SECRET", ErrMissingEnv)
	}
	switch env.StateBackend {
	case backendRedis, backendMemory:
	case backendPostgres:
		if env.DatabaseURL == "" {
			return Environment{}, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnv)
		}
	default:
		return Environment{}, fmt.Errorf("unknown STATE_BACKEND %q", env.StateBackend)
	}

	return env, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
