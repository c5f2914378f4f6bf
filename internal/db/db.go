package db

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxRetries    = 10
	retryInterval = 2 * time.Second
)

// Connect opens a PostgreSQL connection, retrying while the database comes up.
func Connect(databaseURL string) (*sqlx.DB, error) {
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		var conn *sqlx.DB
		conn, err = sqlx.Connect("postgres", databaseURL)
		if err == nil {
			log.Info().Msg("connected to database")
			return conn, nil
		}

		log.Error().Err(err).
			Int("attempt", attempt).
			Msgf("failed to connect to database, retrying in %s", retryInterval)

		if attempt < maxRetries {
			time.Sleep(retryInterval)
		}
	}

	return nil, fmt.Errorf("could not connect to database after %d attempts: %w", maxRetries, err)
}

// RunMigrations executes every "*.up.sql" file in migrationsPath in name order.
// "*.down.sql" files are ignored. A missing or empty directory is not an error.
func RunMigrations(conn *sqlx.DB, migrationsPath string) error {
	pattern := filepath.Join(migrationsPath, "*.up.sql")
	files, err := filepath.Glob(pattern)
	if err != nil {
		log.Error().Msg("failed to list up migrations")
		return fmt.Errorf("failed to glob migrations: %w", err)
	}
	if len(files) == 0 {
		return nil
	}

	sort.Strings(files)

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			log.Error().Str("file", file).Msg("failed to read migration file")
			return fmt.Errorf("could not read migration %q: %w", file, err)
		}
		sqlStmt := string(sqlBytes)
		if sqlStmt == "" {
			continue
		}
		if _, err := conn.Exec(sqlStmt); err != nil {
			return fmt.Errorf("error executing migration %q: %w", file, err)
		}
		log.Debug().Str("file", file).Msg("applied migration")
	}
	return nil
}
