package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Service represents a store together with its connection lifecycle.
type Service interface {
	Store

	// Health returns a map of health status information.
	// The keys and values in the map are service-specific.
	Health() map[string]string

	// Close terminates the database connection.
	Close()
}

// NewService connects to Postgres when dsn is set. With an empty dsn it
// returns an in-memory store, which keeps local development and tests free of
// external dependencies.
func NewService(ctx context.Context, dsn string, maxConns int32) (Service, error) {
	if dsn == "" {
		log.Warn().Msg("DATABASE_URL not set, using in-memory store; data will not survive a restart")
		return NewMemoryService(), nil
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := &pgService{pgStore: pgStore{pool: pool}, database: cfg.ConnConfig.Database}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info().Str("database", s.database).Msg("Connected to database")
	return s, nil
}

type pgService struct {
	pgStore
	database string
}

// Health checks the health of the database connection.
func (s *pgService) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := map[string]string{"driver": "postgres"}

	if err := s.pool.Ping(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		log.Error().Err(err).Msg("db down")
		return stats
	}

	poolStats := s.pool.Stat()
	stats["status"] = "up"
	stats["total_conns"] = strconv.Itoa(int(poolStats.TotalConns()))
	stats["idle_conns"] = strconv.Itoa(int(poolStats.IdleConns()))
	stats["acquired_conns"] = strconv.Itoa(int(poolStats.AcquiredConns()))
	stats["max_conns"] = strconv.Itoa(int(poolStats.MaxConns()))
	stats["acquire_count"] = strconv.FormatInt(poolStats.AcquireCount(), 10)
	stats["acquire_duration_ms"] = strconv.FormatInt(poolStats.AcquireDuration().Milliseconds(), 10)
	stats["empty_acquire_count"] = strconv.FormatInt(poolStats.EmptyAcquireCount(), 10)

	if poolStats.AcquiredConns() > (poolStats.MaxConns() * 8 / 10) { // 80% capacity
		stats["message"] = "The database connection pool is experiencing heavy load."
	}
	if poolStats.EmptyAcquireCount() > 0 {
		stats["message"] = "The application has tried to acquire a connection from an empty pool. Consider increasing max connections."
	}

	return stats
}

// Close closes the database connection.
func (s *pgService) Close() {
	log.Info().Str("database", s.database).Msg("Disconnected from database")
	s.pool.Close()
}

// migrate creates one document table per collection.
func (s *pgService) migrate(ctx context.Context) error {
	for _, coll := range collections {
		ddl := []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	seq     BIGSERIAL,
	id      TEXT PRIMARY KEY,
	user_id TEXT NOT NULL DEFAULT '',
	ts      TIMESTAMPTZ NOT NULL DEFAULT now(),
	doc     JSONB NOT NULL
)`, coll),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_user_ts_idx ON %[1]s (user_id, ts DESC)`, coll),
		}
		for _, stmt := range ddl {
			if _, err := s.pool.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migrate %s: %w", coll, err)
			}
		}
	}
	return nil
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
