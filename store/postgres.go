package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresConfig holds connection parameters for PostgresStore.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// ConnectionString builds the libpq connection string for cfg.
func (cfg PostgresConfig) ConnectionString() string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, sslMode,
	)
}

// PostgresStore persists SessionRecords to a Postgres table. It stores
// only set sizes, match counts, and timings — never the positions
// a session matched on.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection pool against cfg, verifies it
// with a ping, and ensures the backing table exists.
func NewPostgresStore(cfg PostgresConfig) (*PostgresStore, error) {
	return newPostgresStore(cfg.ConnectionString())
}

// NewPostgresStoreFromDSN is like NewPostgresStore but takes a raw
// libpq connection string directly, for callers (such as CLI flags)
// that already have one assembled.
func NewPostgresStoreFromDSN(dsn string) (*PostgresStore, error) {
	return newPostgresStore(dsn)
}

func newPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: opening postgres connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: pinging postgres: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrating schema: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS psi_sessions (
		session_id        TEXT PRIMARY KEY,
		started_at        TIMESTAMPTZ NOT NULL,
		bob_set_size      INTEGER NOT NULL,
		alice_set_size    INTEGER NOT NULL,
		match_count       INTEGER NOT NULL,
		bob_setup_ms      DOUBLE PRECISION NOT NULL,
		alice_setup_ms    DOUBLE PRECISION NOT NULL,
		bob_response_ms   DOUBLE PRECISION NOT NULL,
		alice_finalize_ms DOUBLE PRECISION NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_psi_sessions_started_at ON psi_sessions(started_at);
	`

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// RecordSession inserts rec, or updates it in place if its SessionID
// was already recorded.
func (s *PostgresStore) RecordSession(ctx context.Context, rec SessionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
	INSERT INTO psi_sessions
		(session_id, started_at, bob_set_size, alice_set_size, match_count,
		 bob_setup_ms, alice_setup_ms, bob_response_ms, alice_finalize_ms)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (session_id) DO UPDATE SET
		started_at        = EXCLUDED.started_at,
		bob_set_size       = EXCLUDED.bob_set_size,
		alice_set_size     = EXCLUDED.alice_set_size,
		match_count        = EXCLUDED.match_count,
		bob_setup_ms       = EXCLUDED.bob_setup_ms,
		alice_setup_ms     = EXCLUDED.alice_setup_ms,
		bob_response_ms    = EXCLUDED.bob_response_ms,
		alice_finalize_ms  = EXCLUDED.alice_finalize_ms
	`

	_, err := s.db.ExecContext(ctx, query,
		rec.SessionID,
		rec.StartedAt,
		rec.BobSetSize,
		rec.AliceSetSize,
		rec.MatchCount,
		rec.Timings.BobSetupMS,
		rec.Timings.AliceSetupMS,
		rec.Timings.BobResponseMS,
		rec.Timings.AliceFinalizeMS,
	)
	return err
}

// RecentSessions returns up to limit of the most recently started
// sessions, newest first. limit <= 0 returns all rows.
func (s *PostgresStore) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
	SELECT session_id, started_at, bob_set_size, alice_set_size, match_count,
	       bob_setup_ms, alice_setup_ms, bob_response_ms, alice_finalize_ms
	FROM psi_sessions
	ORDER BY started_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += "LIMIT $1"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: querying recent sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		if err := rows.Scan(
			&rec.SessionID,
			&rec.StartedAt,
			&rec.BobSetSize,
			&rec.AliceSetSize,
			&rec.MatchCount,
			&rec.Timings.BobSetupMS,
			&rec.Timings.AliceSetupMS,
			&rec.Timings.BobResponseMS,
			&rec.Timings.AliceFinalizeMS,
		); err != nil {
			return nil, fmt.Errorf("store: scanning row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
