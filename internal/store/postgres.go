package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createCacheRecordsTable = `CREATE TABLE IF NOT EXISTS cache_records (
	kind       TEXT PRIMARY KEY,
	record     JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresStore keeps one row per kind in the cache_records table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to dsn, verifies the connection and makes sure the
// table exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if _, err := pool.Exec(ctx, createCacheRecordsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create cache_records: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Read loads the row for kind.
func (s *PostgresStore) Read(ctx context.Context, kind Kind) (Record, error) {
	if err := checkKind(kind); err != nil {
		return Record{}, err
	}

	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT record FROM cache_records WHERE kind = $1`,
		string(kind),
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("read %s: %w", kind, err)
	}
	return DecodeRecord(kind, raw)
}

// Write upserts the row for kind in a single statement.
func (s *PostgresStore) Write(ctx context.Context, kind Kind, rec Record) error {
	raw, err := EncodeRecord(kind, rec)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO cache_records (kind, record, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (kind) DO UPDATE SET record = $2, updated_at = NOW()`,
		string(kind), raw,
	)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", kind, err)
	}
	return nil
}
