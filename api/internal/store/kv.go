package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrNotFound = sql.ErrNoRows

// KV is the durable conversation/exercise mapping. Keys are opaque strings,
// values are text (usually JSON). Per-key get/put is all we need; there are no
// multi-key transactions.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}

// PostgresKV keeps the mapping in a single kv_store table.
type PostgresKV struct{ DB *sql.DB }

func NewPostgresKV(db *sql.DB) *PostgresKV { return &PostgresKV{DB: db} }

// EnsureSchema creates the backing table if missing.
func (s *PostgresKV) EnsureSchema(ctx context.Context) error {
	const q = `
create table if not exists kv_store (
  key        text primary key,
  value      text not null,
  updated_at timestamptz not null default now()
)`
	if _, err := s.DB.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("kv schema: %w", err)
	}
	return nil
}

func (s *PostgresKV) Get(ctx context.Context, key string) (string, error) {
	const q = `select value from kv_store where key = $1`
	var v string
	if err := s.DB.QueryRowContext(ctx, q, key).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return v, nil
}

func (s *PostgresKV) Put(ctx context.Context, key, value string) error {
	const q = `
insert into kv_store (key, value) values ($1, $2)
on conflict (key) do update set value = excluded.value, updated_at = now()`
	_, err := s.DB.ExecContext(ctx, q, key, value)
	return err
}
