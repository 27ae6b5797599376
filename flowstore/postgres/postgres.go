// Package postgres implements flowstore.Store atop jackc/pgx/v5,
// grounded on the teacher's store/postgres checkpoint backend,
// including its DBPool seam that lets tests substitute pgxmock for a
// live connection pool.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"flowcore/flow"
	"flowcore/flowstore"
)

// DBPool is the slice of *pgxpool.Pool's surface Store actually uses,
// extracted so tests can substitute a pgxmock pool.
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// Options configures a Store's connection.
type Options struct {
	ConnString string
	TableName  string // default "flows"
}

// Store implements flowstore.Store with one row per FlowRecord.
type Store struct {
	pool      DBPool
	tableName string
}

// New opens a pgxpool-backed Store and ensures its table exists.
func New(ctx context.Context, opts Options) (*Store, error) {
	pool, err := pgxpool.New(ctx, opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	s := NewWithPool(pool, opts.TableName)
	if err := s.InitSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewWithPool builds a Store around an already-constructed pool,
// primarily so tests can pass a pgxmock pool instead of a live one.
func NewWithPool(pool DBPool, tableName string) *Store {
	if tableName == "" {
		tableName = "flows"
	}
	return &Store{pool: pool, tableName: tableName}
}

// InitSchema creates the store's table if it doesn't already exist.
func (s *Store) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			record JSONB NOT NULL
		);
	`, s.tableName)
	_, err := s.pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() { s.pool.Close() }

var _ flowstore.Store = (*Store)(nil)

func (s *Store) Save(ctx context.Context, id string, rec *flow.FlowRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, record) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET record = EXCLUDED.record
	`, s.tableName)
	if _, err := s.pool.Exec(ctx, query, id, raw); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, id string) (*flow.FlowRecord, error) {
	query := fmt.Sprintf(`SELECT record FROM %s WHERE id = $1`, s.tableName)
	var raw []byte
	err := s.pool.QueryRow(ctx, query, id).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, flowstore.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	var rec flow.FlowRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &rec, nil
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT id FROM %s ORDER BY id ASC`, s.tableName)
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating record rows: %w", err)
	}
	return ids, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.tableName)
	_, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}
