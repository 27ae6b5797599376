// Package sqlite implements flowstore.Store atop database/sql and
// github.com/mattn/go-sqlite3, grounded on the teacher's store/sqlite
// checkpoint backend (same table-per-store, query-by-id shape).
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"flowcore/flow"
	"flowcore/flowstore"
)

// Options configures a Store's connection.
type Options struct {
	Path      string
	TableName string // default "flows"
}

// Store implements flowstore.Store with one row per FlowRecord.
type Store struct {
	db        *sql.DB
	tableName string
}

// New opens (and creates, if necessary) a sqlite-backed Store.
func New(opts Options) (*Store, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "flows"
	}

	s := &Store{db: db, tableName: tableName}
	if err := s.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			record TEXT NOT NULL
		);
	`, s.tableName)
	_, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

var _ flowstore.Store = (*Store)(nil)

func (s *Store) Save(ctx context.Context, id string, rec *flow.FlowRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, record) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET record = excluded.record
	`, s.tableName)
	if _, err := s.db.ExecContext(ctx, query, id, string(raw)); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, id string) (*flow.FlowRecord, error) {
	query := fmt.Sprintf(`SELECT record FROM %s WHERE id = ?`, s.tableName)
	var raw string
	err := s.db.QueryRowContext(ctx, query, id).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, flowstore.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	var rec flow.FlowRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &rec, nil
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT id FROM %s ORDER BY id ASC`, s.tableName)
	rows, err := s.db.QueryContext(ctx, query)
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
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.tableName)
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}
