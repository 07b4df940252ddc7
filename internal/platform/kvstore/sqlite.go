package kvstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type sqliteBackend struct {
	db *sql.DB
}

func newSQLiteBackend(dbPath string) (*sqliteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	b := &sqliteBackend{db: db}
	if err := b.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return b, nil
}

func (b *sqliteBackend) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`
	if _, err := b.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

func (b *sqliteBackend) get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := b.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (b *sqliteBackend) set(ctx context.Context, key string, value []byte) error {
	const stmt = `
INSERT INTO kv (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value;
`
	if _, err := b.db.ExecContext(ctx, stmt, key, value); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (b *sqliteBackend) remove(ctx context.Context, key string) error {
	if _, err := b.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

func (b *sqliteBackend) clear(ctx context.Context) error {
	if _, err := b.db.ExecContext(ctx, `DELETE FROM kv`); err != nil {
		return fmt.Errorf("clear kv: %w", err)
	}
	return nil
}

func (b *sqliteBackend) keys(ctx context.Context) ([]string, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
