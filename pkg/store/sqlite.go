package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

var sqliteTables = map[Kind]string{
	KindSpread: "spreads",
	KindTask:   "tasks",
	KindNote:   "notes",
	KindEvent:  "events",
}

// OpenSQLite opens a journal stored in a single sqlite database, one table
// per kind.
func OpenSQLite(dbPath string) (*Journal, error) {
	if dbPath == "" {
		return nil, errors.New("store: sqlite path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	b := &sqliteBackend{db: db}
	if err := b.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ensure schema: %w", err)
	}
	return newJournal(StorageSQLite, b), nil
}

type sqliteBackend struct {
	db *sql.DB
}

func (s *sqliteBackend) ensureSchema() error {
	for _, kind := range Kinds() {
		ddl := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	body TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`, sqliteTables[kind])
		if _, err := s.db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}

func (s *sqliteBackend) table(kind Kind) (string, error) {
	t, ok := sqliteTables[kind]
	if !ok {
		return "", fmt.Errorf("store: unknown kind %q", kind)
	}
	return t, nil
}

func (s *sqliteBackend) readAll(ctx context.Context, kind Kind) ([][]byte, error) {
	table, err := s.table(kind)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT body FROM %s ORDER BY id`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	all := make([][]byte, 0)
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		all = append(all, []byte(body))
	}
	return all, rows.Err()
}

func (s *sqliteBackend) write(ctx context.Context, kind Kind, id string, data []byte) error {
	table, err := s.table(kind)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, fmt.Sprintf(`
INSERT INTO %s (id, body, updated_at) VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`, table),
		id, string(data), time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

func (s *sqliteBackend) erase(ctx context.Context, kind Kind, id string) error {
	table, err := s.table(kind)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
	}
	return nil
}

func (s *sqliteBackend) close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
