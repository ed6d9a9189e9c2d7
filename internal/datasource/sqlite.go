package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/stackview/pkg/debug"
	"github.com/vanderheijden86/stackview/pkg/metrics"
)

// SQLiteSource reads a transcript from a messages table:
//
//	CREATE TABLE messages (
//	    id         TEXT PRIMARY KEY,
//	    author     TEXT NOT NULL,
//	    body       TEXT NOT NULL,
//	    created_at TEXT NOT NULL
//	);
//
// created_at is RFC 3339. The database is opened read-only so sv can
// sit next to a live writer.
type SQLiteSource struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens the database read-only and verifies the schema.
func OpenSQLite(path string) (*SQLiteSource, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	var n int
	err = db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'messages'`).Scan(&n)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("inspecting database: %w", err)
	}
	if n == 0 {
		db.Close()
		return nil, fmt.Errorf("%s has no messages table", path)
	}

	return &SQLiteSource{db: db, path: path}, nil
}

// Load reads the full transcript in chronological order.
func (s *SQLiteSource) Load(ctx context.Context) ([]Message, error) {
	defer metrics.Timer(metrics.TranscriptLoad)()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, author, body, created_at FROM messages ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		var at string
		if err := rows.Scan(&m.ID, &m.Author, &m.Body, &at); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		m.At, err = time.Parse(time.RFC3339, at)
		if err != nil {
			return nil, fmt.Errorf("message %s: bad created_at %q: %w", m.ID, at, err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading messages: %w", err)
	}

	debug.Log("sqlite: loaded %d messages from %s", len(msgs), s.path)
	return msgs, nil
}

// Path returns the database file path.
func (s *SQLiteSource) Path() string { return s.path }

// Close closes the database.
func (s *SQLiteSource) Close() error { return s.db.Close() }
