package datasource

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Source is a transcript backend. Load returns the full transcript in
// display order; callers re-Load after a change notification and diff
// against the previous result.
type Source interface {
	// Load reads the complete transcript.
	Load(ctx context.Context) ([]Message, error)
	// Path returns the backing file path, for watching and display.
	Path() string
	// Close releases the backend.
	Close() error
}

// Open selects a backend by file extension: SQLite databases for
// .db/.sqlite/.sqlite3, JSONL for everything else.
func Open(path string) (Source, error) {
	if path == "" {
		return nil, fmt.Errorf("datasource: no transcript path given")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(path)
	default:
		return OpenJSONL(path), nil
	}
}
