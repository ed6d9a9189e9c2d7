package datasource

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/stackview/pkg/debug"
	"github.com/vanderheijden86/stackview/pkg/metrics"
)

// JSONLSource reads a transcript from a JSON-lines file, one message
// object per line. Blank lines are skipped; a malformed line fails the
// whole load so a half-written file never renders as a truncated
// transcript.
type JSONLSource struct {
	path string
}

// OpenJSONL returns a JSONL source for path. The file is opened on
// each Load, not held open, so external writers can replace it
// atomically.
func OpenJSONL(path string) *JSONLSource {
	return &JSONLSource{path: path}
}

// Load reads and decodes every line of the file.
func (s *JSONLSource) Load(ctx context.Context) ([]Message, error) {
	defer metrics.Timer(metrics.TranscriptLoad)()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening transcript: %w", err)
	}
	defer f.Close()

	var msgs []Message
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var m Message
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("parsing %s line %d: %w", s.path, line, err)
		}
		if m.ID == "" {
			return nil, fmt.Errorf("parsing %s line %d: message has no id", s.path, line)
		}
		msgs = append(msgs, m)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}

	debug.Log("jsonl: loaded %d messages from %s", len(msgs), s.path)
	return msgs, nil
}

// Path returns the backing file path.
func (s *JSONLSource) Path() string { return s.path }

// Close is a no-op; the file is not held open between loads.
func (s *JSONLSource) Close() error { return nil }
