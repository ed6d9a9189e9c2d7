// Package datasource loads chat transcripts for sv and diffs
// successive loads into layout change batches. A transcript is an
// ordered list of messages; each message becomes one section in the
// layout, with a header row for the author line and one cell per
// body paragraph.
package datasource

import (
	"strings"
	"time"
)

// Message is one transcript entry.
type Message struct {
	ID     string    `json:"id"`
	Author string    `json:"author"`
	Body   string    `json:"body"`
	At     time.Time `json:"at"`
}

// Paragraphs splits the body on blank lines. An empty body still
// yields one empty paragraph so every message renders at least one
// cell.
func (m Message) Paragraphs() []string {
	parts := strings.Split(strings.ReplaceAll(m.Body, "\r\n", "\n"), "\n\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "\n")
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}

// Equal reports whether two messages carry the same content. The
// timestamp participates: an edited timestamp re-renders the header.
func (m Message) Equal(o Message) bool {
	return m.ID == o.ID && m.Author == o.Author && m.Body == o.Body && m.At.Equal(o.At)
}
