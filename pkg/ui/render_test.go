package ui

import (
	"strings"
	"testing"
)

func TestWrapPlain(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "hello world", 20, []string{"hello world"}},
		{"wraps at word", "hello world", 8, []string{"hello", "world"}},
		{"exact width", "abcd", 4, []string{"abcd"}},
		{"empty", "", 10, []string{""}},
		{"hard break long word", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"keeps explicit newlines", "a\nb", 10, []string{"a", "b"}},
		{"collapses runs of spaces", "a    b", 10, []string{"a b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapPlain(tt.text, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d lines %q, want %d %q", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWrapPlainNeverExceedsWidth(t *testing.T) {
	text := strings.Repeat("word ", 50) + "superlongunbreakabletoken"
	for _, width := range []int{1, 3, 7, 20} {
		for i, line := range wrapPlain(text, width) {
			if len(line) > width {
				t.Errorf("width %d line %d: %q is %d wide", width, i, line, len(line))
			}
		}
	}
}

func TestRendererPlainText(t *testing.T) {
	r := NewRenderer(10, false, "dark")

	lines := r.Lines("hello wide world")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", lines)
	}
	if r.Height("hello wide world") != 2 {
		t.Errorf("Height = %d, want 2", r.Height("hello wide world"))
	}

	// Cached result is reused.
	again := r.Lines("hello wide world")
	if &again[0] != &lines[0] {
		t.Error("expected cached lines to be returned")
	}

	if got := r.Lines(""); len(got) != 1 {
		t.Errorf("empty paragraph should render one line, got %q", got)
	}
}

func TestRendererMarkdownFallsBackGracefully(t *testing.T) {
	// Even if glamour rejects the style, Lines must produce output.
	r := NewRenderer(20, true, "no-such-style")
	if got := r.Lines("plain text"); len(got) == 0 {
		t.Error("expected at least one line")
	}
}
