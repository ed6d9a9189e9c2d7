package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/stackview/pkg/debug"
)

// Renderer turns message paragraphs into terminal lines at a fixed
// width. Results are cached because the layout host asks for the same
// paragraph's height many times per batch; the cache is dropped
// wholesale on resize.
type Renderer struct {
	width    int
	markdown bool
	theme    string

	gr    *glamour.TermRenderer
	cache map[string][]string
}

// NewRenderer creates a renderer for the given content width. With
// markdown enabled, paragraphs go through glamour using the named
// standard style; otherwise they are word-wrapped as plain text.
func NewRenderer(width int, markdown bool, theme string) *Renderer {
	r := &Renderer{
		width:    width,
		markdown: markdown,
		theme:    theme,
		cache:    make(map[string][]string),
	}
	if markdown {
		gr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(theme),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			debug.Log("render: glamour unavailable (%v), plain text fallback", err)
		} else {
			r.gr = gr
		}
	}
	return r
}

// Width returns the render width.
func (r *Renderer) Width() int { return r.width }

// Lines renders one paragraph into display lines. Always returns at
// least one line so every cell occupies a row.
func (r *Renderer) Lines(text string) []string {
	if cached, ok := r.cache[text]; ok {
		return cached
	}

	var lines []string
	if r.gr != nil {
		out, err := r.gr.Render(text)
		if err == nil {
			lines = splitTrimmed(out)
		}
	}
	if lines == nil {
		lines = wrapPlain(text, r.width)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}

	r.cache[text] = lines
	return lines
}

// Height returns the row count Lines would produce.
func (r *Renderer) Height(text string) int {
	return len(r.Lines(text))
}

func splitTrimmed(out string) []string {
	out = strings.Trim(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// wrapPlain word-wraps text to width terminal cells, breaking words
// longer than a full line. Wide runes count as two cells.
func wrapPlain(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, src := range strings.Split(text, "\n") {
		if src == "" {
			lines = append(lines, "")
			continue
		}
		var cur strings.Builder
		curWidth := 0
		for _, word := range strings.Fields(src) {
			w := runewidth.StringWidth(word)
			switch {
			case curWidth == 0:
				// First word on the line; hard-break if oversized.
				for w > width {
					cut := runewidth.Truncate(word, width, "")
					if cut == "" {
						break
					}
					lines = append(lines, cut)
					word = word[len(cut):]
					w = runewidth.StringWidth(word)
				}
				cur.WriteString(word)
				curWidth = w
			case curWidth+1+w <= width:
				cur.WriteByte(' ')
				cur.WriteString(word)
				curWidth += 1 + w
			default:
				lines = append(lines, cur.String())
				cur.Reset()
				for w > width {
					cut := runewidth.Truncate(word, width, "")
					if cut == "" {
						break
					}
					lines = append(lines, cut)
					word = word[len(cut):]
					w = runewidth.StringWidth(word)
				}
				cur.WriteString(word)
				curWidth = w
			}
		}
		if curWidth > 0 {
			lines = append(lines, cur.String())
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
