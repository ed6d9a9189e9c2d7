package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "39"})

	pinnedHeaderStyle = headerStyle.
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "236"})

	timestampStyle = lipgloss.NewStyle().
			Faint(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "235", Dark: "252"}).
			Background(lipgloss.AdaptiveColor{Light: "251", Dark: "237"})

	statusErrStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	followStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "42"})
)

// authorLine formats a section header row: author name plus a short
// timestamp, styled for either the scrolling or the pinned position.
func authorLine(author string, at time.Time, pinned bool) string {
	style := headerStyle
	if pinned {
		style = pinnedHeaderStyle
	}
	ts := ""
	if !at.IsZero() {
		ts = timestampStyle.Render(at.Format("15:04"))
	}
	if ts == "" {
		return style.Render(author)
	}
	return fmt.Sprintf("%s %s", style.Render(author), ts)
}
