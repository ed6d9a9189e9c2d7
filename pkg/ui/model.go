// Package ui is the terminal front end of sv. It drives the layout
// engine with one unit per terminal row: the transcript host measures
// message paragraphs at the current width, the controller stacks them
// into sections, and the view paints whatever AttributesInRect says is
// visible.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/google/uuid"

	"github.com/vanderheijden86/stackview/internal/datasource"
	"github.com/vanderheijden86/stackview/pkg/config"
	"github.com/vanderheijden86/stackview/pkg/debug"
	"github.com/vanderheijden86/stackview/pkg/geometry"
	"github.com/vanderheijden86/stackview/pkg/layout"
	"github.com/vanderheijden86/stackview/pkg/metrics"
	"github.com/vanderheijden86/stackview/pkg/state"
	"github.com/vanderheijden86/stackview/pkg/watcher"
)

// chromeRows is the vertical space reserved below the transcript: one
// status bar row and one composer row.
const chromeRows = 2

// transcriptMsg delivers a (re)loaded transcript.
type transcriptMsg struct {
	messages []datasource.Message
	err      error
}

// fileChangedMsg reports that the watched transcript file changed.
type fileChangedMsg struct{}

// Model is the bubbletea model for an sv session.
type Model struct {
	cfg    config.Config
	source datasource.Source
	watch  *watcher.Watcher

	host *transcriptHost
	ctrl *state.Controller

	composer  textinput.Model
	composing bool

	width  int
	height int
	ready  bool
	loaded bool

	scroll int
	status string
	err    error
}

// New creates a session model. watch may be nil when watching is
// disabled.
func New(cfg config.Config, source datasource.Source, watch *watcher.Watcher) *Model {
	host := newTranscriptHost(cfg)

	composer := textinput.New()
	composer.Placeholder = "add a note"
	composer.Prompt = "> "
	composer.CharLimit = 4096

	return &Model{
		cfg:      cfg,
		source:   source,
		watch:    watch,
		host:     host,
		ctrl:     state.NewController(host),
		composer: composer,
	}
}

// Init loads the transcript and arms the file watcher.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.watchCmd(), textinput.Blink)
}

func (m *Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		msgs, err := m.source.Load(context.Background())
		return transcriptMsg{messages: msgs, err: err}
	}
}

func (m *Model) watchCmd() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	ch := m.watch.Changed()
	return func() tea.Msg {
		<-ch
		return fileChangedMsg{}
	}
}

// Update is the bubbletea state transition.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.host.resize(msg.Width, msg.Height-chromeRows)
		m.composer.Width = msg.Width - 4
		m.ready = true
		if m.loaded {
			// A width change invalidates every measured height.
			m.ctrl.Set(m.host.buildSections(), state.BeforeUpdate)
			m.afterLayoutChange()
		}
		return m, nil

	case transcriptMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.applyTranscript(msg.messages)
		return m, nil

	case fileChangedMsg:
		debug.Log("ui: transcript changed, reloading")
		return m, tea.Batch(m.loadCmd(), m.watchCmd())

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollBy(-3)
		case tea.MouseButtonWheelDown:
			m.scrollBy(3)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.composing {
		switch msg.Type {
		case tea.KeyEsc:
			m.composing = false
			m.composer.Blur()
			return m, nil
		case tea.KeyEnter:
			m.submitNote()
			return m, nil
		}
		var cmd tea.Cmd
		m.composer, cmd = m.composer.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		defer metricsDump()
		return m, tea.Quit

	case "up", "k":
		m.scrollBy(-1)
	case "down", "j":
		m.scrollBy(1)
	case "pgup", "b":
		m.scrollBy(-m.viewHeight())
	case "pgdown", " ":
		m.scrollBy(m.viewHeight())
	case "g":
		m.setScroll(0)
		m.setFollow(false)
	case "G":
		m.scrollToBottom()

	case "f":
		m.setFollow(!m.host.follow)
		if m.host.follow {
			m.scrollToBottom()
		}

	case "y":
		m.yankLastMessage()

	case "i", "/":
		m.composing = true
		m.composer.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

// applyTranscript diffs the new load against the current transcript
// and feeds the engine the narrowest batch it can, falling back to a
// full snapshot replacement when the diff gives up.
func (m *Model) applyTranscript(msgs []datasource.Message) {
	old := m.host.messages
	changes, ok := datasource.Diff(old, msgs)
	m.host.messages = msgs

	switch {
	case !m.loaded || !ok:
		m.ctrl.Set(m.host.buildSections(), state.BeforeUpdate)
	case len(changes) > 0:
		m.ctrl.Process(changes)
		if !m.host.follow {
			// Keep the viewport anchored on the same content.
			m.scroll += int(m.ctrl.TotalProposedCompensatingOffset())
		}
		m.ctrl.CommitUpdates()
	}
	m.loaded = true
	m.afterLayoutChange()
}

func (m *Model) afterLayoutChange() {
	if m.host.follow {
		m.scrollToBottom()
	} else {
		m.clampScroll()
	}
}

// submitNote appends a local note to the in-memory transcript. Notes
// are not written back to the source; an external writer remains the
// single owner of the file.
func (m *Model) submitNote() {
	body := strings.TrimSpace(m.composer.Value())
	m.composer.SetValue("")
	m.composing = false
	m.composer.Blur()
	if body == "" {
		return
	}
	note := datasource.Message{
		ID:     uuid.NewString(),
		Author: "you",
		Body:   body,
		At:     time.Now(),
	}
	m.applyTranscript(append(append([]datasource.Message(nil), m.host.messages...), note))
}

func (m *Model) yankLastMessage() {
	if len(m.host.messages) == 0 {
		return
	}
	last := m.host.messages[len(m.host.messages)-1]
	if err := clipboard.WriteAll(last.Body); err != nil {
		m.status = "clipboard unavailable"
		return
	}
	m.status = fmt.Sprintf("copied message from %s", last.Author)
}

func (m *Model) viewHeight() int {
	h := m.height - chromeRows
	if h < 1 {
		return 1
	}
	return h
}

func (m *Model) contentHeight() int {
	if !m.loaded {
		return 0
	}
	return int(m.ctrl.ContentHeight(state.BeforeUpdate))
}

func (m *Model) setScroll(row int) {
	if row < 0 {
		row = 0
	}
	maxScroll := m.contentHeight() - m.viewHeight()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if row > maxScroll {
		row = maxScroll
	}
	m.scroll = row
	m.host.scrollY = float64(row)
}

func (m *Model) scrollBy(delta int) {
	if delta < 0 {
		m.setFollow(false)
	}
	m.setScroll(m.scroll + delta)
	if m.scroll == m.contentHeight()-m.viewHeight() && delta > 0 && m.cfg.Layout.FollowTail {
		m.setFollow(true)
	}
}

func (m *Model) clampScroll() {
	m.setScroll(m.scroll)
}

func (m *Model) scrollToBottom() {
	m.setScroll(m.contentHeight() - m.viewHeight())
}

func (m *Model) setFollow(follow bool) {
	m.host.follow = follow
}

// View paints the visible band of the transcript, the status bar, and
// the composer row.
func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}
	defer metrics.Timer(metrics.UIRender)()

	viewH := m.viewHeight()
	lines := make([]string, viewH)

	if m.loaded {
		visible := geometry.NewRect(0, float64(m.scroll), float64(m.width), float64(viewH))
		for _, a := range m.ctrl.AttributesInRect(visible, state.BeforeUpdate) {
			m.paint(lines, a)
		}
	}

	var b strings.Builder
	for _, ln := range lines {
		b.WriteString(ln)
		b.WriteByte('\n')
	}
	b.WriteString(m.statusLine())
	b.WriteByte('\n')
	b.WriteString(m.composerLine())
	return b.String()
}

// paint writes one element's rows into the line buffer. Pinned
// attributes arrive after static ones and overwrite them, which is
// exactly the stacking order a pinned header needs.
func (m *Model) paint(lines []string, a *state.Attributes) {
	if a.Path.Section < 0 || a.Path.Section >= len(m.host.messages) {
		return
	}
	msg := m.host.messages[a.Path.Section]

	var content []string
	switch a.Kind {
	case layout.KindHeader:
		content = []string{authorLine(msg.Author, msg.At, a.Pinned)}
	case layout.KindCell:
		pars := msg.Paragraphs()
		if a.Path.Item < 0 || a.Path.Item >= len(pars) {
			return
		}
		content = m.host.renderer.Lines(pars[a.Path.Item])
	default:
		return
	}

	start := int(a.Frame.MinY()) - m.scroll
	for i, ln := range content {
		row := start + i
		if row >= 0 && row < len(lines) {
			lines[row] = ln
		}
	}
}

func (m *Model) statusLine() string {
	var parts []string
	parts = append(parts, m.source.Path())
	parts = append(parts, fmt.Sprintf("%d messages", len(m.host.messages)))

	if m.host.follow {
		parts = append(parts, followStyle.Render("FOLLOW"))
	} else if ch := m.contentHeight(); ch > m.viewHeight() {
		pct := 100 * m.scroll / (ch - m.viewHeight())
		parts = append(parts, fmt.Sprintf("%d%%", pct))
	}

	if m.watch != nil && m.watch.IsPolling() {
		parts = append(parts, "polling")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if m.err != nil {
		parts = append(parts, statusErrStyle.Render(m.err.Error()))
	}

	line := " " + strings.Join(parts, "  ")
	return statusBarStyle.Width(m.width).Render(line)
}

func (m *Model) composerLine() string {
	if m.composing {
		return m.composer.View()
	}
	return timestampStyle.Render(" j/k scroll  f follow  y yank  i note  q quit")
}

// metricsDump logs collected timings on exit when debugging is on.
func metricsDump() {
	if !debug.Enabled() {
		return
	}
	for _, s := range metrics.AllTimingStats() {
		debug.Log("metric %s: n=%d avg=%.3fms max=%.3fms", s.Name, s.Count, s.AvgMs, s.MaxMs)
	}
}
