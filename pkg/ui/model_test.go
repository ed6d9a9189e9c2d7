package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/stackview/internal/datasource"
	"github.com/vanderheijden86/stackview/pkg/state"
)

type fakeSource struct {
	msgs []datasource.Message
}

func (f *fakeSource) Load(ctx context.Context) ([]datasource.Message, error) { return f.msgs, nil }
func (f *fakeSource) Path() string                                           { return "fake.jsonl" }
func (f *fakeSource) Close() error                                           { return nil }

func chat(n int) []datasource.Message {
	t0 := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	msgs := make([]datasource.Message, 0, n)
	for i := 0; i < n; i++ {
		author := "ada"
		if i%2 == 1 {
			author = "lin"
		}
		msgs = append(msgs, datasource.Message{
			ID:     "m" + string(rune('0'+i%10)) + string(rune('a'+i/10)),
			Author: author,
			Body:   "message body",
			At:     t0.Add(time.Duration(i) * time.Minute),
		})
	}
	return msgs
}

func newTestModel(t *testing.T, msgs []datasource.Message) *Model {
	t.Helper()
	m := New(plainConfig(), &fakeSource{msgs: msgs}, nil)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	m.Update(transcriptMsg{messages: msgs})
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestModelRendersTranscript(t *testing.T) {
	m := newTestModel(t, []datasource.Message{
		{ID: "m1", Author: "ada", Body: "hello there"},
	})

	view := m.View()
	if !strings.Contains(view, "ada") {
		t.Error("view missing author header")
	}
	if !strings.Contains(view, "hello there") {
		t.Error("view missing message body")
	}
	if !strings.Contains(view, "1 messages") {
		t.Error("status bar missing message count")
	}
}

func TestModelFollowsTail(t *testing.T) {
	m := newTestModel(t, chat(20))

	// 20 messages of 2 rows each plus spacing exceed 10 view rows.
	wantScroll := m.contentHeight() - m.viewHeight()
	if m.scroll != wantScroll {
		t.Errorf("scroll = %d, want bottom %d", m.scroll, wantScroll)
	}
	if !strings.Contains(m.View(), "FOLLOW") {
		t.Error("status bar should show follow mode")
	}

	// New content keeps the view glued to the bottom.
	grown := append(append([]datasource.Message(nil), chat(20)...), datasource.Message{
		ID: "tail", Author: "ada", Body: "fresh",
	})
	m.Update(transcriptMsg{messages: grown})
	if m.scroll != m.contentHeight()-m.viewHeight() {
		t.Errorf("scroll = %d after append, want bottom", m.scroll)
	}
	if !strings.Contains(m.View(), "fresh") {
		t.Error("appended message not visible at the bottom")
	}
}

func TestModelScrollUpLeavesFollow(t *testing.T) {
	m := newTestModel(t, chat(20))

	m.Update(key("k"))
	if m.host.follow {
		t.Error("scrolling up should leave follow mode")
	}
	before := m.scroll

	// Appends no longer move the viewport.
	grown := append(append([]datasource.Message(nil), chat(20)...), datasource.Message{
		ID: "tail", Author: "ada", Body: "fresh",
	})
	m.Update(transcriptMsg{messages: grown})
	if m.scroll != before {
		t.Errorf("scroll moved from %d to %d on append without follow", before, m.scroll)
	}
}

func TestModelScrolledBackStaysAnchoredWhenEarlierMessageGrows(t *testing.T) {
	m := newTestModel(t, chat(20))

	m.Update(key("k"))
	if m.host.follow {
		t.Fatal("expected follow off after scrolling up")
	}
	scrollBefore := m.scroll
	heightBefore := m.contentHeight()
	rowsBefore := transcriptRows(m)

	// The first message, far above the viewport, streams two more
	// paragraphs.
	grown := append([]datasource.Message(nil), chat(20)...)
	grown[0].Body += "\n\nmore words\n\nstill more"
	m.Update(transcriptMsg{messages: grown})

	if m.ctrl.HasPendingBatch() {
		t.Fatal("growth must commit immediately")
	}
	wantScroll := scrollBefore + (m.contentHeight() - heightBefore)
	if wantScroll == scrollBefore {
		t.Fatal("fixture did not grow the content above the viewport")
	}
	if m.scroll != wantScroll {
		t.Errorf("scroll = %d, want %d to absorb the growth above", m.scroll, wantScroll)
	}
	for i, row := range transcriptRows(m) {
		if row != rowsBefore[i] {
			t.Errorf("visible row %d changed: %q -> %q", i, rowsBefore[i], row)
		}
	}
}

func transcriptRows(m *Model) []string {
	lines := strings.Split(m.View(), "\n")
	return lines[:m.viewHeight()]
}

func TestModelScrollBounds(t *testing.T) {
	m := newTestModel(t, chat(20))

	m.Update(key("g"))
	if m.scroll != 0 {
		t.Errorf("scroll = %d after g, want 0", m.scroll)
	}
	m.Update(key("k"))
	if m.scroll != 0 {
		t.Errorf("scroll = %d, cannot go above 0", m.scroll)
	}
	m.Update(key("G"))
	if m.scroll != m.contentHeight()-m.viewHeight() {
		t.Errorf("scroll = %d after G, want bottom", m.scroll)
	}
	m.Update(key("j"))
	if m.scroll != m.contentHeight()-m.viewHeight() {
		t.Errorf("scroll = %d, cannot go past bottom", m.scroll)
	}
}

func TestModelPinnedHeaderStaysOnTop(t *testing.T) {
	long := datasource.Message{ID: "long", Author: "ada", Body: strings.Repeat("para\n\n", 30)}
	m := newTestModel(t, []datasource.Message{long})

	m.Update(key("g"))
	m.setScroll(5)

	view := m.View()
	firstLine := strings.SplitN(view, "\n", 2)[0]
	if !strings.Contains(firstLine, "ada") {
		t.Errorf("first visible row = %q, want pinned author header", firstLine)
	}
}

func TestModelComposerAddsNote(t *testing.T) {
	m := newTestModel(t, chat(3))

	m.Update(key("i"))
	if !m.composing {
		t.Fatal("expected composer focus after i")
	}
	m.Update(key("hi there"))
	m.Update(key("enter"))

	if m.composing {
		t.Error("composer should close on enter")
	}
	msgs := m.host.messages
	last := msgs[len(msgs)-1]
	if last.Author != "you" || last.Body != "hi there" {
		t.Errorf("last message = %+v, want local note", last)
	}
	if !strings.Contains(m.View(), "hi there") {
		t.Error("note not visible")
	}
}

func TestModelComposerEscCancels(t *testing.T) {
	m := newTestModel(t, chat(3))
	before := len(m.host.messages)

	m.Update(key("i"))
	m.Update(key("discard me"))
	m.Update(key("esc"))

	if m.composing {
		t.Error("expected composer closed after esc")
	}
	if len(m.host.messages) != before {
		t.Error("esc must not add a message")
	}
}

func TestModelResizeRemeasures(t *testing.T) {
	m := newTestModel(t, []datasource.Message{
		{ID: "m1", Author: "ada", Body: strings.Repeat("word ", 30)},
	})
	tall := m.contentHeight()

	// Narrower viewport wraps to more rows.
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 12})
	if m.contentHeight() <= tall {
		t.Errorf("content height %d after narrowing, want > %d", m.contentHeight(), tall)
	}
	if m.ctrl.HasPendingBatch() {
		t.Error("resize must not leave a batch in flight")
	}
}

func TestModelErrorShownInStatusBar(t *testing.T) {
	m := newTestModel(t, chat(1))
	m.Update(transcriptMsg{err: context.DeadlineExceeded})

	if !strings.Contains(m.View(), "deadline") {
		t.Error("status bar should surface load errors")
	}
	if len(m.host.messages) != 1 {
		t.Error("failed load must not clear the transcript")
	}
}

func TestModelStateStaysCommitted(t *testing.T) {
	m := newTestModel(t, chat(5))

	grown := append(append([]datasource.Message(nil), chat(5)...), datasource.Message{
		ID: "m99", Author: "lin", Body: "late arrival",
	})
	m.Update(transcriptMsg{messages: grown})

	if m.ctrl.HasPendingBatch() {
		t.Error("transcript updates must commit immediately")
	}
	if _, ok := m.ctrl.SectionIndexByID("m99", state.BeforeUpdate); !ok {
		t.Error("new message section missing from stable snapshot")
	}
}
