package datasource

import (
	"testing"
	"time"

	"github.com/vanderheijden86/stackview/pkg/layout"
	"github.com/vanderheijden86/stackview/pkg/state"
)

var t0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func msg(id, author, body string) Message {
	return Message{ID: id, Author: author, Body: body, At: t0}
}

func TestDiffAppendedMessages(t *testing.T) {
	old := []Message{msg("m1", "ada", "hello")}
	new := []Message{msg("m1", "ada", "hello"), msg("m2", "lin", "hi"), msg("m3", "ada", "how are you")}

	changes, ok := Diff(old, new)
	if !ok {
		t.Fatal("expected diff to succeed")
	}
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d: %v", len(changes), changes)
	}
	for i, want := range []int{1, 2} {
		if changes[i].Op != state.OpSectionInsert || changes[i].Section != want {
			t.Errorf("change %d = %v section %d, want sectionInsert %d",
				i, changes[i].Op, changes[i].Section, want)
		}
	}
}

func TestDiffDeletedMessage(t *testing.T) {
	old := []Message{msg("m1", "ada", "a"), msg("m2", "lin", "b"), msg("m3", "ada", "c")}
	new := []Message{msg("m1", "ada", "a"), msg("m3", "ada", "c")}

	changes, ok := Diff(old, new)
	if !ok {
		t.Fatal("expected diff to succeed")
	}
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d: %v", len(changes), changes)
	}
	if changes[0].Op != state.OpSectionDelete || changes[0].Section != 1 {
		t.Errorf("change = %v section %d, want sectionDelete 1", changes[0].Op, changes[0].Section)
	}
}

func TestDiffEditedParagraph(t *testing.T) {
	old := []Message{msg("m1", "ada", "first\n\nsecond\n\nthird")}
	new := []Message{msg("m1", "ada", "first\n\nrevised\n\nthird")}

	changes, ok := Diff(old, new)
	if !ok {
		t.Fatal("expected diff to succeed")
	}
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d: %v", len(changes), changes)
	}
	want := layout.ItemPath{Section: 0, Item: 1}
	if changes[0].Op != state.OpItemReload || changes[0].Path != want {
		t.Errorf("change = %v %v, want itemReload %v", changes[0].Op, changes[0].Path, want)
	}
}

func TestDiffStreamedParagraphs(t *testing.T) {
	old := []Message{msg("m1", "ada", "a"), msg("m2", "lin", "thinking")}
	new := []Message{msg("m1", "ada", "a"), msg("m2", "lin", "thinking\n\nmore\n\ndone")}

	changes, ok := Diff(old, new)
	if !ok {
		t.Fatal("expected diff to succeed")
	}
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d: %v", len(changes), changes)
	}
	for i, wantItem := range []int{1, 2} {
		want := layout.ItemPath{Section: 1, Item: wantItem}
		if changes[i].Op != state.OpItemInsert || changes[i].Path != want {
			t.Errorf("change %d = %v %v, want itemInsert %v", i, changes[i].Op, changes[i].Path, want)
		}
	}
}

func TestDiffRewrittenBodyReloadsSection(t *testing.T) {
	old := []Message{msg("m1", "ada", "one\n\ntwo")}
	new := []Message{msg("m1", "ada", "completely different")}

	changes, ok := Diff(old, new)
	if !ok {
		t.Fatal("expected diff to succeed")
	}
	if len(changes) != 1 || changes[0].Op != state.OpSectionReload || changes[0].Section != 0 {
		t.Fatalf("expected sectionReload 0, got %v", changes)
	}
}

func TestDiffAuthorChangeReloadsSection(t *testing.T) {
	old := []Message{msg("m1", "ada", "hello")}
	new := []Message{msg("m1", "grace", "hello")}

	changes, ok := Diff(old, new)
	if !ok {
		t.Fatal("expected diff to succeed")
	}
	if len(changes) != 1 || changes[0].Op != state.OpSectionReload {
		t.Fatalf("expected sectionReload, got %v", changes)
	}
}

func TestDiffReorderFallsBack(t *testing.T) {
	old := []Message{msg("m1", "ada", "a"), msg("m2", "lin", "b")}
	new := []Message{msg("m2", "lin", "b"), msg("m1", "ada", "a")}

	if _, ok := Diff(old, new); ok {
		t.Error("expected reordered transcript to fall back to full reload")
	}
}

func TestDiffEditedAndShiftedFallsBack(t *testing.T) {
	// m3 is both edited and shifted by the deletion of m2; reload
	// positions would resolve against the wrong message.
	old := []Message{msg("m1", "ada", "a"), msg("m2", "lin", "b"), msg("m3", "ada", "c")}
	new := []Message{msg("m1", "ada", "a"), msg("m3", "ada", "c2")}

	if _, ok := Diff(old, new); ok {
		t.Error("expected edited+shifted message to fall back to full reload")
	}
}

func TestDiffMixedBatch(t *testing.T) {
	old := []Message{msg("m1", "ada", "a"), msg("m2", "lin", "b"), msg("m3", "ada", "c")}
	new := []Message{msg("m1", "ada", "a2"), msg("m3", "ada", "c"), msg("m4", "lin", "d")}

	changes, ok := Diff(old, new)
	if !ok {
		t.Fatal("expected diff to succeed")
	}

	var dels, ins, reloads int
	for _, ch := range changes {
		switch ch.Op {
		case state.OpSectionDelete:
			dels++
			if ch.Section != 1 {
				t.Errorf("delete section %d, want 1", ch.Section)
			}
		case state.OpSectionInsert:
			ins++
			if ch.Section != 2 {
				t.Errorf("insert section %d, want 2", ch.Section)
			}
		case state.OpItemReload:
			reloads++
			want := layout.ItemPath{Section: 0, Item: 0}
			if ch.Path != want {
				t.Errorf("reload path %v, want %v", ch.Path, want)
			}
		default:
			t.Errorf("unexpected op %v", ch.Op)
		}
	}
	if dels != 1 || ins != 1 || reloads != 1 {
		t.Errorf("got %d deletes, %d inserts, %d reloads, want 1 each", dels, ins, reloads)
	}
}

func TestParagraphs(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"single", "hello", []string{"hello"}},
		{"two", "a\n\nb", []string{"a", "b"}},
		{"crlf", "a\r\n\r\nb", []string{"a", "b"}},
		{"trailing blank", "a\n\n", []string{"a"}},
		{"empty", "", []string{""}},
		{"internal newline kept", "a\nb\n\nc", []string{"a\nb", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Message{Body: tt.body}.Paragraphs()
			if len(got) != len(tt.want) {
				t.Fatalf("got %d paragraphs %q, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("paragraph %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
