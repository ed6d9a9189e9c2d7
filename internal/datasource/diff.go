package datasource

import (
	"github.com/vanderheijden86/stackview/pkg/debug"
	"github.com/vanderheijden86/stackview/pkg/layout"
	"github.com/vanderheijden86/stackview/pkg/state"
)

// Diff compares two transcript loads and emits a layout change batch,
// one section per message. Deleted and reloaded positions are given in
// old coordinates, inserted positions in new coordinates, matching the
// engine's change contract.
//
// The common case is cheap: appended messages become section inserts,
// paragraphs streamed onto an existing message become item inserts,
// and an edited paragraph becomes an item reload. When the surviving
// messages change relative order the diff gives up and reports
// ok=false; the caller should replace the whole snapshot instead.
func Diff(old, new []Message) (changes []state.ChangeItem, ok bool) {
	oldIdx := make(map[string]int, len(old))
	for i, m := range old {
		oldIdx[m.ID] = i
	}
	newIdx := make(map[string]int, len(new))
	for j, m := range new {
		newIdx[m.ID] = j
	}

	// Surviving messages must keep their relative order.
	prev := -1
	for _, m := range new {
		i, exists := oldIdx[m.ID]
		if !exists {
			continue
		}
		if i < prev {
			debug.Log("diff: message %s reordered, falling back to full reload", m.ID)
			return nil, false
		}
		prev = i
	}

	for i, m := range old {
		if _, exists := newIdx[m.ID]; !exists {
			changes = append(changes, state.SectionDelete(i))
		}
	}

	for j, m := range new {
		i, exists := oldIdx[m.ID]
		if !exists {
			changes = append(changes, state.SectionInsert(j))
			continue
		}
		if m.Equal(old[i]) {
			continue
		}
		if i != j {
			// Reload positions resolve against the host's post-batch
			// data, which only lines up while the index is unchanged.
			debug.Log("diff: message %s edited and shifted, falling back to full reload", m.ID)
			return nil, false
		}
		changes = append(changes, diffMessage(old[i], m, i, j)...)
	}

	return changes, true
}

// diffMessage narrows an edited message to the smallest change set.
// oldPos addresses the message in the old snapshot, newPos in the new
// one.
func diffMessage(oldMsg, newMsg Message, oldPos, newPos int) []state.ChangeItem {
	if oldMsg.Author != newMsg.Author || !oldMsg.At.Equal(newMsg.At) {
		// The header row changes too; rebuild the whole section.
		return []state.ChangeItem{state.SectionReload(oldPos)}
	}

	oldPars := oldMsg.Paragraphs()
	newPars := newMsg.Paragraphs()

	switch {
	case len(oldPars) == len(newPars):
		var out []state.ChangeItem
		for k := range newPars {
			if oldPars[k] != newPars[k] {
				out = append(out, state.ItemReload(layout.ItemPath{Section: oldPos, Item: k}))
			}
		}
		return out

	case len(newPars) > len(oldPars) && isPrefix(oldPars, newPars):
		// Streaming append: new paragraphs arrived at the tail.
		out := make([]state.ChangeItem, 0, len(newPars)-len(oldPars))
		for k := len(oldPars); k < len(newPars); k++ {
			out = append(out, state.ItemInsert(layout.ItemPath{Section: newPos, Item: k}))
		}
		return out

	default:
		return []state.ChangeItem{state.SectionReload(oldPos)}
	}
}

func isPrefix(prefix, full []string) bool {
	for i, p := range prefix {
		if full[i] != p {
			return false
		}
	}
	return true
}
