package state

import (
	"sort"

	"github.com/vanderheijden86/stackview/pkg/layout"
)

// ChangeOp identifies one mutation kind within a change batch.
type ChangeOp int

const (
	OpSectionInsert ChangeOp = iota
	OpSectionDelete
	OpSectionReload
	OpSectionMove
	OpItemInsert
	OpItemDelete
	OpItemReload
	OpItemMove
)

// String returns the operation name.
func (op ChangeOp) String() string {
	switch op {
	case OpSectionInsert:
		return "sectionInsert"
	case OpSectionDelete:
		return "sectionDelete"
	case OpSectionReload:
		return "sectionReload"
	case OpSectionMove:
		return "sectionMove"
	case OpItemInsert:
		return "itemInsert"
	case OpItemDelete:
		return "itemDelete"
	case OpItemReload:
		return "itemReload"
	case OpItemMove:
		return "itemMove"
	default:
		return "unknown"
	}
}

// ChangeItem is one normalized mutation operation. Delete, reload, and
// move sources are expressed against pre-mutation positions; insert
// and move targets against post-mutation positions.
type ChangeItem struct {
	Op ChangeOp

	// Section index for section insert/delete/reload; move source for
	// section moves.
	Section int

	// ToSection is the move target for section moves.
	ToSection int

	// Path is the item path for item insert/delete/reload; move source
	// for item moves.
	Path layout.ItemPath

	// ToPath is the move target for item moves.
	ToPath layout.ItemPath
}

// SectionInsert inserts a section at the post-mutation index.
func SectionInsert(index int) ChangeItem {
	return ChangeItem{Op: OpSectionInsert, Section: index}
}

// SectionDelete deletes the section at the pre-mutation index.
func SectionDelete(index int) ChangeItem {
	return ChangeItem{Op: OpSectionDelete, Section: index}
}

// SectionReload rebuilds the section at the pre-mutation index from
// the host's current content.
func SectionReload(index int) ChangeItem {
	return ChangeItem{Op: OpSectionReload, Section: index}
}

// SectionMove moves the section at the pre-mutation index from to the
// post-mutation index to.
func SectionMove(from, to int) ChangeItem {
	return ChangeItem{Op: OpSectionMove, Section: from, ToSection: to}
}

// ItemInsert inserts a cell at the post-mutation path.
func ItemInsert(path layout.ItemPath) ChangeItem {
	return ChangeItem{Op: OpItemInsert, Path: path}
}

// ItemDelete deletes the cell at the pre-mutation path.
func ItemDelete(path layout.ItemPath) ChangeItem {
	return ChangeItem{Op: OpItemDelete, Path: path}
}

// ItemReload refreshes the cell at the pre-mutation path from the
// host's current configuration.
func ItemReload(path layout.ItemPath) ChangeItem {
	return ChangeItem{Op: OpItemReload, Path: path}
}

// ItemMove moves the cell at the pre-mutation path from to the
// post-mutation path to.
func ItemMove(from, to layout.ItemPath) ChangeItem {
	return ChangeItem{Op: OpItemMove, Path: from, ToPath: to}
}

// opPriority is the canonical processing order for a batch. Reloads
// and deletes run first so they resolve against original positions
// (item deletes before section deletes, since a removed section would
// shift the section component of an item path); inserts run afterwards
// against post-mutation positions; moves are resolved by identity and
// run last.
func opPriority(op ChangeOp) int {
	switch op {
	case OpSectionReload:
		return 0
	case OpItemReload:
		return 1
	case OpItemDelete:
		return 2
	case OpSectionDelete:
		return 3
	case OpSectionInsert:
		return 4
	case OpItemInsert:
		return 5
	case OpSectionMove:
		return 6
	case OpItemMove:
		return 7
	default:
		return 8
	}
}

func pathLess(a, b layout.ItemPath) bool {
	if a.Section != b.Section {
		return a.Section < b.Section
	}
	return a.Item < b.Item
}

// sortChanges orders a batch canonically: by operation priority, then
// deletes by descending position (so earlier deletes do not shift
// later ones) and everything else by ascending position.
func sortChanges(changes []ChangeItem) []ChangeItem {
	sorted := append([]ChangeItem(nil), changes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		pa, pb := opPriority(a.Op), opPriority(b.Op)
		if pa != pb {
			return pa < pb
		}
		switch a.Op {
		case OpSectionDelete:
			return a.Section > b.Section
		case OpItemDelete:
			return pathLess(b.Path, a.Path)
		case OpSectionInsert, OpSectionReload:
			return a.Section < b.Section
		case OpItemInsert, OpItemReload:
			return pathLess(a.Path, b.Path)
		default:
			return false
		}
	})
	return sorted
}
