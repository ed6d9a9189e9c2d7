// Package layout holds the data model for a vertically stacked,
// sectioned list: items, sections, and the model that stacks sections
// into one scrollable column.
//
// Assembly computes cumulative vertical offsets bottom-up: a section
// stacks its header, cells, and footer; the model stacks sections.
// Offsets and frames are only meaningful after the owning container
// has been assembled.
package layout

import "github.com/vanderheijden86/stackview/pkg/geometry"

// ItemKind distinguishes the three element types a section can hold.
type ItemKind int

const (
	KindHeader ItemKind = iota
	KindCell
	KindFooter
)

// String returns the lowercase kind name.
func (k ItemKind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindCell:
		return "cell"
	case KindFooter:
		return "footer"
	default:
		return "unknown"
	}
}

// Alignment is the horizontal placement policy within the layout's
// content width.
type Alignment int

const (
	AlignFullWidth Alignment = iota
	AlignLeading
	AlignTrailing
	AlignCenter
)

// Pinning controls whether an element sticks to a viewport edge while
// its section is scrolled past.
//
// PinBottom exists so hosts can round-trip configuration, but laying
// out a bottom-pinned element panics: it is a documented future
// extension, not a silent no-op.
type Pinning int

const (
	PinNone Pinning = iota
	PinTop
	PinBottom
)

// ID is a stable identity for a section or item. It survives reloads,
// moves, and resizes; positional indexes do not.
type ID string

// ItemPath addresses an item by section index and item index within
// the section. Header and footer lookups use the section index and
// ignore the item index.
type ItemPath struct {
	Section int
	Item    int
}

// Item describes one leaf element: a cell, header, or footer.
type Item struct {
	ID        ID
	Kind      ItemKind
	Alignment Alignment
	Pinning   Pinning

	// PreferredSize is the host's estimate, used until a real
	// measurement arrives.
	PreferredSize geometry.Size

	// CalculatedSize is the measured size reported by the host. It is
	// only meaningful while CalculatedOnce is true.
	CalculatedSize geometry.Size

	// CalculatedOnce is set when the host first reports a measured
	// size and is never cleared except by ResetSize (used on reload).
	CalculatedOnce bool

	// OffsetY is the item's top edge relative to its section's top.
	// Valid only after Section.Assemble.
	OffsetY float64

	// Frame is the section-relative frame recorded at assembly (x is
	// always 0; horizontal placement is resolved by the frame
	// computation in pkg/state, which knows the content width).
	Frame geometry.Rect
}

// Size returns the measured size when one exists, else the estimate.
func (it *Item) Size() geometry.Size {
	if it.CalculatedOnce {
		return it.CalculatedSize
	}
	return it.PreferredSize
}

// SetCalculatedSize records a measured size.
func (it *Item) SetCalculatedSize(s geometry.Size) {
	it.CalculatedSize = s
	it.CalculatedOnce = true
}

// ResetSize drops the measurement so the item falls back to its
// estimate. Used when an item is reloaded.
func (it *Item) ResetSize() {
	it.CalculatedSize = geometry.Size{}
	it.CalculatedOnce = false
}
