// Package state owns the layout engine's dual-snapshot state machine.
//
// A Controller holds up to two layout models at a time: beforeUpdate,
// the stable snapshot, and afterUpdate, which exists only while a
// change batch is in flight. Process derives afterUpdate from
// beforeUpdate, CommitUpdates promotes it, and every geometry or
// identity query is answered against a named snapshot.
//
// All methods are synchronous and must be called from the single
// thread driving the host's layout pass. Overlapping calls are a
// programming error, not a runtime condition the controller recovers
// from.
package state

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vanderheijden86/stackview/pkg/geometry"
	"github.com/vanderheijden86/stackview/pkg/layout"
)

// ModelState names one of the two snapshots.
type ModelState int

const (
	// BeforeUpdate is the stable snapshot, always present.
	BeforeUpdate ModelState = iota
	// AfterUpdate is present only between Process and CommitUpdates.
	AfterUpdate
)

// String returns the snapshot name.
func (s ModelState) String() string {
	switch s {
	case BeforeUpdate:
		return "beforeUpdate"
	case AfterUpdate:
		return "afterUpdate"
	default:
		return fmt.Sprintf("ModelState(%d)", int(s))
	}
}

// Controller is the layout state machine. Construct with
// NewController; the zero value is not usable.
type Controller struct {
	rep Representation

	before *layout.Model
	after  *layout.Model

	caches map[ModelState]*stateCaches

	// Per-batch bookkeeping, cleared on CommitUpdates. Section indexes
	// and item paths are recorded in the coordinate space noted per
	// field: inserted positions are post-mutation, deleted and
	// reloaded positions pre-mutation.
	insertedSections []int
	deletedSections  []int
	reloadedSections []int
	insertedItems    []layout.ItemPath
	deletedItems     []layout.ItemPath
	reloadedItems    []layout.ItemPath
	movedSections    [][2]int
	movedItems       [][2]layout.ItemPath

	// batchCompensation accumulates frame-update (resize) deltas and
	// is applied immediately as part of live layout.
	batchCompensation float64
	// proposedCompensation accumulates insert/delete/reload deltas,
	// applied once via the host's target-offset query.
	proposedCompensation float64
	// totalProposedCompensation snapshots proposedCompensation at the
	// end of Process; it adjusts frames and content size consistently
	// until the batch commits.
	totalProposedCompensation float64
}

// NewController creates a controller bound to its host representation.
// The beforeUpdate snapshot is seeded with an empty model.
func NewController(rep Representation) *Controller {
	if rep == nil {
		panic("state: Representation must not be nil")
	}
	c := &Controller{
		rep:    rep,
		before: &layout.Model{},
		caches: map[ModelState]*stateCaches{
			BeforeUpdate: newStateCaches(),
			AfterUpdate:  newStateCaches(),
		},
	}
	settings := rep.Settings()
	c.before.Assemble(settings.InterSectionSpacing)
	return c
}

// model returns the snapshot for state, failing fast when the state
// was never populated: that means the host and controller have
// desynchronized and no cached geometry can be trusted.
func (c *Controller) model(state ModelState) *layout.Model {
	switch state {
	case BeforeUpdate:
		return c.before
	case AfterUpdate:
		if c.after == nil {
			panic("state: afterUpdate snapshot requested with no batch in flight")
		}
		return c.after
	default:
		panic(fmt.Sprintf("state: unknown snapshot %v", state))
	}
}

// HasPendingBatch reports whether an afterUpdate snapshot exists.
func (c *Controller) HasPendingBatch() bool {
	return c.after != nil
}

// Set replaces the snapshot at state with freshly assembled sections.
// Sections and items without IDs get fresh ones; items without a
// preferred size fall back to the settings estimate.
func (c *Controller) Set(sections []layout.Section, state ModelState) {
	settings := c.rep.Settings()
	m := &layout.Model{Sections: sections}
	for i := range m.Sections {
		sec := &m.Sections[i]
		if sec.ID == "" {
			sec.ID = layout.ID(uuid.NewString())
		}
		if sec.Header != nil {
			normalizeItem(sec.Header, settings)
		}
		if sec.Footer != nil {
			normalizeItem(sec.Footer, settings)
		}
		for j := range sec.Items {
			normalizeItem(&sec.Items[j], settings)
		}
		sec.Assemble(settings.InterItemSpacing)
	}
	m.Assemble(settings.InterSectionSpacing)

	switch state {
	case BeforeUpdate:
		c.before = m
	case AfterUpdate:
		c.after = m
	default:
		panic(fmt.Sprintf("state: unknown snapshot %v", state))
	}
	c.caches[state].reset()
}

func normalizeItem(it *layout.Item, settings Settings) {
	if it.ID == "" {
		it.ID = layout.ID(uuid.NewString())
	}
	if it.PreferredSize.IsZero() {
		it.PreferredSize = settings.EstimatedItemSize
	}
}

// CommitUpdates retires the afterUpdate snapshot into the beforeUpdate
// slot, promotes its attribute caches, clears the per-batch
// bookkeeping, and zeroes the compensation accumulators. Calling it
// with no pending batch only clears the already-empty bookkeeping.
func (c *Controller) CommitUpdates() {
	if c.after != nil {
		c.before = c.after
		c.after = nil
		c.caches[BeforeUpdate] = c.caches[AfterUpdate]
		c.caches[AfterUpdate] = newStateCaches()
	}
	c.resetBatchBookkeeping()
	c.batchCompensation = 0
	c.proposedCompensation = 0
	c.totalProposedCompensation = 0
}

func (c *Controller) resetBatchBookkeeping() {
	c.insertedSections = nil
	c.deletedSections = nil
	c.reloadedSections = nil
	c.insertedItems = nil
	c.deletedItems = nil
	c.reloadedItems = nil
	c.movedSections = nil
	c.movedItems = nil
}

// Update records a measured size and alignment for a single item
// in-place within the snapshot at state, re-assembles the owning
// section and model, invalidates that snapshot's caches, and feeds the
// height delta into the live resize compensation accumulator.
func (c *Controller) Update(preferredSize geometry.Size, alignment layout.Alignment, path layout.ItemPath, kind layout.ItemKind, state ModelState) {
	settings := c.rep.Settings()
	m := c.model(state)
	it := m.Item(path, kind)
	if it == nil {
		panic(fmt.Sprintf("state: Update for missing %v at section %d item %d in %v", kind, path.Section, path.Item, state))
	}

	oldHeight := it.Size().Height
	it.SetCalculatedSize(preferredSize)
	it.Alignment = alignment

	sec := m.Section(path.Section)
	sec.Assemble(settings.InterItemSpacing)
	m.Assemble(settings.InterSectionSpacing)
	c.caches[state].reset()

	if !c.rep.KeepContentAtBottom() || !c.IsLayoutBiggerThanViewport(state) {
		return
	}
	newTop := settings.AdditionalInsets.Top + sec.OffsetY + it.OffsetY
	minY := c.rep.VisibleBounds().MaxY() + c.batchCompensation + c.proposedCompensation
	if newTop <= minY {
		c.batchCompensation += it.Size().Height - oldHeight
	}
}

// ContentHeight returns the assembled content height for state,
// including the additional insets. While a batch is in flight the
// beforeUpdate height includes the pending proposed compensation so
// size reporting stays consistent until the host acknowledges the new
// scroll offset.
func (c *Controller) ContentHeight(state ModelState) float64 {
	settings := c.rep.Settings()
	h := c.model(state).TotalHeight() + settings.AdditionalInsets.Vertical()
	if state == BeforeUpdate && c.after != nil {
		h += c.totalProposedCompensation
	}
	return h
}

// ContentSize returns the full content size for state.
func (c *Controller) ContentSize(state ModelState) geometry.Size {
	return geometry.Size{
		Width:  c.rep.LayoutFrame().Width() + c.rep.Settings().AdditionalInsets.Horizontal(),
		Height: c.ContentHeight(state),
	}
}

// IsLayoutBiggerThanViewport reports whether the assembled content is
// taller than the visible bounds; compensation only applies when it
// is.
func (c *Controller) IsLayoutBiggerThanViewport(state ModelState) bool {
	return c.ContentHeight(state) > c.rep.VisibleBounds().Height()
}

// ProposedCompensatingOffset returns the one-shot insert/delete
// compensation accumulated by the current batch.
func (c *Controller) ProposedCompensatingOffset() float64 {
	return c.proposedCompensation
}

// TotalProposedCompensatingOffset returns the compensation snapshot
// taken at the end of Process.
func (c *Controller) TotalProposedCompensatingOffset() float64 {
	return c.totalProposedCompensation
}

// BatchCompensatingOffset returns the live resize compensation
// accumulated since the last commit.
func (c *Controller) BatchCompensatingOffset() float64 {
	return c.batchCompensation
}

// OffsetByCompensation shifts frame by the total proposed compensation
// (backwards when backward is set). Used when returning frames for
// already-visible content during the transient period between
// processing a batch and the host acknowledging the new offset.
func (c *Controller) OffsetByCompensation(frame geometry.Rect, backward bool) geometry.Rect {
	if backward {
		return frame.Offset(0, -c.totalProposedCompensation)
	}
	return frame.Offset(0, c.totalProposedCompensation)
}

// SectionIndexByID resolves a section's stable ID to its positional
// index in the snapshot at state.
func (c *Controller) SectionIndexByID(id layout.ID, state ModelState) (int, bool) {
	return c.model(state).SectionIndex(id)
}

// ItemPathByID resolves an element's stable ID to its current path in
// the snapshot at state. A miss is an expected outcome for elements
// that exist only in the other snapshot.
func (c *Controller) ItemPathByID(id layout.ID, kind layout.ItemKind, state ModelState) (layout.ItemPath, bool) {
	return c.model(state).ItemPath(id, kind)
}

// ItemIDForPath returns the stable identity of the element at path in
// the snapshot at state.
func (c *Controller) ItemIDForPath(path layout.ItemPath, kind layout.ItemKind, state ModelState) (layout.ID, bool) {
	return c.model(state).ItemID(path, kind)
}

// ItemFrame returns the resolved frame (alignment and pinning applied)
// of the element at path, or false when the snapshot has no such
// element.
func (c *Controller) ItemFrame(path layout.ItemPath, kind layout.ItemKind, state ModelState) (geometry.Rect, bool) {
	m := c.model(state)
	it := m.Item(path, kind)
	if it == nil {
		return geometry.Rect{}, false
	}
	settings := c.rep.Settings()
	return c.frameFor(m.Section(path.Section), it, state, true, settings), true
}

// frameFor resolves an item's final frame: horizontal placement from
// its alignment within the layout frame, vertical position from the
// assembled offsets, plus the pinning offset when requested. Pure with
// respect to the snapshots; it never mutates state.
func (c *Controller) frameFor(sec *layout.Section, it *layout.Item, state ModelState, applyPinning bool, settings Settings) geometry.Rect {
	lf := c.rep.LayoutFrame()
	sz := it.Size()

	var x, w float64
	switch it.Alignment {
	case layout.AlignFullWidth:
		x, w = lf.MinX(), lf.Width()
	case layout.AlignLeading:
		x, w = lf.MinX(), sz.Width
	case layout.AlignTrailing:
		x, w = lf.MaxX()-sz.Width, sz.Width
	case layout.AlignCenter:
		x, w = lf.MinX()+(lf.Width()-sz.Width)/2, sz.Width
	default:
		panic(fmt.Sprintf("state: unknown alignment %d", it.Alignment))
	}

	y := settings.AdditionalInsets.Top + sec.OffsetY + it.OffsetY
	if applyPinning && settings.PinnableItems {
		switch it.Pinning {
		case layout.PinNone:
		case layout.PinTop:
			y += c.pinOffset(sec, sz.Height, state, settings)
		case layout.PinBottom:
			panic("state: bottom pinning is not implemented")
		default:
			panic(fmt.Sprintf("state: unknown pinning %d", it.Pinning))
		}
	}
	return geometry.NewRect(x, y, w, sz.Height)
}

// pinOffset drags a top-pinned element down just enough to sit at the
// viewport's effective top edge, clamped so it never leaves its own
// section. While a batch is in flight the beforeUpdate snapshot
// subtracts the pending compensation, because the viewport's nominal
// offset does not yet reflect it.
func (c *Controller) pinOffset(sec *layout.Section, itemHeight float64, state ModelState, settings Settings) float64 {
	top := c.rep.EffectiveTopOffset()
	if state == BeforeUpdate && c.after != nil {
		top -= c.totalProposedCompensation
	}
	offset := top - (settings.AdditionalInsets.Top + sec.OffsetY)
	limit := sec.Height - itemHeight
	return max(0, min(offset, limit))
}
