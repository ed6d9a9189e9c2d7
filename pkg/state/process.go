package state

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vanderheijden86/stackview/pkg/debug"
	"github.com/vanderheijden86/stackview/pkg/layout"
	"github.com/vanderheijden86/stackview/pkg/metrics"
)

// Process derives the afterUpdate snapshot by applying a change batch
// to a copy of beforeUpdate, then computes scroll-offset compensation
// for every touched element. Application is all-or-nothing within this
// single synchronous call; no query is answered mid-application.
//
// Exactly one batch can be in flight. Calling Process again before
// CommitUpdates replaces the pending batch: the new afterUpdate is
// derived from beforeUpdate, never from the abandoned snapshot.
func (c *Controller) Process(changes []ChangeItem) {
	defer metrics.Timer(metrics.ProcessBatch)()

	settings := c.rep.Settings()

	c.resetBatchBookkeeping()
	c.proposedCompensation = 0
	c.totalProposedCompensation = 0

	after := c.before.Copy()
	sorted := sortChanges(changes)
	debug.Log("process: applying %d changes", len(sorted))
	for _, ch := range sorted {
		c.apply(after, ch, settings)
	}

	stop := metrics.Timer(metrics.Assembly)
	for i := range after.Sections {
		after.Sections[i].Assemble(settings.InterItemSpacing)
	}
	after.Assemble(settings.InterSectionSpacing)
	stop()

	c.after = after
	c.caches[AfterUpdate].reset()

	if c.rep.KeepContentAtBottom() && c.IsLayoutBiggerThanViewport(AfterUpdate) {
		c.compensate(settings)
	}
	c.totalProposedCompensation = c.proposedCompensation
	debug.LogIf(c.totalProposedCompensation != 0, "process: proposed compensation %v", c.totalProposedCompensation)
}

// apply mutates the in-progress afterUpdate model with one canonical
// operation. Positions are interpreted per the ChangeItem contract:
// deletes/reloads against pre-mutation positions, inserts against
// post-mutation positions, moves by identity.
func (c *Controller) apply(after *layout.Model, ch ChangeItem, settings Settings) {
	switch ch.Op {
	case OpSectionReload:
		old := &after.Sections[ch.Section]
		rebuilt := c.makeSection(ch.Section, old.ID, settings)
		after.Sections[ch.Section] = rebuilt
		c.reloadedSections = append(c.reloadedSections, ch.Section)

	case OpItemReload:
		it := after.Item(ch.Path, layout.KindCell)
		if it == nil {
			panic(fmt.Sprintf("state: reload of missing cell at section %d item %d", ch.Path.Section, ch.Path.Item))
		}
		cfg := c.rep.Configuration(layout.KindCell, ch.Path)
		applyConfig(it, cfg, settings)
		c.reloadedItems = append(c.reloadedItems, ch.Path)

	case OpItemDelete:
		sec := &after.Sections[ch.Path.Section]
		sec.Items = append(sec.Items[:ch.Path.Item], sec.Items[ch.Path.Item+1:]...)
		c.deletedItems = append(c.deletedItems, ch.Path)

	case OpSectionDelete:
		after.Sections = append(after.Sections[:ch.Section], after.Sections[ch.Section+1:]...)
		c.deletedSections = append(c.deletedSections, ch.Section)

	case OpSectionInsert:
		sec := c.makeSection(ch.Section, layout.ID(uuid.NewString()), settings)
		after.Sections = append(after.Sections, layout.Section{})
		copy(after.Sections[ch.Section+1:], after.Sections[ch.Section:])
		after.Sections[ch.Section] = sec
		c.insertedSections = append(c.insertedSections, ch.Section)

	case OpItemInsert:
		sec := &after.Sections[ch.Path.Section]
		it := c.makeItem(layout.KindCell, ch.Path, layout.ID(uuid.NewString()), settings)
		sec.Items = append(sec.Items, layout.Item{})
		copy(sec.Items[ch.Path.Item+1:], sec.Items[ch.Path.Item:])
		sec.Items[ch.Path.Item] = it
		c.insertedItems = append(c.insertedItems, ch.Path)

	case OpSectionMove:
		id := c.before.Sections[ch.Section].ID
		// Scan directly: the model's identity index is stale while a
		// batch is mid-application.
		cur := -1
		for i := range after.Sections {
			if after.Sections[i].ID == id {
				cur = i
				break
			}
		}
		if cur < 0 {
			panic(fmt.Sprintf("state: move of missing section %d", ch.Section))
		}
		moved := after.Sections[cur]
		after.Sections = append(after.Sections[:cur], after.Sections[cur+1:]...)
		after.Sections = append(after.Sections, layout.Section{})
		copy(after.Sections[ch.ToSection+1:], after.Sections[ch.ToSection:])
		after.Sections[ch.ToSection] = moved
		c.movedSections = append(c.movedSections, [2]int{ch.Section, ch.ToSection})

	case OpItemMove:
		src := c.before.Item(ch.Path, layout.KindCell)
		if src == nil {
			panic(fmt.Sprintf("state: move of missing cell at section %d item %d", ch.Path.Section, ch.Path.Item))
		}
		cur, ok := after.ItemPath(src.ID, layout.KindCell)
		if !ok {
			panic(fmt.Sprintf("state: moved cell %q vanished from afterUpdate", src.ID))
		}
		from := &after.Sections[cur.Section]
		moved := from.Items[cur.Item]
		from.Items = append(from.Items[:cur.Item], from.Items[cur.Item+1:]...)
		to := &after.Sections[ch.ToPath.Section]
		to.Items = append(to.Items, layout.Item{})
		copy(to.Items[ch.ToPath.Item+1:], to.Items[ch.ToPath.Item:])
		to.Items[ch.ToPath.Item] = moved
		c.movedItems = append(c.movedItems, [2]layout.ItemPath{ch.Path, ch.ToPath})

	default:
		panic(fmt.Sprintf("state: unknown change op %v", ch.Op))
	}
}

// makeSection materializes a section by querying the host's content
// shape at the given index. The index is interpreted in the host's
// current (post-mutation) coordinate space for inserts and in the
// pre-mutation space for reloads, where the two coincide.
func (c *Controller) makeSection(index int, id layout.ID, settings Settings) layout.Section {
	sec := layout.Section{ID: id}
	if c.rep.HasHeader(index) {
		h := c.makeItem(layout.KindHeader, layout.ItemPath{Section: index}, layout.ID(uuid.NewString()), settings)
		sec.Header = &h
	}
	if c.rep.HasFooter(index) {
		f := c.makeItem(layout.KindFooter, layout.ItemPath{Section: index}, layout.ID(uuid.NewString()), settings)
		sec.Footer = &f
	}
	n := c.rep.NumberOfItems(index)
	sec.Items = make([]layout.Item, 0, n)
	for i := 0; i < n; i++ {
		sec.Items = append(sec.Items, c.makeItem(layout.KindCell, layout.ItemPath{Section: index, Item: i}, layout.ID(uuid.NewString()), settings))
	}
	sec.Assemble(settings.InterItemSpacing)
	return sec
}

// makeItem materializes one item from the host configuration.
func (c *Controller) makeItem(kind layout.ItemKind, path layout.ItemPath, id layout.ID, settings Settings) layout.Item {
	cfg := c.rep.Configuration(kind, path)
	it := layout.Item{ID: id, Kind: kind}
	applyConfig(&it, cfg, settings)
	return it
}

// applyConfig overwrites an item's shape from a host configuration,
// preserving its identity.
func applyConfig(it *layout.Item, cfg ItemConfig, settings Settings) {
	it.PreferredSize = cfg.PreferredSize
	if it.PreferredSize.IsZero() {
		it.PreferredSize = settings.EstimatedItemSize
	}
	it.Alignment = cfg.Alignment
	it.Pinning = cfg.Pinning
	if cfg.Calculated {
		it.SetCalculatedSize(cfg.CalculatedSize)
	} else {
		it.ResetSize()
	}
}

// compensate runs the second pass of Process: for every touched
// element it diffs frames between the snapshots and accumulates the
// scroll-offset correction. The traversal order is load-bearing:
// inserted sections, reloaded sections, deleted sections, reloaded
// items, inserted items, deleted items. minY is re-evaluated from the
// live accumulators before each element.
func (c *Controller) compensate(settings Settings) {
	bottom := c.rep.VisibleBounds().MaxY()
	minY := func() float64 {
		return bottom + c.batchCompensation + c.proposedCompensation
	}
	topInset := settings.AdditionalInsets.Top

	for _, idx := range c.insertedSections {
		sec := c.after.Section(idx)
		if topInset+sec.OffsetY <= minY() {
			c.proposedCompensation += sec.Height + settings.InterSectionSpacing
		}
	}

	for _, idx := range c.reloadedSections {
		oldSec := c.before.Section(idx)
		newIdx, ok := c.after.SectionIndex(oldSec.ID)
		if !ok {
			continue // reloaded then deleted within the same batch
		}
		newSec := c.after.Section(newIdx)
		if topInset+oldSec.OffsetY <= minY() {
			c.proposedCompensation += newSec.Height - oldSec.Height
		}
	}

	for _, idx := range c.deletedSections {
		sec := c.before.Section(idx)
		if topInset+sec.OffsetY <= minY() {
			c.proposedCompensation -= sec.Height + settings.InterSectionSpacing
		}
	}

	for _, p := range c.reloadedItems {
		oldIt := c.before.Item(p, layout.KindCell)
		if oldIt == nil {
			continue
		}
		newPath, ok := c.after.ItemPath(oldIt.ID, layout.KindCell)
		if !ok {
			continue
		}
		newIt := c.after.Item(newPath, layout.KindCell)
		oldTop := topInset + c.before.Section(p.Section).OffsetY + oldIt.OffsetY
		if oldTop <= minY() {
			c.proposedCompensation += newIt.Size().Height - oldIt.Size().Height
		}
	}

	for _, p := range c.insertedItems {
		it := c.after.Item(p, layout.KindCell)
		sec := c.after.Section(p.Section)
		if topInset+sec.OffsetY+it.OffsetY <= minY() {
			c.proposedCompensation += it.Size().Height + settings.InterItemSpacing
		}
	}

	for _, p := range c.deletedItems {
		it := c.before.Item(p, layout.KindCell)
		sec := c.before.Section(p.Section)
		if topInset+sec.OffsetY+it.OffsetY <= minY() {
			c.proposedCompensation -= it.Size().Height + settings.InterItemSpacing
		}
	}
}
