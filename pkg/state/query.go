package state

import (
	"github.com/vanderheijden86/stackview/pkg/geometry"
	"github.com/vanderheijden86/stackview/pkg/layout"
	"github.com/vanderheijden86/stackview/pkg/metrics"
	"github.com/vanderheijden86/stackview/pkg/segment"
)

// scanState tracks the three-valued traversal over a position-sorted
// sequence: once a contiguous run of intersecting elements has been
// found and then left, the scan is done and stops early.
type scanState int

const (
	scanNotFound scanState = iota
	scanFound
	scanDone
)

// AttributesInRect returns every header, footer, and cell whose
// resolved frame intersects rect in the snapshot at state, static
// elements first, pinned elements after them.
//
// Static results are served from a per-snapshot cache keyed by a
// superset rect; pinned results are recomputed on every call because
// their frames track the live viewport top. Returned pointers are
// identity-stable per element and snapshot until the next mutation.
func (c *Controller) AttributesInRect(rect geometry.Rect, state ModelState) []*Attributes {
	defer metrics.Timer(metrics.AttributesQuery)()

	settings := c.rep.Settings()
	m := c.model(state)
	caches := c.caches[state]

	var static []*Attributes
	if caches.rect != nil && caches.rect.Rect.Contains(rect) {
		metrics.RectCache.Hit()
		static = caches.rect.Attrs
	} else {
		metrics.RectCache.Miss()
		ext := rect
		if state == BeforeUpdate {
			// Extend symmetrically to seed the next query; afterUpdate
			// snapshots are transient, so computing beyond the exact
			// request would be wasted.
			ext = rect.Inset(geometry.Insets{
				Top:    -rect.Height() / 2,
				Bottom: -rect.Height() / 2,
				Left:   -rect.Width() / 2,
				Right:  -rect.Width() / 2,
			})
		}
		static = c.staticAttributes(m, ext, state, settings)
		caches.rect = &rectCacheEntry{Rect: ext, Attrs: static}
	}

	// The cached list is sorted by vertical position (assembly stacks
	// elements top to bottom), so a binary search narrows it to the
	// exact request.
	lo, hi := segment.Overlap(len(static),
		func(i int) float64 { return static[i].Frame.MinY() },
		func(i int) float64 { return static[i].Frame.MaxY() },
		rect.MinY(), rect.MaxY())

	result := make([]*Attributes, 0, hi-lo+4)
	for _, a := range static[lo:hi] {
		if a.Frame.Intersects(rect) {
			result = append(result, a)
		}
	}
	return append(result, c.pinnedAttributes(m, rect, state, settings)...)
}

// staticAttributes traverses sections in vertical order collecting
// resolved attributes for every static element intersecting rect.
// Precondition: sections and elements are monotonically increasing in
// vertical position (the assembly invariant).
func (c *Controller) staticAttributes(m *layout.Model, rect geometry.Rect, state ModelState, settings Settings) []*Attributes {
	var out []*Attributes
	topInset := settings.AdditionalInsets.Top

	scan := scanNotFound
	for si := range m.Sections {
		sec := &m.Sections[si]
		secTop := topInset + sec.OffsetY
		if secTop+sec.Height > rect.MinY() && secTop < rect.MaxY() {
			scan = scanFound
			refs := sec.StaticElements
			lo, hi := segment.Overlap(len(refs),
				func(i int) float64 {
					return secTop + sec.Element(refs[i]).OffsetY
				},
				func(i int) float64 {
					el := sec.Element(refs[i])
					return secTop + el.OffsetY + el.Size().Height
				},
				rect.MinY(), rect.MaxY())
			for _, ref := range refs[lo:hi] {
				out = append(out, c.attributes(sec, si, ref, state, false, settings))
			}
		} else if scan == scanFound {
			scan = scanDone
			break
		}
	}
	return out
}

// pinnedAttributes resolves the pinned elements of every section whose
// band intersects rect. Pinned frames depend on the live viewport top,
// so they are never cached as rect results; only their attribute
// objects are reused for identity stability.
func (c *Controller) pinnedAttributes(m *layout.Model, rect geometry.Rect, state ModelState, settings Settings) []*Attributes {
	if !settings.PinnableItems {
		return nil
	}
	topInset := settings.AdditionalInsets.Top

	var out []*Attributes
	scan := scanNotFound
	for si := range m.Sections {
		sec := &m.Sections[si]
		if len(sec.PinnedElements) == 0 {
			continue
		}
		secTop := topInset + sec.OffsetY
		// A pinned element is clamped inside its section, so the
		// section band bounds its possible positions.
		if secTop+sec.Height > rect.MinY() && secTop < rect.MaxY() {
			scan = scanFound
			for _, ref := range sec.PinnedElements {
				a := c.attributes(sec, si, ref, state, true, settings)
				if a.Frame.Intersects(rect) {
					out = append(out, a)
				}
			}
		} else if scan == scanFound {
			break
		}
	}
	return out
}

// ItemAttributes resolves a single element's attributes, or false when
// the snapshot has no element at that path: an expected miss during
// animation bookkeeping, not an error.
func (c *Controller) ItemAttributes(path layout.ItemPath, kind layout.ItemKind, state ModelState) (*Attributes, bool) {
	m := c.model(state)
	it := m.Item(path, kind)
	if it == nil {
		return nil, false
	}
	settings := c.rep.Settings()
	sec := m.Section(path.Section)
	ref := layout.ElementRef{Kind: kind, Index: path.Item}
	return c.attributes(sec, path.Section, ref, state, it.Pinning != layout.PinNone, settings), true
}

// attributes resolves one element into its (identity-stable) attribute
// object, refreshing the stored geometry.
func (c *Controller) attributes(sec *layout.Section, sectionIndex int, ref layout.ElementRef, state ModelState, applyPinning bool, settings Settings) *Attributes {
	it := sec.Element(ref)
	path := layout.ItemPath{Section: sectionIndex, Item: ref.Index}
	if ref.Kind != layout.KindCell {
		path.Item = 0
	}

	key := attrKey{kind: ref.Kind, path: path}
	caches := c.caches[state]
	a, ok := caches.objects[key]
	if !ok {
		a = &Attributes{}
		caches.objects[key] = a
	}

	a.ID = it.ID
	a.Kind = ref.Kind
	a.Path = path
	a.Frame = c.frameFor(sec, it, state, applyPinning, settings)
	a.Alignment = it.Alignment
	a.Pinned = applyPinning && settings.PinnableItems && it.Pinning != layout.PinNone
	a.ViewSize = c.rep.ViewSize()
	a.ContentInsets = c.rep.ContentInsets()
	a.AdditionalInsets = settings.AdditionalInsets
	return a
}
