package layout

import "github.com/vanderheijden86/stackview/pkg/geometry"

// ElementRef addresses one element within a section: the header, the
// footer, or the cell at Index. Index is meaningful only for cells.
type ElementRef struct {
	Kind  ItemKind
	Index int
}

// Section is an ordered group of cells with an optional header and
// footer. Assemble stacks them vertically and partitions them into
// static and pinned element sets.
type Section struct {
	ID     ID
	Header *Item
	Footer *Item
	Items  []Item

	// OffsetY is the section's top edge within the model. Valid only
	// after Model.Assemble.
	OffsetY float64

	// Height is the stacked height of all elements. Valid only after
	// Assemble.
	Height float64

	// StaticElements and PinnedElements partition the section's
	// elements by pinning, in vertical order. Recomputed on every
	// Assemble.
	StaticElements []ElementRef
	PinnedElements []ElementRef
}

// Element returns the item addressed by ref, or nil when the section
// has no such element.
func (s *Section) Element(ref ElementRef) *Item {
	switch ref.Kind {
	case KindHeader:
		return s.Header
	case KindFooter:
		return s.Footer
	case KindCell:
		if ref.Index < 0 || ref.Index >= len(s.Items) {
			return nil
		}
		return &s.Items[ref.Index]
	default:
		return nil
	}
}

// Frame returns the section's bounding rect within the model. Valid
// only after Model.Assemble.
func (s *Section) Frame(width float64) geometry.Rect {
	return geometry.NewRect(0, s.OffsetY, width, s.Height)
}

// Assemble stacks the header, cells, and footer with interItemSpacing
// between consecutive elements, records each element's OffsetY and
// section-relative frame, recomputes Height, and rebuilds the
// static/pinned partitions. It is idempotent: re-running it with
// unchanged content produces identical offsets.
func (s *Section) Assemble(interItemSpacing float64) {
	y := 0.0
	first := true

	place := func(it *Item) {
		if !first {
			y += interItemSpacing
		}
		first = false
		sz := it.Size()
		it.OffsetY = y
		it.Frame = geometry.NewRect(0, y, sz.Width, sz.Height)
		y += sz.Height
	}

	if s.Header != nil {
		place(s.Header)
	}
	for i := range s.Items {
		place(&s.Items[i])
	}
	if s.Footer != nil {
		place(s.Footer)
	}
	s.Height = y

	s.StaticElements = s.StaticElements[:0]
	s.PinnedElements = s.PinnedElements[:0]
	partition := func(ref ElementRef, p Pinning) {
		if p == PinNone {
			s.StaticElements = append(s.StaticElements, ref)
		} else {
			s.PinnedElements = append(s.PinnedElements, ref)
		}
	}
	if s.Header != nil {
		partition(ElementRef{Kind: KindHeader}, s.Header.Pinning)
	}
	for i := range s.Items {
		partition(ElementRef{Kind: KindCell, Index: i}, s.Items[i].Pinning)
	}
	if s.Footer != nil {
		partition(ElementRef{Kind: KindFooter}, s.Footer.Pinning)
	}
}

// Copy returns a deep copy of the section. Snapshots never share
// items, so mutating one snapshot can never alias into the other.
func (s *Section) Copy() Section {
	out := *s
	if s.Header != nil {
		h := *s.Header
		out.Header = &h
	}
	if s.Footer != nil {
		f := *s.Footer
		out.Footer = &f
	}
	out.Items = append([]Item(nil), s.Items...)
	out.StaticElements = append([]ElementRef(nil), s.StaticElements...)
	out.PinnedElements = append([]ElementRef(nil), s.PinnedElements...)
	return out
}
