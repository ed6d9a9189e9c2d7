package layout

// Model is an ordered sequence of sections stacked vertically.
//
// After Assemble, sections are contiguous in offset:
//
//	sections[i+1].OffsetY == sections[i].OffsetY + sections[i].Height + interSectionSpacing
//
// Identity lookups resolve stable IDs to positional indexes; the maps
// backing them are rebuilt on every Assemble, since positions shift
// across mutations while IDs do not.
type Model struct {
	Sections []Section

	sectionByID map[ID]int
}

// Assemble stacks every section (each of which must already have been
// assembled) and rebuilds the identity indexes.
func (m *Model) Assemble(interSectionSpacing float64) {
	y := 0.0
	m.sectionByID = make(map[ID]int, len(m.Sections))
	for i := range m.Sections {
		if i > 0 {
			y += interSectionSpacing
		}
		m.Sections[i].OffsetY = y
		y += m.Sections[i].Height
		m.sectionByID[m.Sections[i].ID] = i
	}
}

// TotalHeight returns the bottom edge of the last section, zero for an
// empty model. Valid only after Assemble.
func (m *Model) TotalHeight() float64 {
	if len(m.Sections) == 0 {
		return 0
	}
	last := &m.Sections[len(m.Sections)-1]
	return last.OffsetY + last.Height
}

// Section returns the section at index i. The index must be in range;
// this is a direct accessor for callers that already validated it.
func (m *Model) Section(i int) *Section {
	return &m.Sections[i]
}

// SectionIndex resolves a section ID to its current positional index.
func (m *Model) SectionIndex(id ID) (int, bool) {
	if m.sectionByID != nil {
		i, ok := m.sectionByID[id]
		return i, ok
	}
	for i := range m.Sections {
		if m.Sections[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

// Item returns the item of the given kind at path, or nil when no such
// element exists in this model. Absent elements are an expected
// steady-state outcome during animation bookkeeping, not an error.
func (m *Model) Item(path ItemPath, kind ItemKind) *Item {
	if path.Section < 0 || path.Section >= len(m.Sections) {
		return nil
	}
	sec := &m.Sections[path.Section]
	switch kind {
	case KindHeader:
		return sec.Header
	case KindFooter:
		return sec.Footer
	case KindCell:
		if path.Item < 0 || path.Item >= len(sec.Items) {
			return nil
		}
		return &sec.Items[path.Item]
	default:
		return nil
	}
}

// ItemID returns the stable identity of the element at path.
func (m *Model) ItemID(path ItemPath, kind ItemKind) (ID, bool) {
	it := m.Item(path, kind)
	if it == nil {
		return "", false
	}
	return it.ID, true
}

// ItemPath resolves an element's stable identity to its current path.
func (m *Model) ItemPath(id ID, kind ItemKind) (ItemPath, bool) {
	for si := range m.Sections {
		sec := &m.Sections[si]
		switch kind {
		case KindHeader:
			if sec.Header != nil && sec.Header.ID == id {
				return ItemPath{Section: si}, true
			}
		case KindFooter:
			if sec.Footer != nil && sec.Footer.ID == id {
				return ItemPath{Section: si}, true
			}
		case KindCell:
			for ii := range sec.Items {
				if sec.Items[ii].ID == id {
					return ItemPath{Section: si, Item: ii}, true
				}
			}
		}
	}
	return ItemPath{}, false
}

// Copy returns a deep copy of the model for use as the afterUpdate
// snapshot. The copy shares nothing with the receiver.
func (m *Model) Copy() *Model {
	out := &Model{Sections: make([]Section, len(m.Sections))}
	for i := range m.Sections {
		out.Sections[i] = m.Sections[i].Copy()
	}
	if m.sectionByID != nil {
		out.sectionByID = make(map[ID]int, len(m.sectionByID))
		for id, i := range m.sectionByID {
			out.sectionByID[id] = i
		}
	}
	return out
}
