package testutil

import (
	"math"
	"testing"

	"github.com/vanderheijden86/stackview/pkg/layout"
)

// epsilon for float comparisons; assembly is pure addition so any
// drift beyond this indicates a real bug, not rounding.
const epsilon = 1e-9

// AssertNear verifies two floats are equal within epsilon.
func AssertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// AssertSectionStacking verifies the intra-section stacking invariant:
// consecutive elements are separated by exactly spacing.
func AssertSectionStacking(t *testing.T, sec *layout.Section, spacing float64) {
	t.Helper()
	prevEnd := math.NaN()
	check := func(it *layout.Item, label string) {
		if !math.IsNaN(prevEnd) {
			if math.Abs(it.OffsetY-(prevEnd+spacing)) > epsilon {
				t.Errorf("%s OffsetY = %v, want %v", label, it.OffsetY, prevEnd+spacing)
			}
		} else if math.Abs(it.OffsetY) > epsilon {
			t.Errorf("%s OffsetY = %v, want 0 (first element)", label, it.OffsetY)
		}
		prevEnd = it.OffsetY + it.Size().Height
	}
	if sec.Header != nil {
		check(sec.Header, "header")
	}
	for i := range sec.Items {
		check(&sec.Items[i], "cell "+string(rune('0'+i%10)))
	}
	if sec.Footer != nil {
		check(sec.Footer, "footer")
	}
	if !math.IsNaN(prevEnd) && math.Abs(sec.Height-prevEnd) > epsilon {
		t.Errorf("section Height = %v, want %v", sec.Height, prevEnd)
	}
}

// AssertModelStacking verifies the inter-section contiguity invariant:
// sections[i+1].OffsetY == sections[i].OffsetY + sections[i].Height + spacing.
func AssertModelStacking(t *testing.T, m *layout.Model, sectionSpacing float64) {
	t.Helper()
	for i := 0; i+1 < len(m.Sections); i++ {
		want := m.Sections[i].OffsetY + m.Sections[i].Height + sectionSpacing
		if math.Abs(m.Sections[i+1].OffsetY-want) > epsilon {
			t.Errorf("section %d OffsetY = %v, want %v", i+1, m.Sections[i+1].OffsetY, want)
		}
	}
}

// AssertNoDuplicateIDs verifies every section and item ID in the model
// is unique.
func AssertNoDuplicateIDs(t *testing.T, m *layout.Model) {
	t.Helper()
	seen := make(map[layout.ID]bool)
	record := func(id layout.ID, what string) {
		if seen[id] {
			t.Errorf("duplicate %s ID: %s", what, id)
		}
		seen[id] = true
	}
	for i := range m.Sections {
		sec := &m.Sections[i]
		record(sec.ID, "section")
		if sec.Header != nil {
			record(sec.Header.ID, "header")
		}
		if sec.Footer != nil {
			record(sec.Footer.ID, "footer")
		}
		for j := range sec.Items {
			record(sec.Items[j].ID, "cell")
		}
	}
}
