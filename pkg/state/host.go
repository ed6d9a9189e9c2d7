package state

import (
	"github.com/vanderheijden86/stackview/pkg/geometry"
	"github.com/vanderheijden86/stackview/pkg/layout"
)

// Settings is the layout configuration snapshot the host exposes. The
// controller re-reads it per operation and never caches it across
// calls.
type Settings struct {
	// InterItemSpacing is the vertical gap between consecutive
	// elements within a section.
	InterItemSpacing float64

	// InterSectionSpacing is the vertical gap between consecutive
	// sections.
	InterSectionSpacing float64

	// AdditionalInsets pad the assembled content within the layout
	// frame.
	AdditionalInsets geometry.Insets

	// PinnableItems enables pinned (sticky) elements. When false,
	// pinning flags on items are ignored at frame time.
	PinnableItems bool

	// EstimatedItemSize is the fallback estimate applied when the
	// host's configuration reports a zero preferred size.
	EstimatedItemSize geometry.Size
}

// ItemConfig is the host-supplied shape of one element, queried when
// the controller materializes new items during insert or reload.
type ItemConfig struct {
	PreferredSize  geometry.Size
	CalculatedSize geometry.Size
	Calculated     bool
	Alignment      layout.Alignment
	Pinning        layout.Pinning
}

// Representation is the capability interface the controller consumes
// from its host. Geometry queries reflect the live viewport and are
// re-queried on every call; the controller never memoizes them beyond
// a single operation.
//
// A Representation is mandatory: the controller is constructed with
// one and never holds a nil reference.
type Representation interface {
	// Settings returns the current layout configuration.
	Settings() Settings

	// ViewSize is the host view's full size.
	ViewSize() geometry.Size

	// VisibleBounds is the currently visible region in content
	// coordinates.
	VisibleBounds() geometry.Rect

	// LayoutFrame is the content area: the view bounds inset by the
	// content insets and the additional insets.
	LayoutFrame() geometry.Rect

	// EffectiveTopOffset is the content-coordinate position of the
	// viewport's top edge after insets; pinned elements track it.
	EffectiveTopOffset() float64

	// ContentInsets is the host's adjusted content inset.
	ContentInsets() geometry.Insets

	// KeepContentAtBottom gates scroll-offset compensation: when true,
	// mutations above the viewport's lower edge are counter-balanced
	// so visible content does not shift during a batch.
	KeepContentAtBottom() bool

	// NumberOfItems reports the current cell count of a section.
	NumberOfItems(section int) int

	// HasHeader and HasFooter report whether a section presents a
	// header or footer.
	HasHeader(section int) bool
	HasFooter(section int) bool

	// Configuration yields the shape of the element of the given kind
	// at path.
	Configuration(kind layout.ItemKind, path layout.ItemPath) ItemConfig
}
