package state_test

import (
	"github.com/vanderheijden86/stackview/pkg/geometry"
	"github.com/vanderheijden86/stackview/pkg/layout"
	"github.com/vanderheijden86/stackview/pkg/state"
)

// stubHost is a scriptable Representation. Geometry fields are
// returned verbatim; content-shape queries describe the host's
// post-batch data for materialization during insert/reload.
type stubHost struct {
	settings      state.Settings
	viewSize      geometry.Size
	visible       geometry.Rect
	layoutFrame   geometry.Rect
	effectiveTop  float64
	contentInsets geometry.Insets
	keepAtBottom  bool

	counts  map[int]int
	headers map[int]bool
	footers map[int]bool
	configs map[cfgKey]state.ItemConfig

	defaultHeight float64
}

type cfgKey struct {
	kind    layout.ItemKind
	section int
	item    int
}

func newStubHost() *stubHost {
	return &stubHost{
		settings: state.Settings{
			EstimatedItemSize: geometry.Size{Width: 320, Height: 40},
		},
		viewSize:      geometry.Size{Width: 320, Height: 480},
		visible:       geometry.NewRect(0, 0, 320, 480),
		layoutFrame:   geometry.NewRect(0, 0, 320, 480),
		counts:        make(map[int]int),
		headers:       make(map[int]bool),
		footers:       make(map[int]bool),
		configs:       make(map[cfgKey]state.ItemConfig),
		defaultHeight: 50,
	}
}

func (h *stubHost) Settings() state.Settings            { return h.settings }
func (h *stubHost) ViewSize() geometry.Size             { return h.viewSize }
func (h *stubHost) VisibleBounds() geometry.Rect        { return h.visible }
func (h *stubHost) LayoutFrame() geometry.Rect          { return h.layoutFrame }
func (h *stubHost) EffectiveTopOffset() float64         { return h.effectiveTop }
func (h *stubHost) ContentInsets() geometry.Insets      { return h.contentInsets }
func (h *stubHost) KeepContentAtBottom() bool           { return h.keepAtBottom }
func (h *stubHost) NumberOfItems(section int) int       { return h.counts[section] }
func (h *stubHost) HasHeader(section int) bool          { return h.headers[section] }
func (h *stubHost) HasFooter(section int) bool          { return h.footers[section] }

func (h *stubHost) Configuration(kind layout.ItemKind, path layout.ItemPath) state.ItemConfig {
	if cfg, ok := h.configs[cfgKey{kind, path.Section, path.Item}]; ok {
		return cfg
	}
	return state.ItemConfig{
		PreferredSize: geometry.Size{Width: 320, Height: h.defaultHeight},
		Alignment:     layout.AlignFullWidth,
	}
}

func (h *stubHost) setConfig(kind layout.ItemKind, section, item int, cfg state.ItemConfig) {
	h.configs[cfgKey{kind, section, item}] = cfg
}
