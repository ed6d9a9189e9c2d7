package ui

import (
	"github.com/google/uuid"

	"github.com/vanderheijden86/stackview/internal/datasource"
	"github.com/vanderheijden86/stackview/pkg/config"
	"github.com/vanderheijden86/stackview/pkg/geometry"
	"github.com/vanderheijden86/stackview/pkg/layout"
	"github.com/vanderheijden86/stackview/pkg/state"
)

// transcriptHost adapts the terminal transcript to the layout engine's
// host interface. One layout unit is one terminal row: every size the
// engine sees is a whole number of rows, measured by the renderer.
//
// The message slice always reflects the post-batch transcript, because
// the engine materializes inserted and reloaded content by querying
// back into the host.
type transcriptHost struct {
	cfg      config.Config
	renderer *Renderer

	messages []datasource.Message

	width   int
	viewH   int
	scrollY float64
	follow  bool
}

func newTranscriptHost(cfg config.Config) *transcriptHost {
	return &transcriptHost{
		cfg:      cfg,
		renderer: NewRenderer(1, cfg.UI.Markdown, cfg.UI.Theme),
		follow:   cfg.Layout.FollowTail,
		width:    1,
		viewH:    1,
	}
}

// resize rebuilds the renderer for a new content width.
func (h *transcriptHost) resize(width, viewH int) {
	if width < 1 {
		width = 1
	}
	if viewH < 1 {
		viewH = 1
	}
	if width != h.width {
		h.renderer = NewRenderer(width, h.cfg.UI.Markdown, h.cfg.UI.Theme)
	}
	h.width = width
	h.viewH = viewH
}

func (h *transcriptHost) Settings() state.Settings {
	return h.cfg.LayoutSettings(float64(h.width))
}

func (h *transcriptHost) ViewSize() geometry.Size {
	return geometry.Size{Width: float64(h.width), Height: float64(h.viewH)}
}

func (h *transcriptHost) VisibleBounds() geometry.Rect {
	return geometry.NewRect(0, h.scrollY, float64(h.width), float64(h.viewH))
}

func (h *transcriptHost) LayoutFrame() geometry.Rect {
	return geometry.NewRect(0, 0, float64(h.width), float64(h.viewH))
}

func (h *transcriptHost) EffectiveTopOffset() float64 {
	return h.scrollY
}

func (h *transcriptHost) ContentInsets() geometry.Insets {
	return geometry.Insets{}
}

// KeepContentAtBottom arms compensation unconditionally. While
// following, the view snaps to the bottom anyway and the offset is
// ignored; while scrolled back, the offset keeps the same rows on
// screen when content above the viewport changes.
func (h *transcriptHost) KeepContentAtBottom() bool {
	return true
}

func (h *transcriptHost) NumberOfItems(section int) int {
	if section < 0 || section >= len(h.messages) {
		return 0
	}
	return len(h.messages[section].Paragraphs())
}

func (h *transcriptHost) HasHeader(section int) bool {
	return true
}

func (h *transcriptHost) HasFooter(section int) bool {
	return false
}

func (h *transcriptHost) Configuration(kind layout.ItemKind, path layout.ItemPath) state.ItemConfig {
	w := float64(h.width)

	if kind == layout.KindHeader {
		pin := layout.PinNone
		if h.cfg.Layout.PinHeaders {
			pin = layout.PinTop
		}
		return state.ItemConfig{
			PreferredSize:  geometry.Size{Width: w, Height: 1},
			CalculatedSize: geometry.Size{Width: w, Height: 1},
			Calculated:     true,
			Alignment:      layout.AlignFullWidth,
			Pinning:        pin,
		}
	}

	h2 := 1.0
	if path.Section >= 0 && path.Section < len(h.messages) {
		pars := h.messages[path.Section].Paragraphs()
		if path.Item >= 0 && path.Item < len(pars) {
			h2 = float64(h.renderer.Height(pars[path.Item]))
		}
	}
	return state.ItemConfig{
		PreferredSize:  geometry.Size{Width: w, Height: h2},
		CalculatedSize: geometry.Size{Width: w, Height: h2},
		Calculated:     true,
		Alignment:      layout.AlignFullWidth,
	}
}

// buildSections materializes the full transcript as layout sections
// for a whole-snapshot Set. Section IDs are the stable message IDs so
// diffs keep addressing the same content across loads.
func (h *transcriptHost) buildSections() []layout.Section {
	w := float64(h.width)
	pin := layout.PinNone
	if h.cfg.Layout.PinHeaders {
		pin = layout.PinTop
	}

	sections := make([]layout.Section, 0, len(h.messages))
	for _, m := range h.messages {
		sec := layout.Section{ID: layout.ID(m.ID)}
		hdr := layout.Item{
			ID:            layout.ID(uuid.NewString()),
			Kind:          layout.KindHeader,
			Alignment:     layout.AlignFullWidth,
			Pinning:       pin,
			PreferredSize: geometry.Size{Width: w, Height: 1},
		}
		hdr.SetCalculatedSize(geometry.Size{Width: w, Height: 1})
		sec.Header = &hdr

		for _, p := range m.Paragraphs() {
			rows := float64(h.renderer.Height(p))
			it := layout.Item{
				ID:            layout.ID(uuid.NewString()),
				Kind:          layout.KindCell,
				Alignment:     layout.AlignFullWidth,
				PreferredSize: geometry.Size{Width: w, Height: rows},
			}
			it.SetCalculatedSize(geometry.Size{Width: w, Height: rows})
			sec.Items = append(sec.Items, it)
		}
		sections = append(sections, sec)
	}
	return sections
}
