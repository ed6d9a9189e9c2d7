// Package testutil provides deterministic fixture generators and
// layout-invariant assertions for the engine's tests. All generators
// take an explicit seed so failures reproduce exactly.
package testutil

import (
	"fmt"
	"math/rand"

	"github.com/vanderheijden86/stackview/pkg/geometry"
	"github.com/vanderheijden86/stackview/pkg/layout"
)

// GeneratorConfig controls section fixture generation.
type GeneratorConfig struct {
	Seed         int64   // Random seed for determinism
	Sections     int     // Number of sections
	MaxItems     int     // Max cells per section (min 0)
	MinHeight    float64 // Minimum cell height
	MaxHeight    float64 // Maximum cell height
	HeaderEvery  int     // Every n-th section gets a header (0 = never)
	FooterEvery  int     // Every n-th section gets a footer (0 = never)
	PinHeaders   bool    // Generated headers are top-pinned
	ContentWidth float64 // Preferred width for generated items
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:         1,
		Sections:     5,
		MaxItems:     8,
		MinHeight:    10,
		MaxHeight:    60,
		HeaderEvery:  2,
		ContentWidth: 320,
	}
}

// Sections generates a deterministic slice of sections per cfg. IDs
// follow the pattern "s<i>" / "s<i>-c<j>" so tests can address
// elements by identity.
func Sections(cfg GeneratorConfig) []layout.Section {
	rng := rand.New(rand.NewSource(cfg.Seed))
	height := func() float64 {
		if cfg.MaxHeight <= cfg.MinHeight {
			return cfg.MinHeight
		}
		return cfg.MinHeight + float64(rng.Intn(int(cfg.MaxHeight-cfg.MinHeight)+1))
	}

	sections := make([]layout.Section, 0, cfg.Sections)
	for i := 0; i < cfg.Sections; i++ {
		sec := layout.Section{ID: layout.ID(fmt.Sprintf("s%d", i))}
		if cfg.HeaderEvery > 0 && i%cfg.HeaderEvery == 0 {
			pin := layout.PinNone
			if cfg.PinHeaders {
				pin = layout.PinTop
			}
			sec.Header = &layout.Item{
				ID:            layout.ID(fmt.Sprintf("s%d-hdr", i)),
				Kind:          layout.KindHeader,
				Alignment:     layout.AlignFullWidth,
				Pinning:       pin,
				PreferredSize: geometry.Size{Width: cfg.ContentWidth, Height: height()},
			}
		}
		if cfg.FooterEvery > 0 && i%cfg.FooterEvery == 0 {
			sec.Footer = &layout.Item{
				ID:            layout.ID(fmt.Sprintf("s%d-ftr", i)),
				Kind:          layout.KindFooter,
				Alignment:     layout.AlignFullWidth,
				PreferredSize: geometry.Size{Width: cfg.ContentWidth, Height: height()},
			}
		}
		n := rng.Intn(cfg.MaxItems + 1)
		for j := 0; j < n; j++ {
			sec.Items = append(sec.Items, layout.Item{
				ID:            layout.ID(fmt.Sprintf("s%d-c%d", i, j)),
				Kind:          layout.KindCell,
				Alignment:     layout.AlignFullWidth,
				PreferredSize: geometry.Size{Width: cfg.ContentWidth, Height: height()},
			})
		}
		sections = append(sections, sec)
	}
	return sections
}

// CellSection builds one section of cells with the given heights,
// full-width aligned, with IDs "<id>-c<j>".
func CellSection(id string, width float64, heights ...float64) layout.Section {
	sec := layout.Section{ID: layout.ID(id)}
	for j, h := range heights {
		sec.Items = append(sec.Items, layout.Item{
			ID:            layout.ID(fmt.Sprintf("%s-c%d", id, j)),
			Kind:          layout.KindCell,
			Alignment:     layout.AlignFullWidth,
			PreferredSize: geometry.Size{Width: width, Height: h},
		})
	}
	return sec
}
