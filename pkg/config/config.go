// Package config handles loading and saving sv configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/sv/config.yaml
//   - Data:    ~/.local/share/sv/ (themes)
//   - State:   ~/.local/state/sv/ (view state cache)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/stackview/pkg/geometry"
	"github.com/vanderheijden86/stackview/pkg/state"
)

// LayoutConfig holds the stacking parameters fed to the layout engine.
type LayoutConfig struct {
	RowSpacing     float64 `yaml:"row_spacing,omitempty"`     // Rows between cells within a section
	SectionSpacing float64 `yaml:"section_spacing,omitempty"` // Rows between sections
	EstimatedRows  float64 `yaml:"estimated_rows,omitempty"`  // Fallback cell height before measurement
	PinHeaders     bool    `yaml:"pin_headers,omitempty"`     // Keep section headers at the viewport top
	FollowTail     bool    `yaml:"follow_tail,omitempty"`     // Anchor the viewport to the newest content
	TopPadding     float64 `yaml:"top_padding,omitempty"`     // Extra rows above the first section
	BottomPadding  float64 `yaml:"bottom_padding,omitempty"`  // Extra rows below the last section
}

// UIConfig holds rendering preferences.
type UIConfig struct {
	Theme    string `yaml:"theme,omitempty"`    // Glamour style name (dark, light, notty)
	Markdown bool   `yaml:"markdown,omitempty"` // Render message bodies as markdown
	Mouse    bool   `yaml:"mouse,omitempty"`    // Enable mouse wheel scrolling
}

// TranscriptConfig points at the default transcript to open.
type TranscriptConfig struct {
	Path  string `yaml:"path,omitempty"`  // JSONL file or SQLite database
	Watch bool   `yaml:"watch,omitempty"` // Reload when the file changes
}

// Config is the top-level configuration for sv.
type Config struct {
	Layout     LayoutConfig     `yaml:"layout,omitempty"`
	UI         UIConfig         `yaml:"ui,omitempty"`
	Transcript TranscriptConfig `yaml:"transcript,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Layout: LayoutConfig{
			RowSpacing:     0,
			SectionSpacing: 1,
			EstimatedRows:  1,
			PinHeaders:     true,
			FollowTail:     true,
		},
		UI: UIConfig{
			Theme:    "dark",
			Markdown: true,
			Mouse:    true,
		},
		Transcript: TranscriptConfig{
			Watch: true,
		},
	}
}

// LayoutSettings converts the layout section into engine settings for
// a viewport of the given width.
func (c Config) LayoutSettings(width float64) state.Settings {
	return state.Settings{
		InterItemSpacing:    c.Layout.RowSpacing,
		InterSectionSpacing: c.Layout.SectionSpacing,
		AdditionalInsets: geometry.Insets{
			Top:    c.Layout.TopPadding,
			Bottom: c.Layout.BottomPadding,
		},
		PinnableItems:     c.Layout.PinHeaders,
		EstimatedItemSize: geometry.Size{Width: width, Height: c.Layout.EstimatedRows},
	}
}

// ConfigDir returns the XDG config directory for sv.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "sv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sv")
}

// DataDir returns the XDG data directory for sv.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "sv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "sv")
}

// StateDir returns the XDG state directory for sv.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "sv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "sv")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Transcript.Path = expandHome(cfg.Transcript.Path)

	if cfg.Layout.EstimatedRows <= 0 {
		cfg.Layout.EstimatedRows = 1
	}

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
