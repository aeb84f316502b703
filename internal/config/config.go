// Package config provides YAML-based configuration for the vgasim toolkit:
// the driver's startup colors, the viewer's refresh rate and glyph charset,
// and recording defaults.
package config

import (
	"fmt"

	"github.com/vovakirdan/vgasim/internal/vga"
)

// Config is the full toolkit configuration.
type Config struct {
	Writer WriterConfig `yaml:"writer"`
	Viewer ViewerConfig `yaml:"viewer"`
	Record RecordConfig `yaml:"record"`
}

// WriterConfig selects the colors a fresh driver writer starts with.
type WriterConfig struct {
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
}

// ViewerConfig controls the terminal viewer.
type ViewerConfig struct {
	FPS     int    `yaml:"fps"`     // display refresh rate
	Charset string `yaml:"charset"` // glyph mapping: cp437 or ascii
}

// RecordConfig controls frame recording.
type RecordConfig struct {
	Enabled bool   `yaml:"enabled"`
	DB      string `yaml:"db"`
}

// Charset names accepted by ViewerConfig.
const (
	CharsetCP437 = "cp437"
	CharsetASCII = "ascii"
)

// Refresh rate bounds for the viewer.
const (
	MinFPS = 1
	MaxFPS = 240
)

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if _, err := vga.ParseColor(c.Writer.Foreground); err != nil {
		return fmt.Errorf("config: writer.foreground: %w", err)
	}
	if _, err := vga.ParseColor(c.Writer.Background); err != nil {
		return fmt.Errorf("config: writer.background: %w", err)
	}
	if c.Viewer.FPS < MinFPS || c.Viewer.FPS > MaxFPS {
		return fmt.Errorf("config: viewer.fps %d out of range %d..%d", c.Viewer.FPS, MinFPS, MaxFPS)
	}
	if c.Viewer.Charset != CharsetCP437 && c.Viewer.Charset != CharsetASCII {
		return fmt.Errorf("config: viewer.charset %q is not %q or %q", c.Viewer.Charset, CharsetCP437, CharsetASCII)
	}
	if c.Record.Enabled && c.Record.DB == "" {
		return fmt.Errorf("config: record.enabled without record.db")
	}
	return nil
}

// WriterColors returns the configured writer colors as driver values.
func (c Config) WriterColors() (fg, bg vga.Color, err error) {
	fg, err = vga.ParseColor(c.Writer.Foreground)
	if err != nil {
		return 0, 0, fmt.Errorf("config: writer.foreground: %w", err)
	}
	bg, err = vga.ParseColor(c.Writer.Background)
	if err != nil {
		return 0, 0, fmt.Errorf("config: writer.background: %w", err)
	}
	return fg, bg, nil
}
