package config

import (
	_ "embed"
)

//go:embed defaults/vgasim.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration: the driver's
// traditional yellow-on-black, a 30 fps viewer with CP437 glyphs, and
// recording switched off.
func DefaultConfig() Config {
	return Config{
		Writer: WriterConfig{
			Foreground: "yellow",
			Background: "black",
		},
		Viewer: ViewerConfig{
			FPS:     30,
			Charset: CharsetCP437,
		},
		Record: RecordConfig{
			Enabled: false,
			DB:      "~/.vgasim/recordings.db",
		},
	}
}
