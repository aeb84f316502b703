package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/vgasim/internal/vga"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() failed on the default config: %v", err)
	}

	fg, bg, err := cfg.WriterColors()
	if err != nil {
		t.Fatalf("WriterColors() failed: %v", err)
	}
	if fg != vga.Yellow || bg != vga.Black {
		t.Errorf("WriterColors() = %s on %s, expected yellow on black", fg, bg)
	}
}

func TestLoadEmbeddedDefault(t *testing.T) {
	// With no custom path and no config files around, Load falls through
	// to the embedded defaults.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() failed on the loaded config: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vgasim.yaml")
	content := `
writer:
  foreground: white
  background: blue
viewer:
  fps: 60
  charset: ascii
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	fg, bg, err := cfg.WriterColors()
	if err != nil {
		t.Fatalf("WriterColors() failed: %v", err)
	}
	if fg != vga.White || bg != vga.Blue {
		t.Errorf("WriterColors() = %s on %s, expected white on blue", fg, bg)
	}
	if cfg.Viewer.FPS != 60 {
		t.Errorf("Viewer.FPS = %d, expected 60", cfg.Viewer.FPS)
	}
	if cfg.Viewer.Charset != CharsetASCII {
		t.Errorf("Viewer.Charset = %q, expected %q", cfg.Viewer.Charset, CharsetASCII)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vgasim.yaml")
	if err := os.WriteFile(path, []byte("viewer:\n  fps: 10\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Viewer.FPS != 10 {
		t.Errorf("Viewer.FPS = %d, expected 10", cfg.Viewer.FPS)
	}
	// Fields the file does not name keep their defaults.
	if cfg.Writer.Foreground != "yellow" {
		t.Errorf("Writer.Foreground = %q, expected the default %q", cfg.Writer.Foreground, "yellow")
	}
	if cfg.Viewer.Charset != CharsetCP437 {
		t.Errorf("Viewer.Charset = %q, expected the default %q", cfg.Viewer.Charset, CharsetCP437)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with a missing custom path should fail")
	}
}

func TestLoadInvalidCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vgasim.yaml")
	if err := os.WriteFile(path, []byte("writer:\n  foreground: chartreuse\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() with an unknown color should fail")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown foreground", func(c *Config) { c.Writer.Foreground = "mauve" }},
		{"unknown background", func(c *Config) { c.Writer.Background = "" }},
		{"fps too low", func(c *Config) { c.Viewer.FPS = 0 }},
		{"fps too high", func(c *Config) { c.Viewer.FPS = 1000 }},
		{"unknown charset", func(c *Config) { c.Viewer.Charset = "ebcdic" }},
		{"record without db", func(c *Config) { c.Record.Enabled = true; c.Record.DB = "" }},
	}

	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("Validate() accepted %s", tc.name)
		}
	}
}
