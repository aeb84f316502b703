// vgasim is a VGA text-mode console toolkit: it runs driver demos against a
// simulated adapter, mirrors the character memory live in the terminal,
// serves sessions over SSH, and records/replays the raw cell stream.
//
// Usage:
//
//	vgasim list              - List available demos
//	vgasim run [demo]        - Run a demo (no argument opens the picker menu)
//	vgasim serve             - Start SSH server for remote sessions
//	vgasim sessions          - Browse and replay recordings
//	vgasim replay <id>       - Play a recording straight back
//	vgasim palette           - Show the 16 driver colors
//
// Global flags:
//
//	--config <path>  - Custom display config YAML
//	--fps <rate>     - Override display refresh rate
//	--db <path>      - Override recordings database path
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vgasim/internal/config"

	// Import demos to register them
	_ "github.com/vovakirdan/vgasim/internal/demos/colors"
	_ "github.com/vovakirdan/vgasim/internal/demos/hello"
	_ "github.com/vovakirdan/vgasim/internal/demos/scroller"
	_ "github.com/vovakirdan/vgasim/internal/demos/typewriter"
)

var (
	// Global flags
	flagConfig string
	flagFPS    int
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vgasim",
	Short: "VGA text mode in your terminal",
	Long: `vgasim models the classic 80x25 color text buffer and the driver that
writes to it, and mirrors the character memory live in your terminal.

Available commands:
  list      - Show all available demos
  run       - Run a demo (or pick one from a menu)
  serve     - Start SSH server for remote sessions
  sessions  - Browse and replay recordings
  replay    - Play a recording straight back
  palette   - Show the 16 driver colors

Examples:
  vgasim list
  vgasim run hello
  vgasim run colors --record
  vgasim serve --address :2222
  vgasim replay 3`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom display config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Display refresh rate (0 = config value)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to recordings database (empty = config value)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(paletteCmd)
}

// loadConfig loads the display config and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagFPS > 0 {
		cfg.Viewer.FPS = flagFPS
	}
	if flagDBPath != "" {
		cfg.Record.DB = flagDBPath
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
