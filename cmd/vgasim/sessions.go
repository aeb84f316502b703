package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vgasim/internal/platform/tui"
	"github.com/vovakirdan/vgasim/internal/storage"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Browse and replay recordings",
	Long: `Open the recordings browser.

Recordings are captured with 'vgasim run --record <demo>' or by an SSH
server started with 'vgasim serve --record'. Enter replays the selected
recording, d deletes it, tab cycles the demo filter.

Examples:
  vgasim sessions
  vgasim sessions --db ./recordings.db`,
	Run: runSessions,
}

func runSessions(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := checkTerminal(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts, err := tui.OptionsFromConfig(cfg, currentUser())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Record.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening recordings database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	browseRecordings(store, opts)
}
