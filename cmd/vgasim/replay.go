package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vgasim/internal/platform/tui"
	"github.com/vovakirdan/vgasim/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Play a recording straight back",
	Long: `Play back the recorded frame stream with the given id at its
original capture pace.

Run 'vgasim sessions' to browse recordings and their ids.

Examples:
  vgasim replay 3
  vgasim replay 3 --db ./recordings.db`,
	Args: cobra.ExactArgs(1),
	Run:  runReplayCmd,
}

func runReplayCmd(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid recording id %q\n", args[0])
		os.Exit(1)
	}

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

	replayErr := tui.RunReplay(store, id, opts)
	store.Close()

	if replayErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", replayErr)
		os.Exit(1)
	}
}
