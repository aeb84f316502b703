package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/vgasim/internal/device"
	"github.com/vovakirdan/vgasim/internal/platform/tui"
	"github.com/vovakirdan/vgasim/internal/registry"
	"github.com/vovakirdan/vgasim/internal/storage"
	"github.com/vovakirdan/vgasim/internal/vga"
)

var (
	flagRecord bool
	flagDevice string
)

// Minimum terminal size: the 80x25 grid, its border, and two status lines.
const (
	minTermWidth  = vga.Cols + 2
	minTermHeight = vga.Rows + 4
)

var runCmd = &cobra.Command{
	Use:   "run [demo]",
	Short: "Run a demo",
	Long: `Run the specified demo in the terminal viewer. With no argument an
interactive picker menu opens instead, and you return to it when a demo
ends.

Controls:
  P/Space    - Pause
  R          - Restart
  Ctrl+S     - Save a text snapshot
  Q/Ctrl+C   - Quit

Examples:
  vgasim run
  vgasim run hello
  vgasim run colors --record
  vgasim run scroller --fps 60
  vgasim run hello --device /dev/mem`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagRecord, "record", false, "Record frames to the database")
	runCmd.Flags().StringVar(&flagDevice, "device", "", "Write to a memory device (e.g. /dev/mem) instead of the simulator")
}

func runRun(cmd *cobra.Command, args []string) {
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
	if flagRecord {
		opts.Record = true
	}

	// The store is needed for recording, and for the browser the menu can
	// open. Direct unrecorded runs skip it.
	var store *storage.Store
	if opts.Record || len(args) == 0 {
		store, err = storage.Open(cfg.Record.DB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open recordings database: %v\n", err)
			store = nil
		}
	}

	if len(args) == 1 {
		runOne(args[0], store, opts)
	} else {
		runMenuLoop(store, opts)
	}

	if store != nil {
		store.Close()
	}
}

// runOne runs a single demo directly.
func runOne(demoID string, store *storage.Store, opts tui.Options) {
	if !registry.Exists(demoID) {
		fmt.Fprintf(os.Stderr, "Error: unknown demo %q\n", demoID)
		fmt.Fprintln(os.Stderr, "Run 'vgasim list' to see available demos.")
		os.Exit(1)
	}

	demo, err := registry.Create(demoID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating demo: %v\n", err)
		os.Exit(1)
	}

	dev, closeDev, err := openDevice()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening device: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.Run(demo, dev, store, opts)
	closeDev()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running demo: %v\n", runErr)
		os.Exit(1)
	}
}

// runMenuLoop drives menu -> demo -> menu until the user quits.
func runMenuLoop(store *storage.Store, opts tui.Options) {
	for {
		result, err := tui.RunMenu()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		if result.Quit {
			return
		}

		if result.WantsRecordings {
			if !browseRecordings(store, opts) {
				return
			}
			continue
		}

		if result.DemoID == "" {
			return
		}

		demo, err := registry.Create(result.DemoID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating demo: %v\n", err)
			continue
		}

		if err := tui.Run(demo, device.NewSim(), store, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error running demo: %v\n", err)
		}
		// Loop back to menu
	}
}

// browseRecordings shows the browser until the user goes back or quits.
// Returns false when the user quit entirely.
func browseRecordings(store *storage.Store, opts tui.Options) bool {
	for {
		width, height := termSize()
		result, err := tui.RunRecordings(store, width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return true
		}

		if result.ReplayID != 0 {
			if err := tui.RunReplay(store, result.ReplayID, opts); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			continue // Back to the browser
		}

		return !result.Quit
	}
}

// openDevice returns the adapter memory to drive: the simulator by default,
// or a real mapped device when --device is set.
func openDevice() (tui.Device, func(), error) {
	if flagDevice == "" {
		return device.NewSim(), func() {}, nil
	}

	phys, err := device.OpenPhysical(flagDevice, vga.PhysAddr)
	if err != nil {
		return nil, nil, err
	}
	return phys, func() {
		//nolint:errcheck // Unmapping at exit is best-effort
		phys.Close()
	}, nil
}

// checkTerminal verifies stdout is an interactive terminal large enough
// for the grid.
func checkTerminal() error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("stdout is not a terminal")
	}

	w, h, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("cannot get terminal size: %w", err)
	}
	if w < minTermWidth || h < minTermHeight {
		return fmt.Errorf("terminal is %dx%d, need at least %dx%d", w, h, minTermWidth, minTermHeight)
	}
	return nil
}

// termSize returns the terminal size, with an 80x24 fallback.
func termSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// currentUser returns a name for recording attribution.
func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
