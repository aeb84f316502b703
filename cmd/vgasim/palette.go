package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/vgasim/internal/platform/tui"
	"github.com/vovakirdan/vgasim/internal/vga"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Show the 16 driver colors",
	Long: `Print the driver palette: each color's code, name, a swatch, and the
attribute byte it produces as a foreground on black.

Color names are accepted by the writer config (foreground/background).`,
	Run: runPalette,
}

func runPalette(_ *cobra.Command, _ []string) {
	fmt.Println("VGA text-mode palette:")
	fmt.Println()
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "Code", "Name", "Swatch", "Attr")

	for code := 0; code < 16; code++ {
		c := vga.Color(code)
		swatch := lipgloss.NewStyle().
			Background(tui.ANSIColor(c)).
			Render("        ")
		attr := vga.NewColorCode(c, vga.Black)
		fmt.Printf("  %-4d  %-10s  %s  %#02x\n", code, c.String(), swatch, byte(attr))
	}

	fmt.Println()
	fmt.Println("Set writer colors in the config, e.g. foreground: lightgreen")
}
