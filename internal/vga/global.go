package vga

import (
	"fmt"
)

// The package-level console: one shared Writer behind a spin lock, so any
// goroutine can print without tearing another caller's output. The console
// is created lazily on first use over the legacy text window at PhysAddr;
// hosted programs call Attach first to point it somewhere mapped.
var (
	consoleMu spinLock
	console   *Writer
)

// Attach points the console at buf. Column and colors reset to a fresh
// writer's state.
func Attach(buf *Buffer) {
	consoleMu.Lock()
	defer consoleMu.Unlock()
	console = NewWriter(buf)
}

// lockedConsole returns the console, creating it on first use. Callers must
// hold consoleMu.
func lockedConsole() *Writer {
	if console == nil {
		console = NewWriter(MapPhysical(PhysAddr))
	}
	return console
}

// Printf formats its arguments to the console. The bytes of one call land
// contiguously: concurrent callers serialize on the console lock.
//
// Formatting must not print again from inside, for example via a String
// method that calls Printf; the console lock is not reentrant.
func Printf(format string, args ...any) {
	consoleMu.Lock()
	defer consoleMu.Unlock()
	if _, err := fmt.Fprintf(lockedConsole(), format, args...); err != nil {
		panic(fmt.Sprintf("vga: console write failed: %v", err))
	}
}

// Println writes its arguments followed by a newline, like fmt.Println.
// With no arguments it emits exactly one newline, scrolling the grid once.
func Println(args ...any) {
	consoleMu.Lock()
	defer consoleMu.Unlock()
	if _, err := fmt.Fprintln(lockedConsole(), args...); err != nil {
		panic(fmt.Sprintf("vga: console write failed: %v", err))
	}
}

// SetColor changes the console's output attribute.
func SetColor(fg, bg Color) {
	consoleMu.Lock()
	defer consoleMu.Unlock()
	lockedConsole().SetColor(fg, bg)
}
