// Package registry provides a global registry for demo factories. Demos
// register themselves in init() functions, allowing the platform to
// discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/vgasim/internal/vga"
)

// Demo is the interface all demos implement. A demo is pure driver calls
// against the writer it is handed; the platform owns timing, display and
// input.
type Demo interface {
	// ID returns a unique identifier for this demo (e.g., "hello",
	// "scroller"). Used for CLI commands and recording storage.
	ID() string

	// Title returns a human-readable name for menus and listings.
	Title() string

	// Reset points the demo at a writer and rewinds its state.
	// Called once at start and again when restarting.
	Reset(w *vga.Writer)

	// Step advances the demo by one display tick. It reports false once
	// the demo has nothing more to write; the final frame stays on
	// screen.
	Step(tick uint64) bool
}

// Info contains metadata about a registered demo.
type Info struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a demo.
type Factory func() Demo

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a demo factory to the registry.
// Typically called from a demo's init() function.
// Panics if a demo with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: demo %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	d := f()
	titles[id] = d.Title()
}

// List returns information about all registered demos, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new demo by its ID.
// Returns an error if the demo ID is not registered.
func Create(id string) (Demo, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown demo %q", id)
	}

	return f(), nil
}

// Exists checks if a demo with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
