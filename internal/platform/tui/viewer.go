package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/vgasim/internal/config"
	"github.com/vovakirdan/vgasim/internal/device"
	"github.com/vovakirdan/vgasim/internal/registry"
	"github.com/vovakirdan/vgasim/internal/storage"
	"github.com/vovakirdan/vgasim/internal/vga"
)

// Device is the character memory the viewer scans out of: the simulated
// adapter or the real mapped window.
type Device interface {
	Buffer() *vga.Buffer
	Snapshot(dst []uint16)
}

// Options carries the digested display settings shared by the viewer, menu
// and replay models.
type Options struct {
	FPS    int        // display refresh rate
	Table  *[256]rune // glyph display table
	Fg, Bg vga.Color  // writer startup colors
	Record bool       // capture frames while a demo runs
	User   string     // recording attribution
}

// OptionsFromConfig digests a toolkit configuration into display options.
func OptionsFromConfig(cfg config.Config, user string) (Options, error) {
	fg, bg, err := cfg.WriterColors()
	if err != nil {
		return Options{}, err
	}
	return Options{
		FPS:    cfg.Viewer.FPS,
		Table:  TableFor(cfg.Viewer.Charset),
		Fg:     fg,
		Bg:     bg,
		Record: cfg.Record.Enabled,
		User:   user,
	}, nil
}

// Shared view chrome.
var (
	screenStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Viewer is the Bubble Tea model that runs one demo against a device and
// mirrors the device memory in the terminal: every tick steps the demo,
// scans the cells out, and redraws the full grid.
type Viewer struct {
	demo      registry.Demo
	dev       Device
	w         *vga.Writer
	store     *storage.Store
	opts      Options
	keyMapper *KeyMapper

	frame  []uint16
	tick   uint64
	width  int
	height int

	done       bool // demo finished; the last frame stays up
	paused     bool
	quitting   bool
	backToMenu bool
	inSession  bool // back returns to the session menu instead of quitting

	recID    int64
	recSeq   int
	recStart time.Time
}

// NewViewer creates a viewer for the given demo and device. When opts.Record
// is set and store is non-nil, every displayed frame is captured.
func NewViewer(demo registry.Demo, dev Device, store *storage.Store, opts Options) Viewer {
	v := Viewer{
		demo:      demo,
		dev:       dev,
		store:     store,
		opts:      opts,
		keyMapper: NewKeyMapper(),
		frame:     make([]uint16, vga.Rows*vga.Cols),
	}
	v.boot()

	if opts.Record && store != nil {
		if id, err := store.BeginRecording(demo.ID(), opts.User); err == nil {
			v.recID = id
			v.recStart = time.Now()
		}
	}

	return v
}

// boot resets the device and demo to a fresh power-on state: cleared cells
// in the configured colors, a new writer at column zero, the demo rewound.
func (m *Viewer) boot() {
	attr := vga.NewColorCode(m.opts.Fg, m.opts.Bg)
	m.dev.Buffer().Fill(vga.Cell{Char: ' ', Attr: attr})

	m.w = vga.NewWriter(m.dev.Buffer())
	m.w.SetColor(m.opts.Fg, m.opts.Bg)
	m.demo.Reset(m.w)

	m.tick = 0
	m.done = false
	m.dev.Snapshot(m.frame)
}

// Init starts the tick loop.
func (m Viewer) Init() tea.Cmd {
	return tickCmd(m.opts.FPS)
}

// Update handles messages and updates the model state.
func (m Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Viewer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKey(msg) {
	case ActionQuit:
		m.stopRecording()
		m.quitting = true
		return m, tea.Quit

	case ActionPause:
		m.paused = !m.paused

	case ActionRestart:
		// The recording, if any, keeps running across restarts.
		m.boot()

	case ActionSnapshot:
		m.saveSnapshot()

	case ActionBack:
		m.stopRecording()
		if m.inSession {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleTick advances the demo one display tick and scans the device out.
func (m Viewer) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused && !m.done {
		m.done = !m.demo.Step(m.tick)
		m.tick++
		m.dev.Snapshot(m.frame)
		m.appendFrame()
	}
	return m, tickCmd(m.opts.FPS)
}

// appendFrame captures the current frame into the running recording.
func (m *Viewer) appendFrame() {
	if m.recID == 0 {
		return
	}
	ms := time.Since(m.recStart).Milliseconds()
	//nolint:errcheck // Best-effort capture, the demo keeps running regardless
	m.store.AppendFrame(m.recID, m.recSeq, ms, device.EncodeFrame(m.frame))
	m.recSeq++
}

// stopRecording marks the recording finished. Safe to call twice.
func (m *Viewer) stopRecording() {
	if m.recID == 0 {
		return
	}
	//nolint:errcheck // Best-effort, the stream stays replayable either way
	m.store.FinishRecording(m.recID)
	m.recID = 0
}

// saveSnapshot writes the current frame as plain text to a file.
func (m *Viewer) saveSnapshot() {
	saveFrameText(m.demo.ID(), m.frame, m.opts.Table)
}

// saveFrameText dumps one frame as plain text under ~/.vgasim/screenshots.
func saveFrameText(id string, cells []uint16, table *[256]rune) {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".vgasim", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", id, timestamp))

	//nolint:errcheck // Best-effort save, the demo continues regardless
	os.WriteFile(path, []byte(PlainFrame(cells, table)), 0o600)
}

// View renders the framed device memory with a status line.
func (m Viewer) View() string {
	if m.quitting {
		return ""
	}

	status := fmt.Sprintf("%s  tick %d", m.demo.Title(), m.tick)
	if m.recID != 0 {
		status += "  REC"
	}
	if m.paused {
		status += "  PAUSED"
	}
	if m.done {
		status += "  done"
	}

	controls := "p: pause  r: restart  ctrl+s: snapshot  q: quit"
	if m.inSession {
		controls += "  b: menu"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		statusStyle.Render(status),
		screenStyle.Render(RenderFrame(m.frame, m.opts.Table)),
		statusStyle.Render(controls),
	)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

// IsQuitting returns true if user requested to quit entirely.
func (m Viewer) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the session menu.
func (m Viewer) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the viewer for one demo and blocks until the user quits.
func Run(demo registry.Demo, dev Device, store *storage.Store, opts Options) error {
	model := NewViewer(demo, dev, store, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
