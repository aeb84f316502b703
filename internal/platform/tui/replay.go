package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/vgasim/internal/device"
	"github.com/vovakirdan/vgasim/internal/storage"
)

// ReplayModel is the Bubble Tea model that plays a recorded frame stream
// back at its capture pace. Frames are decoded up front so playback never
// touches the store.
type ReplayModel struct {
	info      storage.RecordingInfo
	stamps    []int64    // capture offset of each frame, in ms
	frames    [][]uint16 // decoded cell grids
	idx       int
	opts      Options
	keyMapper *KeyMapper

	elapsed  int64     // accumulated playback time in ms
	lastTick time.Time // previous tick, zero before the first one

	width  int
	height int

	paused        bool
	quitting      bool
	backToBrowser bool
	inSession     bool // back returns to the session browser instead of quitting
}

// NewReplayModel loads and decodes a recording for playback.
func NewReplayModel(store *storage.Store, id int64, opts Options) (ReplayModel, error) {
	info, err := store.Recording(id)
	if err != nil {
		return ReplayModel{}, fmt.Errorf("tui: cannot load recording %d: %w", id, err)
	}
	if info == nil {
		return ReplayModel{}, fmt.Errorf("tui: recording %d not found", id)
	}

	raw, err := store.Frames(id)
	if err != nil {
		return ReplayModel{}, fmt.Errorf("tui: cannot load frames for recording %d: %w", id, err)
	}
	if len(raw) == 0 {
		return ReplayModel{}, fmt.Errorf("tui: recording %d has no frames", id)
	}

	stamps := make([]int64, len(raw))
	frames := make([][]uint16, len(raw))
	for i, f := range raw {
		cells, err := device.DecodeFrame(f.Cells)
		if err != nil {
			return ReplayModel{}, fmt.Errorf("tui: cannot decode frame %d of recording %d: %w", f.Seq, id, err)
		}
		stamps[i] = f.CapturedMS
		frames[i] = cells
	}

	return ReplayModel{
		info:      *info,
		stamps:    stamps,
		frames:    frames,
		opts:      opts,
		keyMapper: NewKeyMapper(),
	}, nil
}

// done reports whether playback has reached past the last frame.
func (m ReplayModel) done() bool {
	return m.idx == len(m.frames)-1 && m.elapsed >= m.stamps[m.idx]
}

// Init starts the playback tick loop.
func (m ReplayModel) Init() tea.Cmd {
	return tickCmd(m.opts.FPS)
}

// Update handles messages and advances playback.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m ReplayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKey(msg) {
	case ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case ActionPause:
		m.paused = !m.paused

	case ActionRestart:
		m.idx = 0
		m.elapsed = 0

	case ActionSnapshot:
		// Replays can be snapshotted just like live demos.
		saveFrameText(m.info.DemoID, m.frames[m.idx], m.opts.Table)

	case ActionBack:
		if m.inSession {
			m.backToBrowser = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleTick accumulates playback time and advances to the frame due at it.
func (m ReplayModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if !m.lastTick.IsZero() && !m.paused && !m.done() {
		m.elapsed += now.Sub(m.lastTick).Milliseconds()
		for m.idx+1 < len(m.frames) && m.stamps[m.idx+1] <= m.elapsed {
			m.idx++
		}
	}
	m.lastTick = now
	return m, tickCmd(m.opts.FPS)
}

// View renders the framed recorded frame with a status line.
func (m ReplayModel) View() string {
	if m.quitting {
		return ""
	}

	status := fmt.Sprintf("replay %s #%d  frame %d/%d",
		m.info.DemoID, m.info.ID, m.idx+1, len(m.frames))
	if m.paused {
		status += "  PAUSED"
	}
	if m.done() {
		status += "  done"
	}

	controls := "p: pause  r: restart  ctrl+s: snapshot  q: quit"
	if m.inSession {
		controls += "  b: back"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		statusStyle.Render(status),
		screenStyle.Render(RenderFrame(m.frames[m.idx], m.opts.Table)),
		statusStyle.Render(controls),
	)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

// IsQuitting returns true if user requested to quit entirely.
func (m ReplayModel) IsQuitting() bool {
	return m.quitting
}

// BackToBrowser returns true if user requested to return to the browser.
func (m ReplayModel) BackToBrowser() bool {
	return m.backToBrowser
}

// RunReplay plays one recording and blocks until the user quits.
func RunReplay(store *storage.Store, id int64, opts Options) error {
	model, err := NewReplayModel(store, id, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
