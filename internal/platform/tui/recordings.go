package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/vgasim/internal/storage"
)

// Recordings browser layout constants
const (
	browserMinWidth = 70  // Minimum width for full column layout
	maxRecordings   = 100 // Max recordings to load
)

// RecordingsKeyMap defines the key bindings for the recordings browser.
type RecordingsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Replay   key.Binding
	Delete   key.Binding
	NextDemo key.Binding
	PrevDemo key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Replay, k.Delete, k.NextDemo, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RecordingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Replay, k.Delete},
		{k.NextDemo, k.PrevDemo, k.Back, k.Quit},
	}
}

// DefaultRecordingsKeyMap returns default key bindings.
func DefaultRecordingsKeyMap() RecordingsKeyMap {
	return RecordingsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Replay: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d", "delete"),
		),
		NextDemo: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next demo"),
		),
		PrevDemo: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev demo"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RecordingsModel is the Bubble Tea model for the recordings browser.
type RecordingsModel struct {
	store     *storage.Store
	all       []storage.RecordingInfo // Everything loaded from the store
	recs      []storage.RecordingInfo // Rows currently shown, after the demo filter
	filters   []string                // "" (all demos) plus each demo ID present
	filter    string                  // Active demo filter, "" shows everything
	table     table.Model
	help      help.Model
	keys      RecordingsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool  // True if user pressed back (not quit)
	replayID  int64 // Set when user picks a recording to replay
}

// NewRecordingsModel creates a new recordings browser model.
func NewRecordingsModel(store *storage.Store, width, height int) RecordingsModel {
	keys := DefaultRecordingsKeyMap()
	h := help.New()
	h.ShowAll = false

	m := RecordingsModel{
		store:  store,
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}

	m.table = m.createTable()
	m.loadRecordings()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *RecordingsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Demo", Width: 12},
		{Title: "User", Width: 10},
		{Title: "Frames", Width: 7},
		{Title: "Length", Width: 8},
		{Title: "Started", Width: 14},
	}

	// Shrink the attribution column on narrow terminals
	if m.width < browserMinWidth {
		columns[2].Width = 6
		columns[5].Width = 12
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.height-8), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRecordings reloads the recording list from the store and rebuilds
// the demo filter cycle.
func (m *RecordingsModel) loadRecordings() {
	if m.store == nil {
		m.all = nil
	} else {
		recs, err := m.store.Recordings(maxRecordings)
		if err != nil {
			m.all = nil
		} else {
			m.all = recs
		}
	}

	// The filter cycle is "" (all) followed by each demo seen, in list order.
	m.filters = []string{""}
	seen := make(map[string]bool)
	for _, r := range m.all {
		if !seen[r.DemoID] {
			seen[r.DemoID] = true
			m.filters = append(m.filters, r.DemoID)
		}
	}
	if m.filter != "" && !seen[m.filter] {
		m.filter = ""
	}

	m.applyFilter()
}

// applyFilter rebuilds the visible rows for the active demo filter.
func (m *RecordingsModel) applyFilter() {
	if m.filter == "" {
		m.recs = m.all
	} else {
		m.recs = nil
		for _, r := range m.all {
			if r.DemoID == m.filter {
				m.recs = append(m.recs, r)
			}
		}
	}
	m.updateTableRows()
}

// cycleFilter advances the demo filter by delta (+1 next, -1 previous).
func (m *RecordingsModel) cycleFilter(delta int) {
	idx := 0
	for i, f := range m.filters {
		if f == m.filter {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(m.filters)) % len(m.filters)
	m.filter = m.filters[idx]
	m.applyFilter()
}

// updateTableRows updates the table with the visible recordings.
func (m *RecordingsModel) updateTableRows() {
	rows := make([]table.Row, len(m.recs))
	for i, r := range m.recs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			r.DemoID,
			r.User,
			fmt.Sprintf("%d", r.Frames),
			formatDuration(r.DurationMS),
			r.StartedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// formatDuration renders a capture length in seconds.
func formatDuration(ms int64) string {
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}

// selectedRecording returns the recording under the table cursor.
func (m RecordingsModel) selectedRecording() *storage.RecordingInfo {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.recs) {
		return nil
	}
	return &m.recs[idx]
}

// Init initializes the recordings browser model.
func (m RecordingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the recordings browser.
func (m RecordingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Replay):
			if r := m.selectedRecording(); r != nil {
				m.replayID = r.ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if r := m.selectedRecording(); r != nil && m.store != nil {
				//nolint:errcheck // Best-effort delete, the reload shows the truth
				m.store.DeleteRecording(r.ID)
				m.loadRecordings()
			}
			return m, nil

		case key.Matches(msg, m.keys.NextDemo):
			m.cycleFilter(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevDemo):
			m.cycleFilter(-1)
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the recordings browser.
func (m RecordingsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "RECORDINGS"
	if m.filter != "" {
		title = fmt.Sprintf("RECORDINGS - %s", m.filter)
	}

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	// Table
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m RecordingsModel) renderTableContent() string {
	if len(m.recs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No recordings yet.\nRun a demo with recording on to capture one!")
	}

	return m.table.View()
}

// ReplayID returns the recording chosen for replay, or 0 if none.
func (m RecordingsModel) ReplayID() int64 {
	return m.replayID
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RecordingsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RecordingsModel) IsQuitting() bool {
	return m.quitting
}

// RecordingsResult holds the result of running the recordings browser.
type RecordingsResult struct {
	ReplayID int64 // Recording to replay, 0 for none
	GoBack   bool
	Quit     bool
}

// RunRecordings runs the recordings browser screen.
func RunRecordings(store *storage.Store, width, height int) (RecordingsResult, error) {
	model := NewRecordingsModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return RecordingsResult{}, err
	}

	m, ok := finalModel.(RecordingsModel)
	if !ok {
		return RecordingsResult{Quit: true}, nil
	}

	result := RecordingsResult{
		GoBack: m.IsGoingBack(),
		Quit:   m.IsQuitting(),
	}
	if id := m.ReplayID(); id != 0 {
		result.ReplayID = id
	}

	return result, nil
}
