package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/vgasim/internal/config"
	"github.com/vovakirdan/vgasim/internal/device"
	"github.com/vovakirdan/vgasim/internal/registry"
	"github.com/vovakirdan/vgasim/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.vgasim/host_key.
	HostKeyPath string

	// DBPath is the path to the recordings database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Record captures frames of every demo that sessions run.
	Record bool

	// Display carries the writer colors, refresh rate and charset
	// applied to every session.
	Display config.Config
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.vgasim/recordings.db",
		IdleTimeout: 30 * time.Minute,
		Display:     config.DefaultConfig(),
	}
}

// SSHServer wraps a Wish SSH server that serves the demo toolkit.
type SSHServer struct {
	config SSHServerConfig
	opts   Options // digested display settings, user filled per session
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "vgasim-ssh",
	})

	opts, err := OptionsFromConfig(cfg.Display, "")
	if err != nil {
		return nil, fmt.Errorf("invalid display config: %w", err)
	}
	opts.Record = cfg.Record

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open recordings database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		opts:   opts,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".vgasim", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	wishOpts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(wishOpts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session. Every
// session gets its own simulated adapter, so demos never share memory.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	opts := s.opts
	opts.User = sshSession.User()

	model := NewSessionModel(s.store, opts, pty.Window.Width, pty.Window.Height)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModel manages the full session flow: the demo menu, the viewer,
// the recordings browser and replay. This is the top-level model used for
// SSH sessions. Exactly one of the screen pointers is non-nil at a time;
// when all are nil the menu is active.
type SessionModel struct {
	store      *storage.Store
	opts       Options
	width      int
	height     int
	menu       MenuModel
	viewer     *Viewer
	recordings *RecordingsModel
	replay     *ReplayModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, opts Options, width, height int) SessionModel {
	return SessionModel{
		store:  store,
		opts:   opts,
		width:  width,
		height: height,
		menu:   NewMenuModel(),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Track window size globally so new screens open at the right size
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch {
	case m.viewer != nil:
		return m.updateViewer(msg)
	case m.replay != nil:
		return m.updateReplay(msg)
	case m.recordings != nil:
		return m.updateRecordings(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when the demo menu is active.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	// Check if user quit
	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// Check if the recordings browser was requested. The menu's own quit
	// command is dropped; the session keeps running.
	if m.menu.WantsRecordings() {
		browser := NewRecordingsModel(m.store, m.width, m.height)
		m.recordings = &browser
		m.menu = NewMenuModel()
		return m, m.recordings.Init()
	}

	// Check if a demo was selected
	if selected := m.menu.Selected(); selected != nil {
		demo, err := registry.Create(selected.DemoID)
		if err != nil {
			// Shouldn't happen since the menu only shows registered demos
			return m, nil
		}

		viewer := NewViewer(demo, device.NewSim(), m.store, m.opts)
		viewer.inSession = true
		viewer.width = m.width
		viewer.height = m.height
		m.viewer = &viewer
		m.menu = NewMenuModel()

		return m, m.viewer.Init()
	}

	return m, cmd
}

// updateViewer handles updates while a demo is running.
func (m SessionModel) updateViewer(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.viewer.Update(msg)
	if viewer, ok := newModel.(Viewer); ok {
		m.viewer = &viewer
	}

	// Check if user quit the demo (back to menu)
	if m.viewer.BackToMenu() {
		m.viewer = nil
		m.menu = NewMenuModel()
		return m, m.menu.Init()
	}

	// Check if user quit entirely
	if m.viewer.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateRecordings handles updates while the recordings browser is active.
func (m SessionModel) updateRecordings(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.recordings.Update(msg)
	if browser, ok := newModel.(RecordingsModel); ok {
		m.recordings = &browser
	}

	if m.recordings.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// Check if a recording was picked for replay. The browser's quit
	// command is dropped either way.
	if id := m.recordings.ReplayID(); id != 0 {
		replay, err := NewReplayModel(m.store, id, m.opts)
		if err != nil {
			// The recording may be gone or unreadable; reload the browser.
			browser := NewRecordingsModel(m.store, m.width, m.height)
			m.recordings = &browser
			return m, m.recordings.Init()
		}
		replay.inSession = true
		replay.width = m.width
		replay.height = m.height
		m.replay = &replay
		m.recordings = nil
		return m, m.replay.Init()
	}

	if m.recordings.IsGoingBack() {
		m.recordings = nil
		m.menu = NewMenuModel()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateReplay handles updates while a replay is playing.
func (m SessionModel) updateReplay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.replay.Update(msg)
	if replay, ok := newModel.(ReplayModel); ok {
		m.replay = &replay
	}

	if m.replay.BackToBrowser() {
		m.replay = nil
		browser := NewRecordingsModel(m.store, m.width, m.height)
		m.recordings = &browser
		return m, m.recordings.Init()
	}

	if m.replay.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.viewer != nil:
		return m.viewer.View()
	case m.replay != nil:
		return m.replay.View()
	case m.recordings != nil:
		return m.recordings.View()
	default:
		return m.menu.View()
	}
}
