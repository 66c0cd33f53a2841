package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cellmachine/internal/core"
	"github.com/vovakirdan/cellmachine/internal/session"
	"github.com/vovakirdan/cellmachine/internal/storage"
)

// statusTTL is how many frames a status message stays on screen.
const statusTTL = 180

// Model is the Bubble Tea model for the simulator screen.
type Model struct {
	sess       *session.Session
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	fps        *FPSViewer
	inputFrame core.InputFrame
	started    time.Time

	status      string
	statusTicks int

	quitting bool // ctrl+c: leave the program
	back     bool // esc: return to the title screen
	runSaved bool
}

// NewModel creates a new Bubble Tea model for the given session.
func NewModel(sess *session.Session, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	m := Model{
		sess:       sess,
		store:      store,
		logger:     logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		fps:        NewFPSViewer(),
		inputFrame: core.NewInputFrame(),
		started:    time.Now(),
	}
	m.resize(cfg.ScreenW, cfg.ScreenH)
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.logger.Info("session started", "board", m.sess.BoardID(),
		"size", fmt.Sprintf("%dx%d", m.sess.Grid().Width(), m.sess.Grid().Height()))
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
			m.setStatus("screenshot failed")
		} else {
			m.logger.Info("screenshot saved", "path", path)
			m.setStatus("saved " + path)
		}
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.config.ScreenW, m.config.ScreenH)
		return m, nil
	}

	if isQuit := m.keyMapper.MapKeyToFrame(msg, &m.inputFrame); isQuit {
		m.quitting = true
		m.saveRun()
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events. The board keeps its state;
// only the layout changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

// resize lays the screen out above the help bar.
func (m *Model) resize(w, h int) {
	m.config.ScreenW = w
	m.config.ScreenH = h

	boardH := h - m.helpHeight()
	if boardH < 0 {
		boardH = 0
	}
	if m.screen == nil {
		m.screen = core.NewScreen(w, boardH)
	} else {
		m.screen.Resize(w, boardH)
	}
	m.sess.Resize(w, boardH)
}

// helpHeight is the number of rows the help bar takes.
func (m *Model) helpHeight() int {
	if !m.help.ShowAll {
		return 1
	}
	rows := 0
	for _, col := range m.keyMapper.Keys().FullHelp() {
		rows = max(rows, len(col))
	}
	return rows
}

// handleTick runs one simulator frame.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	m.fps.Tick(time.Time(msg))

	result := m.sess.Step(m.inputFrame)
	m.inputFrame.Clear()

	if m.statusTicks > 0 {
		m.statusTicks--
		if m.statusTicks == 0 {
			m.status = ""
		}
	}

	if result.Quit {
		m.back = true
		m.saveRun()
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusTicks = statusTTL
}

// saveRun records the session in the run history once.
func (m *Model) saveRun() {
	if m.runSaved || m.store == nil {
		return
	}
	m.runSaved = true

	rec := m.sess.Record(storage.SourceInteractive, time.Since(m.started))
	if rec.Frames == 0 {
		return
	}
	saved, err := m.store.SaveRun(rec)
	if err != nil {
		m.logger.Error("cannot save run", "err", err)
		return
	}
	m.logger.Info("run saved", "id", saved.ID, "steps", saved.Steps, "frames", saved.Frames)
}

// saveScreenshot saves the current screen as plain text.
func (m *Model) saveScreenshot() (string, error) {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".cellmachine", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.sess.BoardID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// draw renders the session, FPS viewer and status line into the screen buffer.
func (m *Model) draw() {
	m.screen.Clear()
	m.sess.Render(m.screen)

	row := session.HUDHeight - 1
	m.fps.Draw(m.screen, 0, row, m.config.TickRate)
	if m.status != "" {
		x := m.screen.Width() - len([]rune(m.status))
		if x < 0 {
			x = 0
		}
		m.screen.DrawTextColor(x, row, m.status, core.ColorWarning)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.draw()
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keyMapper.Keys())
}

// WentBack reports whether the user left with Esc rather than quitting.
func (m Model) WentBack() bool {
	return m.back
}

// Run starts the simulator screen. It returns true when the user asked
// to go back to the title screen.
func Run(sess *session.Session, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (back bool, err error) {
	model := NewModel(sess, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return m.WentBack(), nil
}
