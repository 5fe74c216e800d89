package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ballmaze/internal/config"
	"github.com/vovakirdan/ballmaze/internal/core"
	"github.com/vovakirdan/ballmaze/internal/maze"
	"github.com/vovakirdan/ballmaze/internal/storage"
)

// stopTimeout bounds how long the UI waits for the simulation loop to exit.
const stopTimeout = time.Second

// Options configures the game screen.
type Options struct {
	Config        config.BallMazeConfig
	Store         *storage.Store // Run journal, nil disables journaling
	Logger        *log.Logger
	EngineOptions []maze.Option
	FramePeriod   time.Duration // Redraw cadence, defaults to the tick period
}

// runSavedMsg reports the result of journaling a finished run.
type runSavedMsg struct {
	id  string
	err error
}

// Model is the Bubble Tea model of the game screen.
type Model struct {
	opts   Options
	engine *maze.Engine
	keys   KeyMap
	help   help.Model
	tilt   *KeyboardTilt
	screen *core.Screen
	proj   Projector

	lampOn      bool
	journaled   bool // Current finished run was handed to the journal
	pendingSize bool // Terminal resized during a run
	status      string
	quitting    bool
	width       int
	height      int
}

// NewModel creates the game screen for a terminal of cols x rows cells.
func NewModel(opts Options, cols, rows int) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.FramePeriod <= 0 {
		opts.FramePeriod = opts.Config.Timing.TickPeriod
	}

	cfg := opts.Config
	m := Model{
		opts:   opts,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		tilt:   NewKeyboardTilt(cfg.Input.KeyboardTilt, cfg.Input.Release),
		screen: core.NewScreen(cols, playRows(rows)),
		proj:   Projector{CellW: cfg.Surface.CellWidth, CellH: cfg.Surface.CellHeight},
		lampOn: true,
		width:  cols,
		height: rows,
	}

	engine, err := m.newEngine(cols, playRows(rows))
	if err != nil {
		return Model{}, err
	}
	m.engine = engine
	m.engine.OnLightLevel(m.lightLevel())
	return m, nil
}

// playRows returns the rows left for the playfield below the help line.
func playRows(rows int) int {
	return core.Max(rows-1, 1)
}

func (m Model) newEngine(cols, rows int) (*maze.Engine, error) {
	opts := append([]maze.Option{maze.WithLogger(m.opts.Logger)}, m.opts.EngineOptions...)
	return maze.NewEngine(m.opts.Config, cols*m.proj.CellW, rows*m.proj.CellH, opts...)
}

// Engine returns the engine driven by the model.
func (m Model) Engine() *maze.Engine {
	return m.engine
}

// Init starts the redraw and sensor loops.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		frameCmd(m.opts.FramePeriod),
		sensorCmd(m.opts.Config.Input.SamplePeriod),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleFrame()

	case SensorMsg:
		m.engine.OnAccelerometerSample(m.tilt.Sample(time.Time(msg)))
		return m, sensorCmd(m.opts.Config.Input.SamplePeriod)

	case runSavedMsg:
		if msg.err != nil {
			m.opts.Logger.Error("journal run", "err", msg.err)
			m.status = "journal error"
		} else {
			m.opts.Logger.Info("run journaled", "id", msg.id)
			m.status = "saved run " + shortID(msg.id)
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.stopEngine()
		m.quitting = true
		return m, tea.Quit

	case core.ActionTiltLeft:
		m.tilt.Left(time.Now())

	case core.ActionTiltRight:
		m.tilt.Right(time.Now())

	case core.ActionStart:
		if m.engine.Phase() == maze.PhaseRunning {
			return m, nil
		}
		save := m.journal()
		m.applyPendingSize()
		m.tilt.Level()
		if err := m.engine.Start(); err != nil {
			m.opts.Logger.Error("start run", "err", err)
			m.status = err.Error()
			return m, save
		}
		m.journaled = false
		m.status = ""
		return m, save

	case core.ActionBack:
		if m.engine.Phase() != maze.PhaseIdle {
			save := m.journal()
			m.stopEngine()
			m.applyPendingSize()
			return m, save
		}

	case core.ActionLight:
		m.lampOn = !m.lampOn
		m.engine.OnLightLevel(m.lightLevel())

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handleResize resizes the playfield. The world is rebuilt for the new
// size once no run is active.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width == m.width && msg.Height == m.height {
		return m, nil
	}
	m.width, m.height = msg.Width, msg.Height
	m.screen.Resize(msg.Width, playRows(msg.Height))
	m.help.Width = msg.Width
	m.pendingSize = true

	if m.engine.Phase() == maze.PhaseIdle {
		m.applyPendingSize()
	}
	return m, nil
}

// handleFrame hands a finished run to the journal and keeps redrawing.
func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	save := m.journal()
	return m, tea.Batch(frameCmd(m.opts.FramePeriod), save)
}

// journal returns a command saving the finished run, once per run.
// Nil when there is nothing to save.
func (m *Model) journal() tea.Cmd {
	if m.journaled || m.engine.Phase() != maze.PhaseFinished {
		return nil
	}
	m.journaled = true

	rec, ok := m.engine.LastRun()
	if !ok || m.opts.Store == nil {
		return nil
	}
	return saveRunCmd(m.opts.Store, rec)
}

func saveRunCmd(store *storage.Store, rec maze.RunRecord) tea.Cmd {
	return func() tea.Msg {
		id, err := store.SaveRun(rec)
		return runSavedMsg{id: id, err: err}
	}
}

// applyPendingSize rebuilds the engine for the current terminal size.
// Must only be called while no run is active.
func (m *Model) applyPendingSize() {
	if !m.pendingSize {
		return
	}
	m.stopEngine()

	engine, err := m.newEngine(m.width, playRows(m.height))
	if err != nil {
		m.opts.Logger.Warn("keeping previous world size", "cols", m.width, "rows", m.height, "err", err)
		m.status = "terminal too small"
		return
	}
	m.engine = engine
	m.engine.OnLightLevel(m.lightLevel())
	m.pendingSize = false
	m.opts.Logger.Debug("world resized", "width", engine.Rules().Geometry.ScreenWidth,
		"height", engine.Rules().Geometry.ScreenHeight)
}

func (m *Model) stopEngine() {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := m.engine.Stop(ctx); err != nil {
		m.opts.Logger.Error("stop engine", "err", err)
	}
}

func (m Model) lightLevel() float64 {
	if m.lampOn {
		return m.opts.Config.Theme.LampOn
	}
	return m.opts.Config.Theme.LampOff
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.engine.CurrentSnapshot()
	mode := Draw(m.screen, snap, m.proj, m.opts.Config.Level.Floors)
	if m.status != "" {
		m.screen.DrawText(m.screen.Width()-len([]rune(m.status))-1, m.screen.Height()-1, m.status, core.ColorGray)
	}

	theme := ThemeFor(mode, snap.Light, m.opts.Config.Theme.DarkThreshold)
	board := RenderScreen(m.screen, theme)

	helpView := m.help.View(m.keys)
	if extra := lipgloss.Height(helpView) - 1; extra > 0 {
		lines := strings.Split(board, "\n")
		if extra < len(lines) {
			board = strings.Join(lines[:len(lines)-extra], "\n")
		}
	}
	return board + "\n" + helpView
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(opts Options, cols, rows int) error {
	model, err := NewModel(opts, cols, rows)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.stopEngine()
	}
	return err
}
