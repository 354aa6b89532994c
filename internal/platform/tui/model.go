package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/obonelli/the-witcher-trial/internal/core"
	"github.com/obonelli/the-witcher-trial/internal/runner"
	"github.com/obonelli/the-witcher-trial/internal/storage"
	"github.com/obonelli/the-witcher-trial/internal/trial"
)

// maxFrame caps the clock step of a single frame. A terminal that stalls
// for longer does not burn through the round behind the player's back.
const maxFrame = 250 * time.Millisecond

// Deps are the collaborators a game screen is built from.
type Deps struct {
	Machine  *trial.Machine
	Timing   runner.Timing
	Store    *storage.Store  // Optional, runs are not saved without it
	Notifier runner.Notifier // Optional
	Logger   *log.Logger     // Optional
}

func (d Deps) runnerOptions(mode trial.Mode, cfg core.RuntimeConfig) runner.Options {
	opts := runner.Options{
		Mode:     mode,
		Seed:     cfg.Seed,
		Player:   cfg.Player,
		Timing:   d.Timing,
		Notifier: d.Notifier,
		Logger:   d.Logger,
	}
	if d.Store != nil {
		opts.Sink = d.Store
	}
	return opts
}

// GameModel is the Bubble Tea model for one trial run and its retries.
type GameModel struct {
	run        *runner.Runner
	threshold  float64
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	lastTick   time.Time
	quitting   bool
	backToMenu bool
	standalone bool // Quit the program instead of returning to a menu
}

// NewGameModel creates a game screen for a fresh run in mode.
func NewGameModel(deps Deps, mode trial.Mode, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}

	return GameModel{
		run:       runner.New(deps.Machine, deps.runnerOptions(mode, cfg)),
		threshold: deps.Machine.Tuning().EnergyEndThreshold,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init starts the run and the frame clock.
func (m GameModel) Init() tea.Cmd {
	m.run.Start()
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	cmd, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.run.Surrender()
		m.quitting = true
		return m, tea.Quit
	}

	phase := m.run.State().Phase
	switch cmd.Action {
	case core.ActionTap:
		m.run.TapSlot(cmd.Slot)
	case core.ActionPause:
		m.run.TogglePause()
	case core.ActionConfirm:
		if phase == trial.PhaseIntro {
			m.run.Start()
		}
	case core.ActionRetry:
		if phase.Terminal() {
			m.run.Retry()
		}
	case core.ActionBack:
		// Leaving mid-run counts as giving up.
		m.run.Surrender()
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
	}

	return m, nil
}

// handleTick advances the run by the wall time since the last frame.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameInterval(m.config.TickRate)
	if !m.lastTick.IsZero() {
		dt = min(now.Sub(m.lastTick), maxFrame)
	}
	m.lastTick = now

	if dt > 0 {
		m.run.Advance(dt)
	}
	return m, tickCmd(m.config.TickRate)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	return RenderGame(m.view())
}

func (m GameModel) view() GameView {
	return GameView{
		State:          m.run.State(),
		Roster:         m.run.Roster(),
		Lit:            m.run.Lit(),
		Closed:         m.run.Closed(),
		Decoys:         m.run.Decoys(),
		Countdown:      m.run.Countdown(),
		InputRemaining: m.run.InputRemaining(),
		Threshold:      m.threshold,
		Width:          m.config.ScreenW,
		Player:         m.config.Player,
	}
}

// saveScreenshot writes the current frame, without colors, to a file.
func (m GameModel) saveScreenshot() {
	dir := filepath.Join(os.Getenv("HOME"), ".trial", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("trial_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(ansi.Strip(RenderGame(m.view()))), 0o600)
}

// Runner exposes the run driven by this screen.
func (m GameModel) Runner() *runner.Runner {
	return m.run
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one trial in its own Bubble Tea program.
func Run(deps Deps, mode trial.Mode, cfg core.RuntimeConfig) error {
	model := NewGameModel(deps, mode, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
