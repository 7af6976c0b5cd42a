// Package tui provides the Bubble Tea front end for gridsnake.
// It owns the tick cadence, maps keys to session input and draws snapshots.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/session"
)

// TickMsg asks the model to advance the session by one tick.
type TickMsg time.Time

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model is the Bubble Tea model for a snake session.
// Bubble Tea's event loop is the only caller into the session.
type Model struct {
	session   *session.Session
	screen    *core.Screen
	keyMapper *KeyMapper
	theme     Theme
	help      help.Model
	highScore int
	newSeed   func() int64
	quitting  bool
}

// NewModel creates a model driving s. highScore is the best recorded score
// for the session's difficulty.
func NewModel(s *session.Session, highScore int) Model {
	snap := s.Snapshot()
	w, h := ScreenSize(snap.Columns, snap.Rows)

	return Model{
		session:   s,
		screen:    core.NewScreen(w, h),
		keyMapper: NewKeyMapper(),
		theme:     ThemeFromEnv(),
		help:      help.New(),
		highScore: highScore,
		newSeed:   func() int64 { return time.Now().UnixNano() },
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.session.TickInterval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey forwards input to the session as soon as it arrives.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action.IsDirectional() {
		if d, ok := DirectionFor(action); ok {
			m.session.SetDirection(d)
		}
		return m, nil
	}

	switch action {
	case core.ActionPause:
		m.session.TogglePause()
	case core.ActionAutoplay:
		m.session.ToggleAutoplay()
	case core.ActionRestart:
		if m.session.Result().Finished() {
			m.highScore = max(m.highScore, m.session.Result().Score)
			m.session.Restart(m.newSeed())
		}
	}

	return m, nil
}

// handleResize widens the screen buffer so the board can be centered.
// The board itself keeps its size for the whole session.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	snap := m.session.Snapshot()
	w, h := ScreenSize(snap.Columns, snap.Rows)
	m.screen.Resize(max(w, msg.Width), h)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the simulation and schedules the next tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.session.Step()
	return m, tickCmd(m.session.TickInterval())
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawBoard(m.screen, m.session.Snapshot(), HUD{
		Difficulty: string(m.session.Preset().Name),
		Autoplay:   m.session.Autoplay(),
		HighScore:  m.highScore,
	})

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return m.theme.Render(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// Run starts the Bubble Tea program for s and blocks until the player quits.
func Run(s *session.Session, highScore int) error {
	p := tea.NewProgram(
		NewModel(s, highScore),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
