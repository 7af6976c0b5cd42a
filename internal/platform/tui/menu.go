package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridsnake/internal/autoplay"
)

// MenuSelection holds the player's choice from the difficulty menu.
type MenuSelection struct {
	Difficulty autoplay.Difficulty
	Autoplay   bool
}

// MenuModel lets the player choose a difficulty and whether autoplay starts on.
type MenuModel struct {
	presets    []autoplay.Preset
	highScores map[string]int
	cursor     int
	autoplay   bool
	width      int
	keyMapper  *KeyMapper
	selected   *MenuSelection
	quitting   bool
}

// NewMenuModel creates a menu over presets. The cursor starts on initial.
func NewMenuModel(presets []autoplay.Preset, initial MenuSelection, highScores map[string]int, width int) MenuModel {
	m := MenuModel{
		presets:    presets,
		highScores: highScores,
		autoplay:   initial.Autoplay,
		width:      width,
		keyMapper:  NewKeyMapper(),
	}
	for i, p := range presets {
		if p.Name == initial.Difficulty {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}

	case MenuActionToggle:
		m.autoplay = !m.autoplay

	case MenuActionSelect:
		if len(m.presets) > 0 {
			m.selected = &MenuSelection{
				Difficulty: m.presets[m.cursor].Name,
				Autoplay:   m.autoplay,
			}
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("S N A K E", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, p := range m.presets {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-8s %4dms  %3.0f%% greedy  best %d",
			cursor, p.Name, p.TickInterval.Milliseconds(), p.CommitProbability*100, m.highScores[string(p.Name)])
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	mode := "off"
	if m.autoplay {
		mode = "on"
	}
	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Autoplay: %s", mode), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Enter: Play  |  Tab: Autoplay  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if none was made.
func (m MenuModel) Selected() *MenuSelection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// RunMenu shows the difficulty menu and returns the selection, or nil if the
// player quit.
func RunMenu(presets []autoplay.Preset, initial MenuSelection, highScores map[string]int, width int) (*MenuSelection, error) {
	p := tea.NewProgram(
		NewMenuModel(presets, initial, highScores, width),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.IsQuitting() {
		return nil, nil
	}
	return m.Selected(), nil
}
