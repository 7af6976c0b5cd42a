package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// Theme assigns a lipgloss style to each board color role. Roles without an
// entry render unstyled.
type Theme map[core.Color]lipgloss.Style

// DefaultTheme is the colored board palette.
func DefaultTheme() Theme {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Theme{
		core.ColorHUD:    fg("15").Bold(true),
		core.ColorBorder: fg("245"),
		core.ColorFood:   fg("9"),
		core.ColorBody:   fg("2"),
		core.ColorHead:   fg("10").Bold(true),
		core.ColorCrash:  fg("9").Bold(true),
		core.ColorStatus: fg("11"),
	}
}

// MonoTheme renders every role as plain text.
func MonoTheme() Theme {
	return Theme{}
}

// ThemeFromEnv returns MonoTheme when NO_COLOR is set and DefaultTheme otherwise.
func ThemeFromEnv() Theme {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return MonoTheme()
	}
	return DefaultTheme()
}

// Render turns s into styled text. Adjacent cells sharing a role are styled
// as one span to keep escape sequences down.
func (t Theme) Render(s *core.Screen) string {
	var out strings.Builder
	out.Grow(s.Width()*s.Height()*2 + s.Height())

	var span strings.Builder
	flush := func(role core.Color) {
		if span.Len() == 0 {
			return
		}
		if style, ok := t[role]; ok {
			out.WriteString(style.Render(span.String()))
		} else {
			out.WriteString(span.String())
		}
		span.Reset()
	}

	for y := range s.Height() {
		if y > 0 {
			out.WriteByte('\n')
		}
		role := s.Cell(0, y).Color
		for x := range s.Width() {
			c := s.Cell(x, y)
			if c.Color != role {
				flush(role)
				role = c.Color
			}
			span.WriteRune(c.Rune)
		}
		flush(role)
	}
	return out.String()
}
