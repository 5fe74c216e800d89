package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ballmaze/internal/maze"
)

// Theme is the background/foreground pair the screen is painted with.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Foreground lipgloss.Color
}

// Background tints, dark and light variants.
var (
	themeDark  = Theme{Name: "dark", Background: lipgloss.Color("234"), Foreground: lipgloss.Color("252")}
	themeLight = Theme{Name: "light", Background: lipgloss.Color("255"), Foreground: lipgloss.Color("235")}

	themeWinDark   = Theme{Name: "win-dark", Background: lipgloss.Color("22"), Foreground: lipgloss.Color("252")}
	themeWinLight  = Theme{Name: "win-light", Background: lipgloss.Color("157"), Foreground: lipgloss.Color("235")}
	themeLoseDark  = Theme{Name: "lose-dark", Background: lipgloss.Color("52"), Foreground: lipgloss.Color("252")}
	themeLoseLight = Theme{Name: "lose-light", Background: lipgloss.Color("217"), Foreground: lipgloss.Color("235")}
)

// ThemeFor picks the theme for a screen mode at the given light level.
// Below darkThreshold the dark variant is used.
func ThemeFor(mode Mode, light, darkThreshold float64) Theme {
	dark := light < darkThreshold
	switch mode {
	case ModeWin:
		if dark {
			return themeWinDark
		}
		return themeWinLight
	case ModeLose:
		if dark {
			return themeLoseDark
		}
		return themeLoseLight
	default:
		if dark {
			return themeDark
		}
		return themeLight
	}
}

// Mode is the screen the renderer shows.
type Mode int

const (
	ModeStart Mode = iota
	ModeInGame
	ModeLose
	ModeWin
)

func (m Mode) String() string {
	switch m {
	case ModeStart:
		return "start"
	case ModeInGame:
		return "in-game"
	case ModeLose:
		return "lose"
	case ModeWin:
		return "win"
	default:
		return "unknown"
	}
}

// ModeOf derives the screen mode from a snapshot.
func ModeOf(s maze.Snapshot) Mode {
	switch s.Phase {
	case maze.PhaseRunning:
		return ModeInGame
	case maze.PhaseFinished:
		if s.Outcome == maze.OutcomeWon {
			return ModeWin
		}
		return ModeLose
	default:
		return ModeStart
	}
}
