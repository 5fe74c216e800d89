package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ballmaze/internal/core"
)

// KeyMap defines the key bindings of the game screen.
type KeyMap struct {
	TiltLeft  key.Binding
	TiltRight key.Binding
	Start     key.Binding
	Back      key.Binding
	Light     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.TiltLeft, k.TiltRight, k.Start, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TiltLeft, k.TiltRight},
		{k.Start, k.Back},
		{k.Light, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		TiltLeft: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "tilt left"),
		),
		TiltRight: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "tilt right"),
		),
		Start: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "abandon run"),
		),
		Light: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle lamp"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a game action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.TiltLeft):
		return core.ActionTiltLeft
	case key.Matches(msg, k.TiltRight):
		return core.ActionTiltRight
	case key.Matches(msg, k.Start):
		return core.ActionStart
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Light):
		return core.ActionLight
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	}
	return core.ActionNone
}
