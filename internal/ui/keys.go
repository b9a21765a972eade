package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings of the focus screen
type KeyMap struct {
	// Mode selection
	FiveMinute key.Binding
	Pomodoro   key.Binding
	Stopwatch  key.Binding

	// Timer
	Toggle key.Binding
	Reset  key.Binding
	Solve  key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		FiveMinute: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "5 minutes"),
		),
		Pomodoro: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "pomodoro"),
		),
		Stopwatch: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "stopwatch"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "s"),
			key.WithHelp("space", "start/pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "change mode"),
		),
		Solve: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "mark solved"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// selecting switches the bindings between the mode picker and the timer
func (k *KeyMap) selecting(on bool) {
	k.FiveMinute.SetEnabled(on)
	k.Pomodoro.SetEnabled(on)
	k.Stopwatch.SetEnabled(on)
	k.Toggle.SetEnabled(!on)
	k.Reset.SetEnabled(!on)
}

// ShortHelp returns keybindings for the short help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FiveMinute, k.Pomodoro, k.Stopwatch, k.Toggle, k.Reset, k.Solve, k.Quit}
}

// FullHelp returns keybindings for the full help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FiveMinute, k.Pomodoro, k.Stopwatch},
		{k.Toggle, k.Reset, k.Solve},
		{k.Help, k.Quit},
	}
}
