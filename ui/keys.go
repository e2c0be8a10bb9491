package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PlayPause key.Binding
	Prev      key.Binding
	Next      key.Binding
	SlowDown  key.Binding
	SpeedUp   key.Binding
	Restart   key.Binding
	Copy      key.Binding
	Preview   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "back"),
		),
		Next: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "forward"),
		),
		SlowDown: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "slower"),
		),
		SpeedUp: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "faster"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy chunk"),
		),
		Preview: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "preview"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.Prev, k.Next, k.SlowDown, k.SpeedUp, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.Prev, k.Next},
		{k.SlowDown, k.SpeedUp, k.Restart},
		{k.Copy, k.Preview, k.Quit},
	}
}
