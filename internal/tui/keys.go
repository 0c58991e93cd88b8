// Package tui provides the Bubble Tea minesweeper interface.
package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Move    key.Binding
	Reveal  key.Binding
	Flag    key.Binding
	Forfeit key.Binding
	Reset   key.Binding
	Leave   key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k")),
		Down:  key.NewBinding(key.WithKeys("down", "j")),
		Left:  key.NewBinding(key.WithKeys("left", "h")),
		Right: key.NewBinding(key.WithKeys("right", "l")),
		// Help-only entry standing in for the four moves.
		Move: key.NewBinding(
			key.WithKeys("up", "down", "left", "right"),
			key.WithHelp("arrows", "move pointer"),
		),
		Reveal: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("␣", "uncover location"),
		),
		Flag: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "flag mine"),
		),
		Forfeit: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "give up game"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset game"),
		),
		Leave: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave game"),
		),
		Quit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reveal, k.Flag, k.Leave}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Reset, k.Forfeit, k.Reveal, k.Flag, k.Move, k.Leave}}
}
