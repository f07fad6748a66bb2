package ui

import "github.com/charmbracelet/bubbles/key"

type replayKeys struct {
	Prev  key.Binding
	Next  key.Binding
	First key.Binding
	Last  key.Binding
	Play  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultReplayKeys() replayKeys {
	return replayKeys{
		Prev:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "back")),
		Next:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "forward")),
		First: key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "first")),
		Last:  key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "last")),
		Play:  key.NewBinding(key.WithKeys(" ", "space", "p"), key.WithHelp("space", "play/pause")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k replayKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Play, k.Quit, k.Help}
}

func (k replayKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.First, k.Last},
		{k.Play, k.Help, k.Quit},
	}
}
