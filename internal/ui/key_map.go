package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	playAll key.Binding
	next    key.Binding
	prev    key.Binding
	stop    key.Binding
	sort    key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		playAll: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play all")),
		next:    key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n", "next")),
		prev:    key.NewBinding(key.WithKeys("b", "left"), key.WithHelp("b", "previous")),
		stop:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		sort:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.playAll, k.sort},
		{k.next, k.prev, k.stop},
		{k.quit},
	}
}
