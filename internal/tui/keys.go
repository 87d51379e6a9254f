package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Back key.Binding

	// Navigation
	Invoice   key.Binding
	Addresses key.Binding
	Prefill   key.Binding
	Settings  key.Binding

	// Actions
	Select  key.Binding
	New     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Toggle  key.Binding
	Details key.Binding
	Book    key.Binding
	Export  key.Binding
	Format  key.Binding
	Clear   key.Binding
	Mark    key.Binding

	// Movement
	Up       key.Binding
	Down     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Invoice:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "invoice")),
	Addresses: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "addresses")),
	Prefill:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prefill")),
	Settings:  key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
	Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new row")),
	Edit:      key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	Details:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "details")),
	Book:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "address book")),
	Export:    key.NewBinding(key.WithKeys("s", "ctrl+e"), key.WithHelp("s", "save invoice")),
	Format:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "format")),
	Clear:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear rows")),
	Mark:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	MoveUp:    key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
	MoveDown:  key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
}
