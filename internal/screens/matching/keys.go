package matching

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Switch  key.Binding
	Select  key.Binding
	Mark    key.Binding
	Drop    key.Binding
	Remove  key.Binding
	Submit  key.Binding
	Reset   key.Binding
	Restart key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Move")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↑↓", "Move")),
	Switch:  key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"), key.WithHelp("Tab", "Column")),
	Select:  key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("Enter", "Pick")),
	Mark:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "Drag")),
	Drop:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "Drop")),
	Remove:  key.NewBinding(key.WithKeys("x", "backspace", "delete"), key.WithHelp("x", "Unpair")),
	Submit:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Check")),
	Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Reset")),
	Restart: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "New game")),
}
