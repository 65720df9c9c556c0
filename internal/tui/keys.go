package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	esc      key.Binding
	tab      key.Binding
	backtab  key.Binding
	quit     key.Binding
	about    key.Binding
	copy     key.Binding
	thumbsUp key.Binding
	thumbsDn key.Binding
	pageUp   key.Binding
	pageDown key.Binding
}

var keys = keyMap{
	up:       key.NewBinding(key.WithKeys("up", "k")),
	down:     key.NewBinding(key.WithKeys("down", "j")),
	enter:    key.NewBinding(key.WithKeys("enter")),
	esc:      key.NewBinding(key.WithKeys("esc")),
	tab:      key.NewBinding(key.WithKeys("tab")),
	backtab:  key.NewBinding(key.WithKeys("shift+tab")),
	quit:     key.NewBinding(key.WithKeys("ctrl+c")),
	about:    key.NewBinding(key.WithKeys("v")),
	copy:     key.NewBinding(key.WithKeys("ctrl+y")),
	thumbsUp: key.NewBinding(key.WithKeys("ctrl+u")),
	thumbsDn: key.NewBinding(key.WithKeys("ctrl+d")),
	pageUp:   key.NewBinding(key.WithKeys("pgup")),
	pageDown: key.NewBinding(key.WithKeys("pgdown")),
}
