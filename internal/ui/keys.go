package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	ToggleDark key.Binding
	Refresh    key.Binding
	Escape     key.Binding

	// Navigation
	Up             key.Binding
	Down           key.Binding
	Open           key.Binding
	Info           key.Binding
	NextCollection key.Binding
	PrevCollection key.Binding

	// Document
	ToggleTOC     key.Binding
	ToggleEdit    key.Binding
	ToggleSidebar key.Binding
	PageUp        key.Binding
	PageDown      key.Binding

	// Toasts
	DismissToast key.Binding
	ToastAction  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Help"),
		),
		ToggleDark: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Toggle dark mode"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open document"),
		),
		Info: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Document info"),
		),
		NextCollection: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next collection"),
		),
		PrevCollection: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous collection"),
		),

		ToggleTOC: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Table of contents"),
		),
		ToggleEdit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit mode"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Sidebar"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Scroll down"),
		),

		DismissToast: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Dismiss toast"),
		),
		ToastAction: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Toast action"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.ToggleTOC, k.ToggleSidebar, k.ToggleDark, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Info, k.NextCollection, k.PrevCollection, k.Escape},
		{k.ToggleTOC, k.ToggleEdit, k.ToggleSidebar, k.PageUp, k.PageDown},
		{k.DismissToast, k.ToastAction, k.Refresh, k.ToggleDark, k.Help, k.Quit},
	}
}
