package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Focus  key.Binding

	// Ledger actions
	RemoveTransaction key.Binding
	RemoveAccount     key.Binding
	NewIncome         key.Binding
	NewExpense        key.Binding
	NewAccount        key.Binding
	Refresh           key.Binding

	// Dialogs
	Dismiss    key.Binding
	Submit     key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	NextOption key.Binding
	PrevOption key.Binding
	Confirm    key.Binding
	Decline    key.Binding

	// Application
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "open account"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "switch pane"),
		),

		RemoveTransaction: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete transaction"),
		),
		RemoveAccount: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete account"),
		),
		NewIncome: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "new income"),
		),
		NewExpense: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "new expense"),
		),
		NewAccount: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "new account"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),

		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "save"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("Shift+Tab", "previous field"),
		),
		NextOption: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next account"),
		),
		PrevOption: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous account"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yes"),
		),
		Decline: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "no"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.NewIncome, k.NewExpense, k.NewAccount, k.Quit}
}

// FullHelp returns all key bindings grouped by area.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Focus},
		{k.NewIncome, k.NewExpense, k.NewAccount, k.Refresh},
		{k.RemoveTransaction, k.RemoveAccount},
		{k.Quit},
	}
}

// DialogHelp returns the bindings active inside a form dialog.
func (k KeyMap) DialogHelp() []key.Binding {
	return []key.Binding{k.NextField, k.NextOption, k.Submit, k.Dismiss}
}
