package testing

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyPress types the runes of s as one key event.
func KeyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// Key builds a special key event such as tea.KeyEnter.
func Key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// Shorthands for the keys the ledger binds.
func KeyEnter() tea.KeyMsg { return Key(tea.KeyEnter) }
func KeyEsc() tea.KeyMsg   { return Key(tea.KeyEsc) }
func KeyTab() tea.KeyMsg   { return Key(tea.KeyTab) }
func KeyUp() tea.KeyMsg    { return Key(tea.KeyUp) }
func KeyDown() tea.KeyMsg  { return Key(tea.KeyDown) }
func KeyCtrlC() tea.KeyMsg { return Key(tea.KeyCtrlC) }

// WindowSize creates a window size message.
func WindowSize(width, height int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: width, Height: height}
}

// InputSequence is an ordered list of messages to replay.
type InputSequence struct {
	msgs []tea.Msg
}

// NewInputSequence starts a sequence with msgs.
func NewInputSequence(msgs ...tea.Msg) *InputSequence {
	return &InputSequence{msgs: msgs}
}

// Add appends msg.
func (s *InputSequence) Add(msg tea.Msg) *InputSequence {
	s.msgs = append(s.msgs, msg)
	return s
}

// Type appends one key event per rune of text.
func (s *InputSequence) Type(text string) *InputSequence {
	for _, r := range text {
		s.msgs = append(s.msgs, KeyPress(string(r)))
	}
	return s
}

// Messages returns the sequence.
func (s *InputSequence) Messages() []tea.Msg {
	return s.msgs
}
