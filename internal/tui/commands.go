package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// waitForCallback blocks until the transport hands back the next callback.
func waitForCallback(ch <-chan func()) tea.Cmd {
	return func() tea.Msg {
		fn, ok := <-ch
		if !ok {
			return callbacksClosedMsg{}
		}
		return callbackMsg{fn: fn}
	}
}
