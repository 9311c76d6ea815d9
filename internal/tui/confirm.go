package tui

import "github.com/Veraticus/spice-ledger/internal/controller"

// confirmDialog is the terminal's confirmation port. It holds at most one
// question; the Update loop answers it when the user presses y or n.
type confirmDialog struct {
	answer func(bool)
	prompt string
}

var _ controller.Confirmer = (*confirmDialog)(nil)

// Confirm implements controller.Confirmer. A question still waiting is
// declined before the new one replaces it.
func (d *confirmDialog) Confirm(prompt string, answer func(bool)) {
	if d.answer != nil {
		d.resolve(false)
	}
	d.prompt = prompt
	d.answer = answer
}

func (d *confirmDialog) pending() bool {
	return d.answer != nil
}

func (d *confirmDialog) resolve(yes bool) {
	answer := d.answer
	d.answer = nil
	d.prompt = ""
	if answer != nil {
		answer(yes)
	}
}
