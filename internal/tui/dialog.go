package tui

import (
	"github.com/Veraticus/spice-ledger/internal/view"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formDialog edits one modal's form. Text inputs mirror the form's fields
// and write every keystroke back.
type formDialog struct {
	err       error
	form      *view.Form
	name      string
	inputs    []textinput.Model
	focus     int
	submitted bool
}

func newFormDialog(name string, form *view.Form) *formDialog {
	d := &formDialog{name: name, form: form}
	for _, fld := range form.Fields {
		in := textinput.New()
		in.Placeholder = fld.Label
		in.CharLimit = 64
		in.SetValue(fld.Value)
		d.inputs = append(d.inputs, in)
	}
	d.setFocus(0)
	return d
}

func (d *formDialog) setFocus(i int) {
	if len(d.inputs) == 0 {
		return
	}
	i = (i + len(d.inputs)) % len(d.inputs)
	for j := range d.inputs {
		if j == i {
			d.inputs[j].Focus()
		} else {
			d.inputs[j].Blur()
		}
	}
	d.focus = i
}

func (d *formDialog) next() { d.setFocus(d.focus + 1) }
func (d *formDialog) prev() { d.setFocus(d.focus - 1) }

// cycleOption moves the account select by delta, wrapping around.
func (d *formDialog) cycleOption(delta int) {
	n := len(d.form.Options)
	if n == 0 {
		return
	}
	cur := 0
	for i, o := range d.form.Options {
		if o.Value == d.form.Selected {
			cur = i
			break
		}
	}
	d.form.Select(d.form.Options[((cur+delta)%n+n)%n].Value)
}

func (d *formDialog) update(msg tea.Msg) tea.Cmd {
	if len(d.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	d.inputs[d.focus], cmd = d.inputs[d.focus].Update(msg)
	d.form.SetField(d.form.Fields[d.focus].Name, d.inputs[d.focus].Value())
	return cmd
}

// pull copies field values set elsewhere, such as a reset, into the inputs.
func (d *formDialog) pull() {
	for i, fld := range d.form.Fields {
		if i < len(d.inputs) && d.inputs[i].Value() != fld.Value {
			d.inputs[i].SetValue(fld.Value)
		}
	}
}

func (d *formDialog) selectedLabel() string {
	for _, o := range d.form.Options {
		if o.Value == d.form.Selected {
			return o.Label
		}
	}
	return ""
}
