// Package testing provides test utilities for TUI components.
package testing

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Driver feeds messages to a model and runs the callbacks a transport has
// queued, all on the test goroutine.
type Driver struct {
	Model     tea.Model
	callbacks chan func()
	Output    string
	Updates   int
}

// NewDriver wraps model. callbacks is the channel the model's transport
// dispatches onto.
func NewDriver(model tea.Model, callbacks chan func()) *Driver {
	d := &Driver{Model: model, callbacks: callbacks}
	d.Output = model.View()
	return d
}

// Send delivers msg and re-renders.
func (d *Driver) Send(msg tea.Msg) *Driver {
	d.Model, _ = d.Model.Update(msg)
	d.Updates++
	d.Output = d.Model.View()
	return d
}

// SendAll delivers every message of seq in order.
func (d *Driver) SendAll(seq *InputSequence) *Driver {
	for _, msg := range seq.Messages() {
		d.Send(msg)
	}
	return d
}

// Settle runs queued callbacks until the channel is empty. wrap turns each
// callback into the model's own message type.
func (d *Driver) Settle(wrap func(fn func()) tea.Msg) int {
	n := 0
	for {
		select {
		case fn := <-d.callbacks:
			d.Send(wrap(fn))
			n++
		default:
			return n
		}
	}
}

// Plain returns the last output without ANSI escapes.
func (d *Driver) Plain() string {
	return StripANSI(d.Output)
}

// Lines returns the plain output split by newlines.
func (d *Driver) Lines() []string {
	return strings.Split(d.Plain(), "\n")
}
