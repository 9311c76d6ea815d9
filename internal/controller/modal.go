package controller

import (
	"log/slog"

	"github.com/Veraticus/spice-ledger/internal/view"
)

// Modal owns the open/closed lifecycle of one dialog. It starts closed.
type Modal struct {
	app     App
	element ModalElement
	actions map[view.Action]func()
	open    bool
}

// NewModal binds a controller to element.
func NewModal(app App, element ModalElement) (*Modal, error) {
	if isNil(element) {
		return nil, ErrNoElement
	}
	if isNil(app) {
		return nil, ErrNoApp
	}

	m := &Modal{app: app, element: element}
	m.actions = map[view.Action]func(){
		view.ActionDismissModal: m.Close,
	}
	element.SetVisible(false)
	return m, nil
}

// Name returns the registry name of the dialog.
func (m *Modal) Name() string {
	return m.element.ModalID()
}

// IsOpen reports the current visibility.
func (m *Modal) IsOpen() bool {
	return m.open
}

// Click handles a button activated anywhere inside the dialog.
func (m *Modal) Click(b *view.Button) {
	if b == nil {
		return
	}
	if handler, ok := m.actions[b.Action]; ok {
		handler()
	}
}

// Open shows the dialog. The income and expense dialogs also ask for a
// forms refresh when an account is selected, so their account lists are
// current.
func (m *Modal) Open() {
	m.open = true
	m.element.SetVisible(true)

	name := m.Name()
	if (name == ModalNewIncome || name == ModalNewExpense) && lastSelectedID(m.app) != "" {
		slog.Debug("Refreshing forms for modal", "modal", name)
		m.app.UpdateForms()
	}
}

// Close hides the dialog.
func (m *Modal) Close() {
	m.open = false
	m.element.SetVisible(false)
}
