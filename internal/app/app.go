// Package app is the application context: it owns the modal, widget, form
// and page registries and fans global refreshes out to them.
package app

import (
	"fmt"

	"github.com/Veraticus/spice-ledger/internal/controller"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/view"
)

// PageTransactions is the ledger page's registry name.
const PageTransactions = "transactions"

// ModalNames lists every dialog in display order.
var ModalNames = []string{
	controller.ModalNewIncome,
	controller.ModalNewExpense,
	controller.ModalCreateAccount,
}

type form interface {
	Update()
	Submit() error
	LastError() error
}

// Views is the retained state the host draws.
type Views struct {
	Page   *view.Page
	Modals map[string]*view.Modal
	Forms  map[string]*view.Form
}

// App implements controller.App.
type App struct {
	views   Views
	modals  map[string]*controller.Modal
	forms   map[string]form
	page    *controller.Page
	widget  *AccountsWidget
	svc     controller.Services
	started bool
}

var _ controller.App = (*App)(nil)

// Config holds what the application context is built from.
type Config struct {
	Confirmer   controller.Confirmer
	Services    controller.Services
	PageOptions []controller.PageOption
}

// New builds every controller. Forms start loading their account lists
// immediately; call Start to load the accounts widget.
func New(cfg Config) (*App, error) {
	a := &App{
		svc:    cfg.Services,
		modals: make(map[string]*controller.Modal, len(ModalNames)),
		forms:  make(map[string]form, len(ModalNames)),
		views: Views{
			Page:   view.NewPage(controller.TitlePlaceholder),
			Modals: make(map[string]*view.Modal, len(ModalNames)),
			Forms:  make(map[string]*view.Form, len(ModalNames)),
		},
	}

	for _, name := range ModalNames {
		el := view.NewModal(name)
		m, err := controller.NewModal(a, el)
		if err != nil {
			return nil, fmt.Errorf("failed to create modal %s: %w", name, err)
		}
		a.views.Modals[name] = el
		a.modals[name] = m
	}

	page, err := controller.NewPage(a, a.views.Page, a.svc, cfg.Confirmer, cfg.PageOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactions page: %w", err)
	}
	a.page = page

	a.widget = NewAccountsWidget(a.svc, func(id string) {
		a.page.Render(controller.RenderOptions{AccountID: id})
	})

	for name, kind := range map[string]model.TransactionType{
		controller.ModalNewIncome:  model.TypeIncome,
		controller.ModalNewExpense: model.TypeExpense,
	} {
		el := newTransactionFormView(kind)
		f, err := controller.NewTransactionForm(a, el, a.svc)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s form: %w", name, err)
		}
		a.views.Forms[name] = el
		a.forms[name] = f
	}

	accountEl := &view.Form{Fields: []view.Field{{Name: "name", Label: "Name"}}}
	af, err := controller.NewAccountForm(a, accountEl, a.svc)
	if err != nil {
		return nil, fmt.Errorf("failed to create account form: %w", err)
	}
	a.views.Forms[controller.ModalCreateAccount] = accountEl
	a.forms[controller.ModalCreateAccount] = af

	return a, nil
}

func newTransactionFormView(kind model.TransactionType) *view.Form {
	return &view.Form{
		Fields: []view.Field{
			{Name: "name", Label: "Name"},
			{Name: "sum", Label: "Sum"},
		},
		SelectName: "account_id",
		Hidden:     map[string]string{"type": string(kind)},
	}
}

// Start loads the accounts widget. Calling it again is a no-op.
func (a *App) Start() {
	if a.started {
		return
	}
	a.started = true
	a.UpdateWidgets()
}

// Views returns the retained view state.
func (a *App) Views() Views {
	return a.views
}

// Modal implements controller.App.
func (a *App) Modal(name string) *controller.Modal {
	return a.modals[name]
}

// Widget implements controller.App.
func (a *App) Widget(name string) controller.Widget {
	if name == controller.WidgetAccounts {
		return a.widget
	}
	return nil
}

// Accounts returns the accounts widget.
func (a *App) Accounts() *AccountsWidget {
	return a.widget
}

// Page returns the ledger page controller.
func (a *App) Page() *controller.Page {
	return a.page
}

// Submit sends the form hosted by the named modal.
func (a *App) Submit(name string) error {
	f, ok := a.forms[name]
	if !ok {
		return fmt.Errorf("unknown form %q", name)
	}
	return f.Submit()
}

// FormError returns the last submission outcome of the named form.
func (a *App) FormError(name string) error {
	if f, ok := a.forms[name]; ok {
		return f.LastError()
	}
	return nil
}

// Update refreshes widgets, then pages, then forms.
func (a *App) Update() {
	a.UpdateWidgets()
	a.UpdatePages()
	a.UpdateForms()
}

// UpdateWidgets implements controller.App.
func (a *App) UpdateWidgets() {
	a.widget.Update()
}

// UpdatePages re-renders the ledger page.
func (a *App) UpdatePages() {
	a.page.Update()
}

// UpdateForms implements controller.App.
func (a *App) UpdateForms() {
	for _, name := range ModalNames {
		a.forms[name].Update()
	}
}
