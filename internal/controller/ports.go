// Package controller coordinates the ledger's asynchronous flows: modal
// lifecycles, the transaction creation forms and the ledger page. Every
// method here runs on the single UI loop; remote calls resume through
// callbacks on that same loop.
package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/Veraticus/spice-ledger/internal/api"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/request"
	"github.com/Veraticus/spice-ledger/internal/view"
)

// Construction errors. They signal an integration defect, not a runtime
// condition.
var (
	ErrNoElement   = errors.New("element does not exist")
	ErrNoConfirmer = errors.New("confirmer is required")
	ErrNoApp       = errors.New("application context is required")
)

// Operational errors handed to result hooks.
var (
	ErrRejected    = errors.New("request rejected")
	ErrInvalidForm = errors.New("invalid form")
)

// Registry names shared with the application context.
const (
	ModalNewIncome     = "newIncome"
	ModalNewExpense    = "newExpense"
	ModalCreateAccount = "createAccount"
	WidgetAccounts     = "accounts"
)

// App is the slice of the application context controllers may use.
type App interface {
	Modal(name string) *Modal
	Widget(name string) Widget
	Update()
	UpdateWidgets()
	UpdateForms()
}

// Widget exposes shared widget state.
type Widget interface {
	LastSelectedID() string
}

// Confirmer asks the user a yes/no question. The answer may arrive later,
// but always on the UI loop.
type Confirmer interface {
	Confirm(prompt string, answer func(yes bool))
}

// ConfirmFunc adapts a synchronous question to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(prompt string, answer func(bool)) {
	answer(f(prompt))
}

// ModalElement is the dialog a Modal drives.
type ModalElement interface {
	ModalID() string
	SetVisible(visible bool)
}

// FormElement is the form an AsyncForm reads and resets.
type FormElement interface {
	Values() map[string]string
	SetOptions(opts []view.Option)
	Reset()
}

// PageElement is the ledger page surface.
type PageElement interface {
	SetTitle(title string)
	SetRemoveAccountID(id string)
	ClearRows()
	PrependRow(txn model.Transaction)
}

// AccountService is the remote account entity.
type AccountService interface {
	List(params request.Data, cb api.Callback[[]model.Account])
	Get(id string, cb api.Callback[model.Account])
	Create(data request.Data, cb api.Callback[model.Account])
	Remove(id string, cb api.Callback[json.RawMessage])
}

// TransactionService is the remote transaction entity.
type TransactionService interface {
	List(params request.Data, cb api.Callback[[]model.Transaction])
	Create(data request.Data, cb api.Callback[model.Transaction])
	Remove(id string, cb api.Callback[json.RawMessage])
}

// UserService is the remote user entity.
type UserService interface {
	Current(cb api.Callback[model.User])
}

// Services bundles the remote entities a controller may call.
type Services struct {
	Accounts     AccountService
	Transactions TransactionService
	Users        UserService
}

// ServicesFrom adapts an api.Client.
func ServicesFrom(c api.Client) Services {
	return Services{
		Accounts:     c.Accounts,
		Transactions: c.Transactions,
		Users:        c.Users,
	}
}

func lastSelectedID(app App) string {
	w := app.Widget(WidgetAccounts)
	if isNil(w) {
		return ""
	}
	return w.LastSelectedID()
}

func rejection(msg string) error {
	if msg == "" {
		return ErrRejected
	}
	return fmt.Errorf("%w: %s", ErrRejected, msg)
}

// isNil catches typed nil pointers hidden inside interfaces.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
