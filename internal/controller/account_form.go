package controller

import (
	"github.com/Veraticus/spice-ledger/internal/api"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/request"
)

// AccountForm creates accounts for the current user.
type AccountForm struct {
	app  App
	svc  Services
	form *AsyncForm
}

// NewAccountForm binds the account creation form.
func NewAccountForm(app App, element FormElement, svc Services) (*AccountForm, error) {
	if isNil(app) {
		return nil, ErrNoApp
	}

	af := &AccountForm{app: app, svc: svc}
	form, err := NewAsyncForm(element, af.create,
		WithValidator(ValidateAccount),
		WithResultHook(af.onResult),
	)
	if err != nil {
		return nil, err
	}
	af.form = form
	return af, nil
}

// Update is a no-op; the account form has no remote-backed fields.
func (af *AccountForm) Update() {}

// Submit validates and sends the form.
func (af *AccountForm) Submit() error {
	return af.form.Submit()
}

// LastError returns the outcome of the most recent submission.
func (af *AccountForm) LastError() error {
	return af.form.LastError()
}

func (af *AccountForm) create(data request.Data, done func(error)) {
	af.svc.Accounts.Create(data, func(err error, resp api.Response[model.Account]) {
		switch {
		case err != nil:
			done(err)
		case !resp.Success:
			done(rejection(resp.Error))
		default:
			done(nil)
		}
	})
}

func (af *AccountForm) onResult(err error) {
	if err != nil {
		return
	}

	af.app.UpdateWidgets()
	if m := af.app.Modal(ModalCreateAccount); m != nil {
		m.Close()
	}
	af.form.Element().Reset()
}
