package controller

import (
	"log/slog"

	"github.com/Veraticus/spice-ledger/internal/api"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/request"
	"github.com/Veraticus/spice-ledger/internal/view"
)

// TransactionForm creates income or expense entries. It keeps its account
// select in sync with the current user's accounts.
type TransactionForm struct {
	app  App
	svc  Services
	form *AsyncForm

	// generation identifies the latest account-list refresh; older
	// responses are dropped.
	generation uint64
}

// NewTransactionForm binds the form and immediately starts populating the
// account list.
func NewTransactionForm(app App, element FormElement, svc Services) (*TransactionForm, error) {
	if isNil(app) {
		return nil, ErrNoApp
	}

	tf := &TransactionForm{app: app, svc: svc}
	form, err := NewAsyncForm(element, tf.create,
		WithValidator(ValidateTransaction),
		WithResultHook(tf.onResult),
	)
	if err != nil {
		return nil, err
	}
	tf.form = form

	tf.RenderAccountsList()
	return tf, nil
}

// Update refreshes the account select.
func (tf *TransactionForm) Update() {
	tf.RenderAccountsList()
}

// RenderAccountsList fetches the current user, then their accounts, and
// replaces the select options. Any failure along the way leaves the select
// untouched, and only the most recent refresh may replace the options.
func (tf *TransactionForm) RenderAccountsList() {
	tf.generation++
	gen := tf.generation

	tf.svc.Users.Current(func(err error, resp api.Response[model.User]) {
		if gen != tf.generation {
			return
		}
		if !api.OK(err, resp) {
			slog.Debug("No current user, account list not populated", "error", err)
			return
		}

		tf.svc.Accounts.List(request.Data{"user_id": resp.Data.ID}, func(err error, resp api.Response[[]model.Account]) {
			if !api.OK(err, resp) {
				return
			}
			if gen != tf.generation {
				slog.Debug("Discarding stale account list", "generation", gen, "current", tf.generation)
				return
			}

			selected := lastSelectedID(tf.app)
			opts := make([]view.Option, 0, len(resp.Data))
			for _, a := range resp.Data {
				opts = append(opts, view.Option{
					Value:    a.ID,
					Label:    a.Name,
					Selected: a.ID == selected,
				})
			}
			tf.form.Element().SetOptions(opts)
		})
	})
}

// Submit validates and sends the form.
func (tf *TransactionForm) Submit() error {
	return tf.form.Submit()
}

// LastError returns the outcome of the most recent submission.
func (tf *TransactionForm) LastError() error {
	return tf.form.LastError()
}

func (tf *TransactionForm) create(data request.Data, done func(error)) {
	tf.svc.Transactions.Create(data, func(err error, resp api.Response[model.Transaction]) {
		if err != nil {
			done(err)
			return
		}
		if !resp.Success {
			done(rejection(resp.Error))
			return
		}
		done(nil)
	})
}

func (tf *TransactionForm) onResult(err error) {
	if err != nil {
		return
	}

	tf.app.Update()
	for _, name := range []string{ModalNewIncome, ModalNewExpense} {
		if m := tf.app.Modal(name); m != nil {
			m.Close()
		}
	}
	tf.form.Element().Reset()
}
