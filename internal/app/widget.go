package app

import (
	"log/slog"

	"github.com/Veraticus/spice-ledger/internal/api"
	"github.com/Veraticus/spice-ledger/internal/controller"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/request"
)

// AccountsWidget lists the current user's accounts and remembers which one
// was picked last.
type AccountsWidget struct {
	svc          controller.Services
	onSelect     func(id string)
	lastSelectID string
	accounts     []model.Account
	loaded       bool
}

// NewAccountsWidget creates the widget. onSelect runs after every Select.
func NewAccountsWidget(svc controller.Services, onSelect func(id string)) *AccountsWidget {
	if onSelect == nil {
		onSelect = func(string) {}
	}
	return &AccountsWidget{svc: svc, onSelect: onSelect}
}

// LastSelectedID implements controller.Widget.
func (w *AccountsWidget) LastSelectedID() string {
	return w.lastSelectID
}

// Accounts returns the accounts from the last successful refresh.
func (w *AccountsWidget) Accounts() []model.Account {
	return w.accounts
}

// Loaded reports whether a refresh has succeeded at least once.
func (w *AccountsWidget) Loaded() bool {
	return w.loaded
}

// Update refetches the user's accounts. A selection that no longer exists
// is dropped.
func (w *AccountsWidget) Update() {
	w.svc.Users.Current(func(err error, resp api.Response[model.User]) {
		if !api.OK(err, resp) {
			slog.Debug("Accounts widget has no current user", "error", err)
			return
		}

		w.svc.Accounts.List(request.Data{"user_id": resp.Data.ID}, func(err error, resp api.Response[[]model.Account]) {
			if !api.OK(err, resp) {
				return
			}
			w.accounts = resp.Data
			w.loaded = true
			if _, ok := model.AccountByID(w.accounts, w.lastSelectID); !ok {
				w.lastSelectID = ""
			}
		})
	})
}

// Select marks id as the active account.
func (w *AccountsWidget) Select(id string) {
	if id == "" {
		return
	}
	w.lastSelectID = id
	w.onSelect(id)
}
