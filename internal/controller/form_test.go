package controller

import (
	"errors"
	"net/http"
	"testing"

	"github.com/Veraticus/spice-ledger/internal/api"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/request"
	"github.com/Veraticus/spice-ledger/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransactionElement(kind model.TransactionType) *view.Form {
	return &view.Form{
		Fields:     []view.Field{{Name: "name", Label: "Name"}, {Name: "sum", Label: "Sum"}},
		SelectName: "account_id",
		Hidden:     map[string]string{"type": string(kind)},
	}
}

type formHarness struct {
	app  *fakeApp
	fake *request.FakeTransport
	el   *view.Form
	form *TransactionForm
}

func newFormHarness(t *testing.T) *formHarness {
	t.Helper()
	h := &formHarness{app: newFakeApp(), el: newTransactionElement(model.TypeIncome)}
	var svc Services
	h.fake, svc = newServices()

	for _, name := range []string{ModalNewIncome, ModalNewExpense} {
		m, err := NewModal(h.app, view.NewModal(name))
		require.NoError(t, err)
		h.app.modals[name] = m
	}

	form, err := NewTransactionForm(h.app, h.el, svc)
	require.NoError(t, err)
	h.form = form
	return h
}

func (h *formHarness) populate(t *testing.T, accounts ...model.Account) {
	t.Helper()
	respond(t, h.fake.Last(http.MethodGet, api.UserURL+"/current"), model.User{ID: "u1", Name: "Paul"})
	respond(t, h.fake.Last(http.MethodGet, api.AccountURL), accounts)
}

func TestNewTransactionForm_RequiresElement(t *testing.T) {
	_, svc := newServices()

	_, err := NewTransactionForm(newFakeApp(), nil, svc)
	assert.ErrorIs(t, err, ErrNoElement)

	var missing *view.Form
	_, err = NewTransactionForm(newFakeApp(), missing, svc)
	assert.ErrorIs(t, err, ErrNoElement)
}

func TestTransactionForm_PopulatesAccounts(t *testing.T) {
	h := newFormHarness(t)
	h.app.widget.selected = "a2"

	userCall := h.fake.Last(http.MethodGet, api.UserURL+"/current")
	require.NotNil(t, userCall, "construction requests the current user")
	respond(t, userCall, model.User{ID: "u1"})

	listCall := h.fake.Last(http.MethodGet, api.AccountURL)
	require.NotNil(t, listCall)
	assert.Equal(t, request.Data{"user_id": "u1"}, listCall.Data)

	respond(t, listCall, []model.Account{{ID: "a1", Name: "Cash"}, {ID: "a2", Name: "Card"}})

	assert.Equal(t, []view.Option{
		{Value: "a1", Label: "Cash"},
		{Value: "a2", Label: "Card", Selected: true},
	}, h.el.Options)
	assert.Equal(t, "a2", h.el.Selected)
}

func TestTransactionForm_ReplacesOptionsOnUpdate(t *testing.T) {
	h := newFormHarness(t)
	h.populate(t, model.Account{ID: "a1", Name: "Cash"}, model.Account{ID: "a2", Name: "Card"})

	h.form.Update()
	h.populate(t, model.Account{ID: "a3", Name: "Savings"})

	require.Len(t, h.el.Options, 1)
	assert.Equal(t, "a3", h.el.Options[0].Value)
	assert.False(t, h.el.Options[0].Selected, "previous selection no longer present")
}

func TestTransactionForm_LateListIsDropped(t *testing.T) {
	h := newFormHarness(t)
	respond(t, h.fake.Last(http.MethodGet, api.UserURL+"/current"), model.User{ID: "u1"})
	first := h.fake.Last(http.MethodGet, api.AccountURL)

	h.form.Update()
	h.populate(t, model.Account{ID: "a2", Name: "Card"})

	// The older list still contains an account deleted since.
	respond(t, first, []model.Account{{ID: "a1", Name: "Cash"}, {ID: "a2", Name: "Card"}})

	require.Len(t, h.el.Options, 1)
	assert.Equal(t, "a2", h.el.Options[0].Value)
}

func TestTransactionForm_LateUserIsDropped(t *testing.T) {
	h := newFormHarness(t)
	first := h.fake.Last(http.MethodGet, api.UserURL+"/current")

	h.form.Update()
	h.populate(t, model.Account{ID: "a2", Name: "Card"})
	lists := len(h.fake.Find(http.MethodGet, api.AccountURL))

	respond(t, first, model.User{ID: "u1"})

	assert.Len(t, h.fake.Find(http.MethodGet, api.AccountURL), lists, "superseded refresh lists nothing")
	require.Len(t, h.el.Options, 1)
	assert.Equal(t, "a2", h.el.Options[0].Value)
}

func TestTransactionForm_NoUserNoAccounts(t *testing.T) {
	tests := []struct {
		complete func(t *testing.T, call *request.FakeCall)
		name     string
	}{
		{name: "transport failure", complete: func(_ *testing.T, c *request.FakeCall) { c.Fail() }},
		{name: "not logged in", complete: func(t *testing.T, c *request.FakeCall) { reject(t, c, "not authorized") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newFormHarness(t)
			h.el.SetOptions([]view.Option{{Value: "old", Label: "Old"}})

			tt.complete(t, h.fake.Last(http.MethodGet, api.UserURL+"/current"))

			assert.Nil(t, h.fake.Last(http.MethodGet, api.AccountURL))
			assert.Equal(t, "old", h.el.Options[0].Value)
		})
	}
}

func TestTransactionForm_SubmitSuccess(t *testing.T) {
	h := newFormHarness(t)
	h.populate(t, model.Account{ID: "a1", Name: "Cash"})
	h.app.modals[ModalNewIncome].Open()
	h.app.modals[ModalNewExpense].Open()

	h.el.SetField("name", "Salary")
	h.el.SetField("sum", "1500.00")
	require.NoError(t, h.form.Submit())

	call := h.fake.Last(http.MethodPut, api.TransactionURL)
	require.NotNil(t, call)
	assert.Equal(t, request.Data{
		"name":       "Salary",
		"sum":        "1500.00",
		"account_id": "a1",
		"type":       "income",
	}, call.Data)

	respond(t, call, model.Transaction{ID: "t1"})

	assert.Equal(t, 1, h.app.updates)
	assert.False(t, h.app.modals[ModalNewIncome].IsOpen())
	assert.False(t, h.app.modals[ModalNewExpense].IsOpen())
	assert.Empty(t, h.el.Field("name"))
	assert.Empty(t, h.el.Field("sum"))
	assert.NoError(t, h.form.LastError())
}

func TestTransactionForm_SubmitFailureGivesNoFeedback(t *testing.T) {
	tests := []struct {
		complete func(t *testing.T, call *request.FakeCall)
		wantErr  error
		name     string
	}{
		{
			name:     "business failure",
			complete: func(t *testing.T, c *request.FakeCall) { reject(t, c, "account closed") },
			wantErr:  ErrRejected,
		},
		{
			name:     "transport failure",
			complete: func(_ *testing.T, c *request.FakeCall) { c.Fail() },
			wantErr:  request.ErrTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newFormHarness(t)
			h.populate(t, model.Account{ID: "a1", Name: "Cash"})
			h.app.modals[ModalNewIncome].Open()

			h.el.SetField("name", "Salary")
			h.el.SetField("sum", "10")
			require.NoError(t, h.form.Submit())
			tt.complete(t, h.fake.Last(http.MethodPut, api.TransactionURL))

			assert.Zero(t, h.app.updates)
			assert.True(t, h.app.modals[ModalNewIncome].IsOpen())
			assert.Equal(t, "Salary", h.el.Field("name"), "fields are kept")
			assert.ErrorIs(t, h.form.LastError(), tt.wantErr)
		})
	}
}

func TestTransactionForm_InvalidInputNotSent(t *testing.T) {
	h := newFormHarness(t)
	h.populate(t, model.Account{ID: "a1", Name: "Cash"})

	h.el.SetField("name", "Salary")
	h.el.SetField("sum", "-5")

	err := h.form.Submit()
	assert.ErrorIs(t, err, ErrInvalidForm)
	assert.Nil(t, h.fake.Last(http.MethodPut, api.TransactionURL))
}

func TestAccountForm_Submit(t *testing.T) {
	app := newFakeApp()
	fake, svc := newServices()
	modal, err := NewModal(app, view.NewModal(ModalCreateAccount))
	require.NoError(t, err)
	app.modals[ModalCreateAccount] = modal

	el := &view.Form{Fields: []view.Field{{Name: "name"}}}
	form, err := NewAccountForm(app, el, svc)
	require.NoError(t, err)
	assert.Empty(t, fake.Calls(), "account form fetches nothing up front")

	assert.ErrorIs(t, form.Submit(), ErrInvalidForm)

	modal.Open()
	el.SetField("name", "Savings")
	require.NoError(t, form.Submit())

	call := fake.Last(http.MethodPut, api.AccountURL)
	require.NotNil(t, call)
	assert.Equal(t, request.Data{"name": "Savings"}, call.Data)

	respond(t, call, model.Account{ID: "a9", Name: "Savings"})
	assert.Equal(t, 1, app.widgetUpdates)
	assert.False(t, modal.IsOpen())
	assert.Empty(t, el.Field("name"))
}

func TestAsyncForm_Pipeline(t *testing.T) {
	el := &view.Form{Fields: []view.Field{{Name: "name", Value: "x"}}}

	var (
		done    func(error)
		results []error
	)
	form, err := NewAsyncForm(el,
		func(data request.Data, d func(error)) {
			assert.Equal(t, request.Data{"name": "x"}, data)
			done = d
		},
		WithResultHook(func(err error) { results = append(results, err) }),
	)
	require.NoError(t, err)

	require.NoError(t, form.Submit())
	assert.Equal(t, 1, form.Pending())

	boom := errors.New("boom")
	done(boom)
	assert.Zero(t, form.Pending())
	assert.Equal(t, []error{boom}, results)
	assert.ErrorIs(t, form.LastError(), boom)

	_, err = NewAsyncForm(el, nil)
	assert.Error(t, err)
	_, err = NewAsyncForm(nil, func(request.Data, func(error)) {})
	assert.ErrorIs(t, err, ErrNoElement)
}

func TestValidateTransaction(t *testing.T) {
	valid := func() request.Data {
		return request.Data{"type": "expense", "name": "Lunch", "sum": "12.50", "account_id": "a1"}
	}

	tests := []struct {
		mutate  func(d request.Data)
		name    string
		wantErr bool
	}{
		{name: "valid", mutate: func(request.Data) {}},
		{name: "unknown type", mutate: func(d request.Data) { d["type"] = "transfer" }, wantErr: true},
		{name: "missing name", mutate: func(d request.Data) { d["name"] = "  " }, wantErr: true},
		{name: "missing account", mutate: func(d request.Data) { delete(d, "account_id") }, wantErr: true},
		{name: "non numeric sum", mutate: func(d request.Data) { d["sum"] = "ten" }, wantErr: true},
		{name: "zero sum", mutate: func(d request.Data) { d["sum"] = "0" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid()
			tt.mutate(d)
			err := ValidateTransaction(d)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidForm)
				return
			}
			assert.NoError(t, err)
		})
	}
}
