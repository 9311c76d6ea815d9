// Package apptest serves the remote entity contract from memory for tests
// that drive the controllers through a request.FakeTransport.
package apptest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/Veraticus/spice-ledger/internal/api"
	"github.com/Veraticus/spice-ledger/internal/controller"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/request"
	"github.com/shopspring/decimal"
)

// Backend answers recorded requests from in-memory tables.
type Backend struct {
	Fake *request.FakeTransport
	// Deliver runs each completion. It defaults to running it in place;
	// hosts with their own loop can queue it instead.
	Deliver      func(fn func())
	User         model.User
	Accounts     []model.Account
	Transactions []model.Transaction
	seq          int
}

// New returns a backend seeded with one user, two accounts and two
// transactions on the first account.
func New() *Backend {
	return &Backend{
		Fake:    &request.FakeTransport{},
		Deliver: func(fn func()) { fn() },
		User:    model.User{ID: "u1", Name: "Paul"},
		Accounts: []model.Account{
			{ID: "a1", Name: "Cash", UserID: "u1"},
			{ID: "a2", Name: "Card", UserID: "u1"},
		},
		Transactions: []model.Transaction{
			{ID: "t1", AccountID: "a1", Name: "Salary", Type: model.TypeIncome, Sum: decimal.NewFromInt(100)},
			{ID: "t2", AccountID: "a1", Name: "Coffee", Type: model.TypeExpense, Sum: decimal.NewFromInt(3)},
		},
	}
}

// Services returns accessors bound to the backend's transport.
func (b *Backend) Services() controller.Services {
	return controller.ServicesFrom(api.NewClient(b.Fake))
}

// Answer completes every pending request once and returns how many it
// answered. Requests issued by the completions stay pending.
func (b *Backend) Answer() int {
	pending := b.Fake.Pending()
	for _, call := range pending {
		body := b.body(call)
		b.Deliver(func() { call.Respond(body) })
	}
	return len(pending)
}

// Serve answers requests until none are left. It requires Deliver to run
// completions in place.
func (b *Backend) Serve(t testing.TB) {
	t.Helper()
	for i := 0; b.Answer() > 0; i++ {
		if i > 100 {
			t.Fatal("requests keep arriving")
		}
	}
}

func (b *Backend) body(call *request.FakeCall) string {
	data, err := b.handle(call)
	var out []byte
	if err != nil {
		out, _ = json.Marshal(api.Response[any]{Error: err.Error()})
	} else {
		out, _ = json.Marshal(api.Response[any]{Success: true, Data: data})
	}
	return string(out)
}

func (b *Backend) handle(call *request.FakeCall) (any, error) {
	str := func(k string) string { return fmt.Sprint(call.Data[k]) }

	switch {
	case call.Method == http.MethodGet && call.URL == api.UserURL+"/current":
		return b.User, nil
	case call.Method == http.MethodGet && call.URL == api.AccountURL:
		return b.Accounts, nil
	case call.Method == http.MethodGet && strings.HasPrefix(call.URL, api.AccountURL+"/"):
		acc, ok := model.AccountByID(b.Accounts, strings.TrimPrefix(call.URL, api.AccountURL+"/"))
		if !ok {
			return nil, fmt.Errorf("account not found")
		}
		return acc, nil
	case call.Method == http.MethodGet && call.URL == api.TransactionURL:
		out := []model.Transaction{}
		for _, txn := range b.Transactions {
			if txn.AccountID == str("account_id") {
				out = append(out, txn)
			}
		}
		return out, nil
	case call.Method == http.MethodPut && call.URL == api.AccountURL:
		b.seq++
		acc := model.Account{ID: fmt.Sprintf("new%d", b.seq), Name: str("name"), UserID: b.User.ID}
		b.Accounts = append(b.Accounts, acc)
		return acc, nil
	case call.Method == http.MethodPut && call.URL == api.TransactionURL:
		sum, err := decimal.NewFromString(str("sum"))
		if err != nil {
			return nil, fmt.Errorf("invalid sum")
		}
		b.seq++
		txn := model.Transaction{
			ID:        fmt.Sprintf("new%d", b.seq),
			AccountID: str("account_id"),
			Name:      str("name"),
			Type:      model.TransactionType(str("type")),
			Sum:       sum,
		}
		b.Transactions = append(b.Transactions, txn)
		return txn, nil
	case call.Method == http.MethodDelete && call.URL == api.AccountURL:
		id := str("id")
		kept := make([]model.Account, 0, len(b.Accounts))
		for _, acc := range b.Accounts {
			if acc.ID != id {
				kept = append(kept, acc)
			}
		}
		b.Accounts = kept
		return nil, nil
	case call.Method == http.MethodDelete && call.URL == api.TransactionURL:
		id := str("id")
		kept := make([]model.Transaction, 0, len(b.Transactions))
		for _, txn := range b.Transactions {
			if txn.ID != id {
				kept = append(kept, txn)
			}
		}
		b.Transactions = kept
		return nil, nil
	}
	return nil, fmt.Errorf("unexpected %s %s", call.Method, call.URL)
}
