package api

import (
	"net/http"

	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/request"
)

// Resource URLs.
const (
	AccountURL     = "/account"
	TransactionURL = "/transaction"
	UserURL        = "/user"
)

// Accounts is the account entity.
type Accounts struct {
	Entity[model.Account]
}

// NewAccounts binds accounts to t.
func NewAccounts(t request.Transport) Accounts {
	return Accounts{Entity: NewEntity[model.Account](t, AccountURL)}
}

// Transactions is the transaction entity.
type Transactions struct {
	Entity[model.Transaction]
}

// NewTransactions binds transactions to t.
func NewTransactions(t request.Transport) Transactions {
	return Transactions{Entity: NewEntity[model.Transaction](t, TransactionURL)}
}

// Users is the user entity. Only the current user is reachable.
type Users struct {
	transport request.Transport
}

// NewUsers binds users to t.
func NewUsers(t request.Transport) Users {
	return Users{transport: t}
}

// Current fetches the user the session belongs to.
func (u Users) Current(cb Callback[model.User]) {
	call(u.transport, request.Options{
		URL:    UserURL + "/current",
		Method: http.MethodGet,
	}, cb)
}

// Client groups the three entities over one transport.
type Client struct {
	Accounts     Accounts
	Transactions Transactions
	Users        Users
}

// NewClient builds all entities over t.
func NewClient(t request.Transport) Client {
	return Client{
		Accounts:     NewAccounts(t),
		Transactions: NewTransactions(t),
		Users:        NewUsers(t),
	}
}
