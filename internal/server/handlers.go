// Package server serves accounts, transactions and the current user over
// HTTP for the terminal client.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/api"
	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/storage"
	"github.com/shopspring/decimal"
)

const maxFormMemory = 1 << 20

// Store is the persistence the handlers need.
type Store interface {
	CurrentUser(ctx context.Context) (*model.User, error)
	ListAccounts(ctx context.Context, userID string) ([]model.Account, error)
	GetAccount(ctx context.Context, id string) (*model.Account, error)
	CreateAccount(ctx context.Context, acc *model.Account) error
	DeleteAccount(ctx context.Context, id string) error
	ListTransactions(ctx context.Context, accountID string) ([]model.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)
	CreateTransaction(ctx context.Context, txn *model.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
}

// Handler implements the ledger endpoints.
type Handler struct {
	store Store
	log   *slog.Logger
}

// NewHandler creates the ledger handler.
func NewHandler(store Store, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{store: store, log: log}
}

// Routes registers every endpoint and wraps them in the middleware chain.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+api.UserURL+"/current", h.CurrentUser)

	mux.HandleFunc("GET "+api.AccountURL, h.ListAccounts)
	mux.HandleFunc("GET "+api.AccountURL+"/{id}", h.GetAccount)
	mux.HandleFunc("PUT "+api.AccountURL, h.CreateAccount)
	mux.HandleFunc("DELETE "+api.AccountURL, h.RemoveAccount)

	mux.HandleFunc("GET "+api.TransactionURL, h.ListTransactions)
	mux.HandleFunc("GET "+api.TransactionURL+"/{id}", h.GetTransaction)
	mux.HandleFunc("PUT "+api.TransactionURL, h.CreateTransaction)
	mux.HandleFunc("DELETE "+api.TransactionURL, h.RemoveTransaction)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	var handler http.Handler = mux
	handler = Logger(h.log)(handler)
	handler = Recovery(h.log)(handler)
	handler = RequestID(handler)
	return handler
}

// CurrentUser handles GET /user/current.
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.CurrentUser(r.Context())
	if err != nil {
		h.fail(w, err, "Failed to get current user")
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// ListAccounts handles GET /account. Without user_id it lists the current
// user's accounts.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		user, err := h.store.CurrentUser(ctx)
		if err != nil {
			h.fail(w, err, "Failed to get current user")
			return
		}
		userID = user.ID
	}

	accounts, err := h.store.ListAccounts(ctx, userID)
	if err != nil {
		h.fail(w, err, "Failed to list accounts")
		return
	}
	WriteJSON(w, http.StatusOK, accounts)
}

// GetAccount handles GET /account/{id}.
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	acc, err := h.store.GetAccount(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, err, "Account not found")
		return
	}
	WriteJSON(w, http.StatusOK, acc)
}

// CreateAccount handles PUT /account.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	form, ok := parseForm(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	acc := model.Account{Name: form("name"), UserID: form("user_id")}
	if acc.UserID == "" {
		user, err := h.store.CurrentUser(ctx)
		if err != nil {
			h.fail(w, err, "Failed to get current user")
			return
		}
		acc.UserID = user.ID
	}

	if err := h.store.CreateAccount(ctx, &acc); err != nil {
		h.fail(w, err, "Failed to create account")
		return
	}
	WriteJSON(w, http.StatusOK, acc)
}

// RemoveAccount handles DELETE /account.
func (h *Handler) RemoveAccount(w http.ResponseWriter, r *http.Request) {
	form, ok := parseForm(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteAccount(r.Context(), form("id")); err != nil {
		h.fail(w, err, "Failed to remove account")
		return
	}
	WriteJSON(w, http.StatusOK, nil)
}

// ListTransactions handles GET /transaction?account_id=.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("account_id")
	if accountID == "" {
		WriteError(w, http.StatusBadRequest, "account_id is required")
		return
	}

	txns, err := h.store.ListTransactions(r.Context(), accountID)
	if err != nil {
		h.fail(w, err, "Failed to list transactions")
		return
	}
	WriteJSON(w, http.StatusOK, txns)
}

// GetTransaction handles GET /transaction/{id}.
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	txn, err := h.store.GetTransaction(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, err, "Transaction not found")
		return
	}
	WriteJSON(w, http.StatusOK, txn)
}

// CreateTransaction handles PUT /transaction.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	form, ok := parseForm(w, r)
	if !ok {
		return
	}

	sum, err := decimal.NewFromString(form("sum"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "sum must be a number")
		return
	}

	txn := model.Transaction{
		AccountID: form("account_id"),
		Name:      form("name"),
		Type:      model.TransactionType(form("type")),
		Sum:       sum,
	}
	if err := h.store.CreateTransaction(r.Context(), &txn); err != nil {
		h.fail(w, err, "Failed to create transaction")
		return
	}
	WriteJSON(w, http.StatusOK, txn)
}

// RemoveTransaction handles DELETE /transaction.
func (h *Handler) RemoveTransaction(w http.ResponseWriter, r *http.Request) {
	form, ok := parseForm(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteTransaction(r.Context(), form("id")); err != nil {
		h.fail(w, err, "Failed to remove transaction")
		return
	}
	WriteJSON(w, http.StatusOK, nil)
}

// parseForm reads the multipart body every write request carries.
func parseForm(w http.ResponseWriter, r *http.Request) (func(string) string, bool) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid form body")
		return nil, false
	}
	return func(key string) string {
		return strings.TrimSpace(r.FormValue(key))
	}, true
}

func (h *Handler) fail(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		WriteError(w, http.StatusNotFound, message)
	case errors.Is(err, storage.ErrInvalidAccount),
		errors.Is(err, storage.ErrInvalidTransaction),
		errors.Is(err, storage.ErrEmptyString):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error(message, "error", err)
		WriteError(w, http.StatusInternalServerError, message)
	}
}
