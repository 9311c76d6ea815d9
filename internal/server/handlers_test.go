package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/spice-ledger/internal/api"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/request"
	"github.com/Veraticus/spice-ledger/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, api.Client) {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewHandler(store, log).Routes())
	t.Cleanup(srv.Close)

	transport := request.NewHTTPTransport(
		request.WithBaseURL(srv.URL),
		request.WithHTTPClient(srv.Client()),
	)
	return srv, api.NewClient(transport)
}

type result[T any] struct {
	err  error
	resp api.Response[T]
}

// await issues a call and blocks until its callback fires.
func await[T any](t *testing.T, issue func(cb api.Callback[T])) (api.Response[T], error) {
	t.Helper()
	ch := make(chan result[T], 1)
	issue(func(err error, resp api.Response[T]) {
		ch <- result[T]{err: err, resp: resp}
	})
	select {
	case r := <-ch:
		return r.resp, r.err
	case <-time.After(5 * time.Second):
		t.Fatal("callback never fired")
		return api.Response[T]{}, nil
	}
}

func TestCurrentUser(t *testing.T) {
	_, client := newTestServer(t)

	resp, err := await(t, client.Users.Current)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, storage.DefaultUserName, resp.Data.Name)
}

func TestAccountLifecycle(t *testing.T) {
	_, client := newTestServer(t)

	user, err := await(t, client.Users.Current)
	require.NoError(t, err)

	created, err := await(t, func(cb api.Callback[model.Account]) {
		client.Accounts.Create(request.Data{"name": "Cash"}, cb)
	})
	require.NoError(t, err)
	require.True(t, created.Success, created.Error)
	assert.Equal(t, "Cash", created.Data.Name)
	assert.Equal(t, user.Data.ID, created.Data.UserID)

	list, err := await(t, func(cb api.Callback[[]model.Account]) {
		client.Accounts.List(request.Data{"user_id": user.Data.ID}, cb)
	})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)

	got, err := await(t, func(cb api.Callback[model.Account]) {
		client.Accounts.Get(created.Data.ID, cb)
	})
	require.NoError(t, err)
	assert.Equal(t, created.Data, got.Data)

	removed, err := await(t, func(cb api.Callback[json.RawMessage]) {
		client.Accounts.Remove(created.Data.ID, cb)
	})
	require.NoError(t, err)
	assert.True(t, removed.Success)

	missing, err := await(t, func(cb api.Callback[model.Account]) {
		client.Accounts.Get(created.Data.ID, cb)
	})
	require.NoError(t, err)
	assert.False(t, missing.Success)
	assert.Equal(t, "Account not found", missing.Error)
}

func TestTransactionLifecycle(t *testing.T) {
	_, client := newTestServer(t)

	acc, err := await(t, func(cb api.Callback[model.Account]) {
		client.Accounts.Create(request.Data{"name": "Cash"}, cb)
	})
	require.NoError(t, err)

	for _, data := range []request.Data{
		{"account_id": acc.Data.ID, "name": "Salary", "type": "income", "sum": "1000"},
		{"account_id": acc.Data.ID, "name": "Coffee", "type": "expense", "sum": "3.20"},
	} {
		resp, err := await(t, func(cb api.Callback[model.Transaction]) {
			client.Transactions.Create(data, cb)
		})
		require.NoError(t, err)
		require.True(t, resp.Success, resp.Error)
		assert.False(t, resp.Data.CreatedAt.IsZero())
	}

	list, err := await(t, func(cb api.Callback[[]model.Transaction]) {
		client.Transactions.List(request.Data{"account_id": acc.Data.ID}, cb)
	})
	require.NoError(t, err)
	require.Len(t, list.Data, 2)
	assert.Equal(t, "Salary", list.Data[0].Name)
	assert.True(t, decimal.RequireFromString("3.2").Equal(list.Data[1].Sum))

	got, err := await(t, func(cb api.Callback[model.Transaction]) {
		client.Transactions.Get(list.Data[1].ID, cb)
	})
	require.NoError(t, err)
	assert.Equal(t, "Coffee", got.Data.Name)

	removed, err := await(t, func(cb api.Callback[json.RawMessage]) {
		client.Transactions.Remove(list.Data[0].ID, cb)
	})
	require.NoError(t, err)
	assert.True(t, removed.Success)

	list, err = await(t, func(cb api.Callback[[]model.Transaction]) {
		client.Transactions.List(request.Data{"account_id": acc.Data.ID}, cb)
	})
	require.NoError(t, err)
	assert.Len(t, list.Data, 1)
}

func TestCreateTransaction_Rejected(t *testing.T) {
	_, client := newTestServer(t)

	tests := []struct {
		name string
		data request.Data
	}{
		{"bad sum", request.Data{"account_id": "x", "name": "n", "type": "income", "sum": "lots"}},
		{"bad type", request.Data{"account_id": "x", "name": "n", "type": "gift", "sum": "1"}},
		{"unknown account", request.Data{"account_id": "x", "name": "n", "type": "income", "sum": "1"}},
		{"empty", request.Data{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := await(t, func(cb api.Callback[model.Transaction]) {
				client.Transactions.Create(tt.data, cb)
			})
			require.NoError(t, err)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestRemoveAccount_Unknown(t *testing.T) {
	_, client := newTestServer(t)

	resp, err := await(t, func(cb api.Callback[json.RawMessage]) {
		client.Accounts.Remove("nope", cb)
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)
}

func TestListTransactions_RequiresAccount(t *testing.T) {
	srv, _ := newTestServer(t)

	res, err := srv.Client().Get(srv.URL + api.TransactionURL)
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	var body api.Response[json.RawMessage]
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "account_id is required", body.Error)
}

func TestListAccounts_DefaultsToCurrentUser(t *testing.T) {
	_, client := newTestServer(t)

	_, err := await(t, func(cb api.Callback[model.Account]) {
		client.Accounts.Create(request.Data{"name": "Cash"}, cb)
	})
	require.NoError(t, err)

	list, err := await(t, func(cb api.Callback[[]model.Account]) {
		client.Accounts.List(nil, cb)
	})
	require.NoError(t, err)
	assert.Len(t, list.Data, 1)
}

func TestRequestID(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "abc")
	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, "abc", res.Header.Get("X-Request-ID"))

	res, err = srv.Client().Get(srv.URL + "/health")
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Len(t, res.Header.Get("X-Request-ID"), 36)
}

func TestRecovery(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := Recovery(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"data":null,"error":"Internal server error"}`, rec.Body.String())
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, map[string]int{"n": 1})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"n":1}}`, rec.Body.String())
}
