package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/request"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntity_RequestShapes(t *testing.T) {
	tests := []struct {
		invoke     func(c Client)
		wantData   request.Data
		name       string
		wantMethod string
		wantURL    string
	}{
		{
			name:       "list accounts",
			invoke:     func(c Client) { c.Accounts.List(request.Data{"user_id": "u1"}, func(error, Response[[]model.Account]) {}) },
			wantMethod: http.MethodGet,
			wantURL:    "/account",
			wantData:   request.Data{"user_id": "u1"},
		},
		{
			name:       "get account escapes id",
			invoke:     func(c Client) { c.Accounts.Get("a/1", func(error, Response[model.Account]) {}) },
			wantMethod: http.MethodGet,
			wantURL:    "/account/a%2F1",
			wantData:   request.Data{},
		},
		{
			name: "create transaction",
			invoke: func(c Client) {
				c.Transactions.Create(request.Data{"name": "Coffee"}, func(error, Response[model.Transaction]) {})
			},
			wantMethod: http.MethodPut,
			wantURL:    "/transaction",
			wantData:   request.Data{"name": "Coffee"},
		},
		{
			name:       "remove transaction",
			invoke:     func(c Client) { c.Transactions.Remove("t9", func(error, Response[json.RawMessage]) {}) },
			wantMethod: http.MethodDelete,
			wantURL:    "/transaction",
			wantData:   request.Data{"id": "t9"},
		},
		{
			name:       "current user",
			invoke:     func(c Client) { c.Users.Current(func(error, Response[model.User]) {}) },
			wantMethod: http.MethodGet,
			wantURL:    "/user/current",
			wantData:   request.Data{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &request.FakeTransport{}
			tt.invoke(NewClient(fake))

			calls := fake.Calls()
			require.Len(t, calls, 1)
			assert.Equal(t, tt.wantMethod, calls[0].Method)
			assert.Equal(t, tt.wantURL, calls[0].URL)
			assert.Equal(t, tt.wantData, calls[0].Data)
			assert.Equal(t, "json", calls[0].ResponseType)
		})
	}
}

func TestEntity_DecodesEnvelope(t *testing.T) {
	fake := &request.FakeTransport{}
	c := NewClient(fake)

	var (
		gotErr  error
		gotResp Response[[]model.Transaction]
	)
	c.Transactions.List(request.Data{"account_id": "a1"}, func(err error, resp Response[[]model.Transaction]) {
		gotErr, gotResp = err, resp
	})

	fake.Last(http.MethodGet, TransactionURL).Respond(`{"success":true,"data":[
		{"id":"t1","type":"income","sum":100,"name":"Salary","created_at":"2024-01-15 09:00:00"},
		{"id":"t2","type":"expense","sum":"12.30","name":"Lunch","created_at":"2024-01-15 13:10:00"}
	]}`)

	require.NoError(t, gotErr)
	assert.True(t, OK(gotErr, gotResp))
	require.Len(t, gotResp.Data, 2)
	assert.Equal(t, "Salary", gotResp.Data[0].Name)
	assert.True(t, decimal.RequireFromString("12.3").Equal(gotResp.Data[1].Sum))
}

func TestEntity_BusinessFailure(t *testing.T) {
	fake := &request.FakeTransport{}
	c := NewClient(fake)

	var (
		gotErr  error
		gotResp Response[model.Account]
	)
	c.Accounts.Get("missing", func(err error, resp Response[model.Account]) { gotErr, gotResp = err, resp })
	fake.Calls()[0].Respond(`{"success":false,"error":"account not found"}`)

	require.NoError(t, gotErr)
	assert.False(t, OK(gotErr, gotResp))
	assert.Equal(t, "account not found", gotResp.Error)
}

func TestEntity_TransportAndDecodeFailures(t *testing.T) {
	fake := &request.FakeTransport{}
	c := NewClient(fake)

	var errs []error
	c.Users.Current(func(err error, _ Response[model.User]) { errs = append(errs, err) })
	c.Users.Current(func(err error, _ Response[model.User]) { errs = append(errs, err) })

	calls := fake.Calls()
	calls[0].Fail()
	calls[1].Respond(`<html>502 Bad Gateway</html>`)

	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], request.ErrTransport)
	assert.ErrorIs(t, errs[1], ErrMalformedResponse)
}
