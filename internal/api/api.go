// Package api exposes the remote entities (accounts, transactions, users)
// over the request transport. Every response has the uniform shape
// {success, data, error}.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Veraticus/spice-ledger/internal/request"
)

// ErrMalformedResponse is returned when a body is not a valid envelope.
var ErrMalformedResponse = errors.New("malformed response")

// Response is the uniform envelope returned by the server.
type Response[T any] struct {
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success"`
}

// Callback receives a non-nil err only for transport or decoding failures.
// Business failures arrive as resp.Success == false.
type Callback[T any] func(err error, resp Response[T])

// OK reports whether the call succeeded at both levels.
func OK[T any](err error, resp Response[T]) bool {
	return err == nil && resp.Success
}

// Entity implements list/get/create/remove for one resource URL.
type Entity[T any] struct {
	transport request.Transport
	url       string
}

// NewEntity binds an entity to a base URL such as "/account".
func NewEntity[T any](t request.Transport, baseURL string) Entity[T] {
	return Entity[T]{transport: t, url: baseURL}
}

// List fetches every entity matching params.
func (e Entity[T]) List(params request.Data, cb Callback[[]T]) {
	call(e.transport, request.Options{
		URL:    e.url,
		Method: http.MethodGet,
		Data:   params,
	}, cb)
}

// Get fetches one entity by id.
func (e Entity[T]) Get(id string, cb Callback[T]) {
	call(e.transport, request.Options{
		URL:    e.url + "/" + url.PathEscape(id),
		Method: http.MethodGet,
	}, cb)
}

// Create stores a new entity built from data.
func (e Entity[T]) Create(data request.Data, cb Callback[T]) {
	call(e.transport, request.Options{
		URL:    e.url,
		Method: http.MethodPut,
		Data:   data,
	}, cb)
}

// Remove deletes the entity with the given id.
func (e Entity[T]) Remove(id string, cb Callback[json.RawMessage]) {
	call(e.transport, request.Options{
		URL:    e.url,
		Method: http.MethodDelete,
		Data:   request.Data{"id": id},
	}, cb)
}

func call[T any](t request.Transport, opts request.Options, cb Callback[T]) {
	opts.ResponseType = "json"
	opts.Callback = func(err error, body []byte) {
		var resp Response[T]
		if err != nil {
			cb(err, resp)
			return
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			cb(fmt.Errorf("%w: %v", ErrMalformedResponse, err), Response[T]{})
			return
		}
		cb(nil, resp)
	}
	t.Request(opts)
}
