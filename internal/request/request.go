// Package request is the single-attempt, callback-based HTTP transport used by
// every remote entity accessor.
package request

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/loop"
)

// ErrTransport is the generic signal handed to callbacks when the network
// call itself failed. It deliberately carries no detail.
var ErrTransport = errors.New("request failed")

// Data holds request fields. Falsy entries are dropped before sending.
type Data map[string]any

// Callback receives either ErrTransport or the raw response body. HTTP status
// is never interpreted, so error statuses arrive as a nil error.
type Callback func(err error, body []byte)

// Options describes one request.
type Options struct {
	Data         Data
	Callback     Callback
	URL          string
	Method       string
	ResponseType string
}

// Transport issues requests without blocking the caller.
type Transport interface {
	Request(opts Options)
}

// HTTPTransport implements Transport on net/http.
type HTTPTransport struct {
	ctx        context.Context
	client     *http.Client
	dispatcher loop.Dispatcher
	baseURL    string
}

// Option configures an HTTPTransport.
type Option func(*HTTPTransport)

// WithHTTPClient sets the underlying client.
func WithHTTPClient(c *http.Client) Option {
	return func(t *HTTPTransport) {
		t.client = c
	}
}

// WithBaseURL prefixes every relative request URL.
func WithBaseURL(u string) Option {
	return func(t *HTTPTransport) {
		t.baseURL = strings.TrimRight(u, "/")
	}
}

// WithDispatcher sets where callbacks run.
func WithDispatcher(d loop.Dispatcher) Option {
	return func(t *HTTPTransport) {
		t.dispatcher = d
	}
}

// WithContext bounds all requests by the lifetime of ctx.
func WithContext(ctx context.Context) Option {
	return func(t *HTTPTransport) {
		t.ctx = ctx
	}
}

// NewHTTPTransport creates a transport. Without options it uses a plain
// http.Client with no timeout and runs callbacks on the I/O goroutine.
func NewHTTPTransport(opts ...Option) *HTTPTransport {
	t := &HTTPTransport{
		ctx:        context.Background(),
		client:     &http.Client{},
		dispatcher: loop.Immediate,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Request implements Transport. Exactly one attempt is made.
func (t *HTTPTransport) Request(opts Options) {
	opts = withDefaults(opts)

	req, err := t.build(opts)
	if err != nil {
		slog.Debug("Failed to build request", "url", opts.URL, "method", opts.Method, "error", err)
		go t.deliver(opts.Callback, ErrTransport, nil)
		return
	}

	slog.Debug("Issuing request", "url", req.URL.String(), "method", req.Method)

	go func() {
		resp, err := t.client.Do(req)
		if err != nil {
			slog.Debug("Request failed", "url", req.URL.String(), "error", err)
			t.deliver(opts.Callback, ErrTransport, nil)
			return
		}
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			slog.Debug("Failed to read response", "url", req.URL.String(), "error", err)
			t.deliver(opts.Callback, ErrTransport, nil)
			return
		}

		t.deliver(opts.Callback, nil, body)
	}()
}

func (t *HTTPTransport) deliver(cb Callback, err error, body []byte) {
	t.dispatcher.Dispatch(func() { cb(err, body) })
}

func (t *HTTPTransport) build(opts Options) (*http.Request, error) {
	target := opts.URL
	if t.baseURL != "" && strings.HasPrefix(target, "/") {
		target = t.baseURL + target
	}

	var (
		body        io.Reader
		contentType string
	)
	if opts.Method == http.MethodGet {
		query, err := EncodeQuery(opts.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode query: %w", err)
		}
		if query != "" {
			target += "?" + query
		}
	} else {
		buf, ct, err := EncodeMultipart(opts.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode body: %w", err)
		}
		body, contentType = buf, ct
	}

	req, err := http.NewRequestWithContext(t.ctx, opts.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if opts.ResponseType == "json" {
		req.Header.Set("Accept", "application/json")
	}
	return req, nil
}

func withDefaults(opts Options) Options {
	opts.Method = strings.ToUpper(opts.Method)
	if opts.Method == "" {
		opts.Method = http.MethodGet
	}
	if opts.ResponseType == "" {
		opts.ResponseType = "json"
	}
	if opts.Data == nil {
		opts.Data = Data{}
	}
	if opts.Callback == nil {
		opts.Callback = func(error, []byte) {}
	}
	return opts
}
