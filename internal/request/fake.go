package request

import (
	"strings"
	"sync"
)

// FakeTransport records requests and lets the caller complete them in any
// order. Completion runs the callback on the caller's goroutine.
type FakeTransport struct {
	calls []*FakeCall
	mu    sync.Mutex
}

// FakeCall is one recorded request.
type FakeCall struct {
	Options
	done bool
}

// Request implements Transport.
func (f *FakeTransport) Request(opts Options) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, &FakeCall{Options: withDefaults(opts)})
}

// Calls returns every recorded request in issue order.
func (f *FakeTransport) Calls() []*FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*FakeCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// Find returns requests matching method whose URL starts with prefix.
func (f *FakeTransport) Find(method, prefix string) []*FakeCall {
	var out []*FakeCall
	for _, c := range f.Calls() {
		if c.Method == method && strings.HasPrefix(c.URL, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// Last returns the most recent matching request, or nil.
func (f *FakeTransport) Last(method, prefix string) *FakeCall {
	found := f.Find(method, prefix)
	if len(found) == 0 {
		return nil
	}
	return found[len(found)-1]
}

// Pending returns requests that have not been completed yet.
func (f *FakeTransport) Pending() []*FakeCall {
	var out []*FakeCall
	for _, c := range f.Calls() {
		if !c.done {
			out = append(out, c)
		}
	}
	return out
}

// Respond completes the call with body. Later completions are ignored.
func (c *FakeCall) Respond(body string) {
	if c.done {
		return
	}
	c.done = true
	c.Callback(nil, []byte(body))
}

// Fail completes the call with ErrTransport.
func (c *FakeCall) Fail() {
	if c.done {
		return
	}
	c.done = true
	c.Callback(ErrTransport, nil)
}

// Done reports whether the call was completed.
func (c *FakeCall) Done() bool {
	return c.done
}
