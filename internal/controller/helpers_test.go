package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Veraticus/spice-ledger/internal/api"
	"github.com/Veraticus/spice-ledger/internal/request"
	"github.com/stretchr/testify/require"
)

type fakeWidget struct {
	selected string
}

func (w *fakeWidget) LastSelectedID() string { return w.selected }

// fakeApp records refresh requests and serves a modal registry.
type fakeApp struct {
	modals        map[string]*Modal
	widget        *fakeWidget
	updates       int
	widgetUpdates int
	formUpdates   int
}

func newFakeApp() *fakeApp {
	return &fakeApp{modals: map[string]*Modal{}, widget: &fakeWidget{}}
}

func (a *fakeApp) Modal(name string) *Modal { return a.modals[name] }

func (a *fakeApp) Widget(name string) Widget {
	if name != WidgetAccounts {
		return nil
	}
	return a.widget
}

func (a *fakeApp) Update()        { a.updates++ }
func (a *fakeApp) UpdateWidgets() { a.widgetUpdates++ }
func (a *fakeApp) UpdateForms()   { a.formUpdates++ }

func newServices() (*request.FakeTransport, Services) {
	fake := &request.FakeTransport{}
	return fake, ServicesFrom(api.NewClient(fake))
}

func respond(t *testing.T, call *request.FakeCall, data any) {
	t.Helper()
	require.NotNil(t, call, "expected a request to respond to")

	body, err := json.Marshal(map[string]any{"success": true, "data": data})
	require.NoError(t, err)
	call.Respond(string(body))
}

func reject(t *testing.T, call *request.FakeCall, reason string) {
	t.Helper()
	require.NotNil(t, call, "expected a request to respond to")

	body, err := json.Marshal(map[string]any{"success": false, "error": reason})
	require.NoError(t, err)
	call.Respond(string(body))
}

func accountGets(fake *request.FakeTransport) []*request.FakeCall {
	return fake.Find(http.MethodGet, api.AccountURL+"/")
}

func transactionLists(fake *request.FakeTransport) []*request.FakeCall {
	return fake.Find(http.MethodGet, api.TransactionURL)
}

// recordingConfirmer answers with a fixed value and remembers the prompts.
type recordingConfirmer struct {
	prompts []string
	answer  bool
}

func (c *recordingConfirmer) Confirm(prompt string, answer func(bool)) {
	c.prompts = append(c.prompts, prompt)
	answer(c.answer)
}

// deferredConfirmer holds the answer until the test releases it.
type deferredConfirmer struct {
	pending func(bool)
}

func (c *deferredConfirmer) Confirm(_ string, answer func(bool)) {
	c.pending = answer
}
