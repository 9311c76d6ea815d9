package controller

import (
	"encoding/json"
	"log/slog"

	"github.com/Veraticus/spice-ledger/internal/api"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/request"
	"github.com/Veraticus/spice-ledger/internal/view"
)

// TitlePlaceholder is shown while no account is displayed.
const TitlePlaceholder = "Account name"

// Confirmation prompts for destructive actions.
const (
	PromptRemoveAccount     = "Do you really want to delete this account?"
	PromptRemoveTransaction = "Do you really want to delete this transaction?"
)

// RenderOptions selects what the page displays.
type RenderOptions struct {
	AccountID string
}

// Data converts the options into list query parameters.
func (o RenderOptions) Data() request.Data {
	return request.Data{"account_id": o.AccountID}
}

type pageAction struct {
	run    func(id string)
	prompt string
}

// Page drives the ledger of a single account.
//
// Each Render bumps a generation counter. With the guard enabled, a response
// belonging to an older generation is dropped instead of overwriting what a
// later Render (or Clear) put on screen.
type Page struct {
	app         App
	element     PageElement
	confirmer   Confirmer
	svc         Services
	lastOptions *RenderOptions
	actions     map[view.Action]pageAction
	generation  uint64
	guard       bool
}

// PageOption configures a Page.
type PageOption func(*Page)

// WithGenerationGuard toggles discarding of stale responses. It is on by
// default; turning it off lets a late response from a superseded render
// land on the current page.
func WithGenerationGuard(enabled bool) PageOption {
	return func(p *Page) {
		p.guard = enabled
	}
}

// NewPage binds the page controller to element.
func NewPage(app App, element PageElement, svc Services, confirmer Confirmer, opts ...PageOption) (*Page, error) {
	if isNil(element) {
		return nil, ErrNoElement
	}
	if isNil(app) {
		return nil, ErrNoApp
	}
	if isNil(confirmer) {
		return nil, ErrNoConfirmer
	}

	p := &Page{
		app:       app,
		element:   element,
		confirmer: confirmer,
		svc:       svc,
		guard:     true,
	}
	p.actions = map[view.Action]pageAction{
		view.ActionRemoveAccount:     {prompt: PromptRemoveAccount, run: p.removeAccount},
		view.ActionRemoveTransaction: {prompt: PromptRemoveTransaction, run: p.removeTransaction},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// LastOptions returns what is currently displayed. ok is false while the
// page is cleared.
func (p *Page) LastOptions() (opts RenderOptions, ok bool) {
	if p.lastOptions == nil {
		return RenderOptions{}, false
	}
	return *p.lastOptions, true
}

// Generation returns the current render generation.
func (p *Page) Generation() uint64 {
	return p.generation
}

// Click handles a button activated anywhere on the page. Clicks outside a
// button, or before anything was rendered, are ignored.
func (p *Page) Click(b *view.Button) {
	if b == nil || p.lastOptions == nil {
		return
	}

	action, ok := p.actions[b.Action]
	if !ok {
		return
	}
	if b.ID == "" {
		slog.Debug("Ignoring click on unbound button", "action", b.Action.String())
		return
	}

	id := b.ID
	p.confirmer.Confirm(action.prompt, func(yes bool) {
		if !yes {
			return
		}
		action.run(id)
	})
}

func (p *Page) removeAccount(id string) {
	p.svc.Accounts.Remove(id, func(err error, resp api.Response[json.RawMessage]) {
		if !api.OK(err, resp) {
			slog.Debug("Account removal failed", "account_id", id, "error", err, "reason", resp.Error)
			return
		}
		p.Clear()
		p.app.UpdateWidgets()
		p.app.UpdateForms()
	})
}

func (p *Page) removeTransaction(id string) {
	p.svc.Transactions.Remove(id, func(err error, resp api.Response[json.RawMessage]) {
		if !api.OK(err, resp) {
			slog.Debug("Transaction removal failed", "transaction_id", id, "error", err, "reason", resp.Error)
			return
		}
		p.app.Update()
	})
}

// Update re-renders whatever is currently displayed.
func (p *Page) Update() {
	if p.lastOptions == nil {
		return
	}
	p.Render(*p.lastOptions)
}

// Render shows the account in opts. An empty account id is ignored and the
// previous state is kept. The title and the ledger are fetched
// independently and may complete in either order.
func (p *Page) Render(opts RenderOptions) {
	if opts.AccountID == "" {
		return
	}

	stored := opts
	p.lastOptions = &stored
	p.generation++
	gen := p.generation

	p.svc.Accounts.Get(opts.AccountID, func(err error, resp api.Response[model.Account]) {
		if !api.OK(err, resp) || p.stale(gen, "account") {
			return
		}
		p.element.SetTitle(resp.Data.Name)
		p.element.SetRemoveAccountID(opts.AccountID)
	})

	p.svc.Transactions.List(opts.Data(), func(err error, resp api.Response[[]model.Transaction]) {
		if !api.OK(err, resp) || p.stale(gen, "transactions") {
			return
		}
		p.renderTransactions(resp.Data)
	})
}

// Clear empties the page and forgets what was displayed.
func (p *Page) Clear() {
	p.element.ClearRows()
	p.element.SetTitle(TitlePlaceholder)
	p.element.SetRemoveAccountID("")
	p.lastOptions = nil
	p.generation++
}

func (p *Page) renderTransactions(txns []model.Transaction) {
	p.element.ClearRows()
	for _, txn := range txns {
		p.element.PrependRow(txn)
	}
}

func (p *Page) stale(gen uint64, what string) bool {
	if !p.guard || gen == p.generation {
		return false
	}
	slog.Debug("Discarding stale response", "fetch", what, "generation", gen, "current", p.generation)
	return true
}
