// Package view holds the retained state of every on-screen element. The
// controllers write to it through narrow ports and the terminal host reads it
// back to draw.
package view

import "github.com/Veraticus/spice-ledger/internal/model"

// Action identifies what activating a button does. It is fixed when the
// button is built, never derived from how the button looks.
type Action int

// Button actions.
const (
	ActionNone Action = iota
	ActionRemoveAccount
	ActionRemoveTransaction
	ActionDismissModal
)

func (a Action) String() string {
	switch a {
	case ActionRemoveAccount:
		return "remove-account"
	case ActionRemoveTransaction:
		return "remove-transaction"
	case ActionDismissModal:
		return "dismiss-modal"
	default:
		return "none"
	}
}

// Button is an activatable element carrying an entity id.
type Button struct {
	ID     string
	Action Action
}

// Row is one rendered transaction with its own removal button.
type Row struct {
	Remove      Button
	Transaction model.Transaction
}

// Page is the ledger page of a single account.
type Page struct {
	Title         string
	Rows          []Row
	RemoveAccount Button
}

// NewPage returns an empty page showing title.
func NewPage(title string) *Page {
	return &Page{
		Title:         title,
		RemoveAccount: Button{Action: ActionRemoveAccount},
	}
}

// SetTitle replaces the page header text.
func (p *Page) SetTitle(title string) { p.Title = title }

// SetRemoveAccountID stamps the account id onto the removal button.
func (p *Page) SetRemoveAccountID(id string) { p.RemoveAccount.ID = id }

// ClearRows empties the transaction list.
func (p *Page) ClearRows() { p.Rows = nil }

// PrependRow inserts a transaction at the top of the list.
func (p *Page) PrependRow(txn model.Transaction) {
	row := Row{
		Transaction: txn,
		Remove:      Button{Action: ActionRemoveTransaction, ID: txn.ID},
	}
	p.Rows = append([]Row{row}, p.Rows...)
}

// Snapshot returns a deep copy, for comparing states.
func (p *Page) Snapshot() Page {
	out := *p
	out.Rows = append([]Row(nil), p.Rows...)
	return out
}

// Modal is a dialog that is either shown or hidden.
type Modal struct {
	ID      string
	Dismiss Button
	Visible bool
}

// NewModal returns a hidden modal with a dismiss button.
func NewModal(id string) *Modal {
	return &Modal{ID: id, Dismiss: Button{Action: ActionDismissModal}}
}

// ModalID returns the modal's registry name.
func (m *Modal) ModalID() string { return m.ID }

// SetVisible shows or hides the modal.
func (m *Modal) SetVisible(v bool) { m.Visible = v }
