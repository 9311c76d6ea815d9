package tui

import (
	"strings"

	"github.com/Veraticus/spice-ledger/internal/controller"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// DateLayout renders timestamps like "10 March 2019 at 03:20".
const DateLayout = "02 January 2006 at 15:04"

const sidebarWidth = 24

var dialogTitles = map[string]string{
	controller.ModalNewIncome:     "New income",
	controller.ModalNewExpense:    "New expense",
	controller.ModalCreateAccount: "New account",
}

// FormatDate renders ts with DateLayout. A missing timestamp renders empty.
func FormatDate(ts model.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format(DateLayout)
}

// FormatSum signs the sum by transaction type.
func FormatSum(txn model.Transaction) string {
	sign := "+"
	if txn.Type == model.TypeExpense {
		sign = "-"
	}
	return sign + txn.Sum.StringFixed(2)
}

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.confirm.pending():
		return m.center(m.renderConfirm())
	case m.dialog != nil:
		return m.center(m.renderDialog())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderAccounts(), m.renderLedger())
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderHelp(m.keymap.ShortHelp()))
}

func (m Model) center(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) panel(focused bool) lipgloss.Style {
	if focused {
		return m.theme.FocusedPanel
	}
	return m.theme.Panel
}

func (m Model) renderAccounts() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Accounts"))
	b.WriteString("\n")

	widget := m.app.Accounts()
	if !widget.Loaded() {
		b.WriteString(m.spinner.View() + " loading")
		return m.panel(m.focus == PaneAccounts).Width(sidebarWidth).Render(b.String())
	}

	accounts := widget.Accounts()
	if len(accounts) == 0 {
		b.WriteString(m.theme.Faint.Render("No accounts yet"))
	}
	for i, acc := range accounts {
		line := acc.Name
		if acc.ID == widget.LastSelectedID() {
			line = "• " + line
		} else {
			line = "  " + line
		}
		switch {
		case i == m.accountCursor && m.focus == PaneAccounts:
			line = m.theme.Selected.Render(line)
		case i == m.accountCursor:
			line = m.theme.Highlighted.Render(line)
		default:
			line = m.theme.Normal.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return m.panel(m.focus == PaneAccounts).Width(sidebarWidth).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderLedger() string {
	page := m.app.Views().Page

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(page.Title))
	b.WriteString("\n")
	if _, ok := m.app.Page().LastOptions(); !ok {
		b.WriteString(m.theme.Faint.Render("Select an account to see its transactions"))
	} else if len(page.Rows) == 0 {
		b.WriteString(m.theme.Faint.Render("No transactions"))
	} else {
		b.WriteString(m.ledger.View())
	}

	width := max(20, m.width-sidebarWidth-6)
	return m.panel(m.focus == PaneLedger).Width(width).Render(b.String())
}

func (m Model) renderDialog() string {
	d := m.dialog
	var b strings.Builder
	b.WriteString(m.theme.Title.Render(dialogTitles[d.name]))
	b.WriteString("\n")

	for i, fld := range d.form.Fields {
		label := m.theme.Subtitle.Render(fld.Label + ":")
		b.WriteString(label + " " + d.inputs[i].View() + "\n")
	}
	if d.form.SelectName != "" {
		account := d.selectedLabel()
		if account == "" {
			account = m.theme.Faint.Render("no accounts")
		}
		b.WriteString(m.theme.Subtitle.Render("Account:") + " ‹ " + account + " ›\n")
	}
	if d.err != nil {
		b.WriteString("\n" + m.theme.StatusError.Render(d.err.Error()) + "\n")
	}
	b.WriteString("\n" + m.renderHelp(m.keymap.DialogHelp()))
	return m.theme.Dialog.Render(b.String())
}

func (m Model) renderConfirm() string {
	content := m.theme.Normal.Bold(true).Render(m.confirm.prompt) + "\n\n" +
		m.renderHelp([]key.Binding{m.keymap.Confirm, m.keymap.Decline})
	return m.theme.Dialog.Render(content)
}

func (m Model) renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.theme.Help.Render(strings.Join(parts, " • "))
}
