package tui

import (
	"errors"
	"fmt"

	"github.com/Veraticus/spice-ledger/internal/app"
	"github.com/Veraticus/spice-ledger/internal/controller"
	"github.com/Veraticus/spice-ledger/internal/tui/themes"
	"github.com/Veraticus/spice-ledger/internal/view"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrNoCallbacks is returned when the TUI has no callback channel to drain.
var ErrNoCallbacks = errors.New("callback channel is required")

// Pane identifies which side of the screen has keyboard focus.
type Pane int

const (
	PaneAccounts Pane = iota
	PaneLedger
)

// Model holds the main TUI state.
type Model struct {
	theme         themes.Theme
	app           *app.App
	confirm       *confirmDialog
	dialog        *formDialog
	callbacks     <-chan func()
	ledger        table.Model
	spinner       spinner.Model
	keymap        KeyMap
	focus         Pane
	accountCursor int
	width         int
	height        int
	closed        bool
	quitting      bool
}

// New creates the TUI model and the application context behind it. The
// forms start fetching their account lists right away.
func New(opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Callbacks == nil {
		return Model{}, ErrNoCallbacks
	}

	confirm := &confirmDialog{}
	a, err := app.New(app.Config{
		Services:    cfg.Services,
		Confirmer:   confirm,
		PageOptions: []controller.PageOption{controller.WithGenerationGuard(cfg.GenerationGuard)},
	})
	if err != nil {
		return Model{}, fmt.Errorf("failed to create application: %w", err)
	}

	return Model{
		theme:     cfg.Theme,
		app:       a,
		confirm:   confirm,
		callbacks: cfg.Callbacks,
		ledger:    newLedgerTable(cfg.Theme),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		keymap:    DefaultKeyMap(),
		width:     cfg.Width,
		height:    cfg.Height,
	}, nil
}

func newLedgerTable(theme themes.Theme) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 24},
			{Title: "Name", Width: 24},
			{Title: "Sum", Width: 12},
		}),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)
	return t
}

// App returns the application context the model drives.
func (m Model) App() *app.App {
	return m.app
}

// Focus returns the pane with keyboard focus.
func (m Model) Focus() Pane {
	return m.focus
}

// Init starts loading the accounts widget and begins draining callbacks.
func (m Model) Init() tea.Cmd {
	m.app.Start()
	return tea.Batch(waitForCallback(m.callbacks), m.spinner.Tick)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case callbackMsg:
		msg.fn()
		cmds = append(cmds, waitForCallback(m.callbacks))

	case callbacksClosedMsg:
		m.closed = true

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ledger.SetHeight(max(3, msg.Height-8))

	case spinner.TickMsg:
		if !m.app.Accounts().Loaded() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)
	}

	m.reconcile()
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.confirm.pending() {
		switch {
		case key.Matches(msg, m.keymap.Confirm):
			m.confirm.resolve(true)
		case key.Matches(msg, m.keymap.Decline):
			m.confirm.resolve(false)
		}
		return m, nil
	}

	if m.dialog != nil {
		return m.handleDialogKey(msg)
	}

	views := m.app.Views()
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Focus):
		if m.focus == PaneAccounts {
			m.focus = PaneLedger
			m.ledger.Focus()
		} else {
			m.focus = PaneAccounts
			m.ledger.Blur()
		}

	case key.Matches(msg, m.keymap.Up):
		if m.focus == PaneAccounts {
			m.accountCursor--
		} else {
			m.ledger.MoveUp(1)
		}

	case key.Matches(msg, m.keymap.Down):
		if m.focus == PaneAccounts {
			m.accountCursor++
		} else {
			m.ledger.MoveDown(1)
		}

	case key.Matches(msg, m.keymap.Select):
		if m.focus == PaneAccounts {
			if accounts := m.app.Accounts().Accounts(); m.accountCursor < len(accounts) {
				m.app.Accounts().Select(accounts[m.accountCursor].ID)
			}
		}

	case key.Matches(msg, m.keymap.RemoveTransaction):
		if i := m.ledger.Cursor(); i >= 0 && i < len(views.Page.Rows) {
			btn := views.Page.Rows[i].Remove
			m.app.Page().Click(&btn)
		}

	case key.Matches(msg, m.keymap.RemoveAccount):
		btn := views.Page.RemoveAccount
		m.app.Page().Click(&btn)

	case key.Matches(msg, m.keymap.NewIncome):
		return m.openDialog(controller.ModalNewIncome)

	case key.Matches(msg, m.keymap.NewExpense):
		return m.openDialog(controller.ModalNewExpense)

	case key.Matches(msg, m.keymap.NewAccount):
		return m.openDialog(controller.ModalCreateAccount)

	case key.Matches(msg, m.keymap.Refresh):
		m.app.Update()
	}
	return m, nil
}

func (m Model) handleDialogKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	d := m.dialog
	switch {
	case key.Matches(msg, m.keymap.Dismiss):
		el := m.app.Views().Modals[d.name]
		m.app.Modal(d.name).Click(&el.Dismiss)
	case key.Matches(msg, m.keymap.Submit):
		d.err = m.app.Submit(d.name)
		d.submitted = d.err == nil
	case key.Matches(msg, m.keymap.NextField):
		d.next()
	case key.Matches(msg, m.keymap.PrevField):
		d.prev()
	case key.Matches(msg, m.keymap.NextOption):
		d.cycleOption(1)
	case key.Matches(msg, m.keymap.PrevOption):
		d.cycleOption(-1)
	default:
		return m, d.update(msg)
	}
	return m, nil
}

func (m Model) openDialog(name string) (Model, tea.Cmd) {
	m.app.Modal(name).Open()
	m.dialog = newFormDialog(name, m.app.Views().Forms[name])
	return m, nil
}

// reconcile brings host-only state back in line with the view state the
// controllers just changed.
func (m *Model) reconcile() {
	views := m.app.Views()

	if m.dialog != nil {
		if el := views.Modals[m.dialog.name]; el == nil || !el.Visible {
			m.dialog = nil
		} else {
			m.dialog.pull()
			if err := m.app.FormError(m.dialog.name); err != nil && m.dialog.submitted {
				m.dialog.err = err
			}
		}
	}

	accounts := m.app.Accounts().Accounts()
	m.accountCursor = clamp(m.accountCursor, len(accounts))

	m.ledger.SetRows(ledgerRows(views.Page))
	// SetCursor on an empty table leaves the cursor at -1.
	if n := len(views.Page.Rows); n > 0 {
		m.ledger.SetCursor(clamp(m.ledger.Cursor(), n))
	}
}

func ledgerRows(p *view.Page) []table.Row {
	rows := make([]table.Row, 0, len(p.Rows))
	for _, r := range p.Rows {
		rows = append(rows, table.Row{
			FormatDate(r.Transaction.CreatedAt),
			r.Transaction.Name,
			FormatSum(r.Transaction),
		})
	}
	return rows
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
