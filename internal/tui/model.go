// Package tui implements the interactive terminal browser for a ledger.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/tui/components"
	"github.com/Veraticus/tally/internal/tui/themes"
)

// Model holds the browser state. It reads and mutates the ledger only through
// its public API.
type Model struct {
	theme           themes.Theme
	ledger          *ledger.Ledger
	help            help.Model
	status          string
	category        string
	transactionList components.TransactionListModel
	summary         components.SummaryModel
	config          Config
	keymap          KeyMap
	statusID        int
	removed         int
	width           int
	height          int
	showFullHelp    bool
	statusIsError   bool
	quitting        bool
}

// New creates a browser over l.
func New(l *ledger.Ledger, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	keymap := DefaultKeyMap()
	m := Model{
		theme:           cfg.Theme,
		ledger:          l,
		help:            help.New(),
		transactionList: components.NewTransactionList(l.All(), cfg.Theme, keymap.listKeys()),
		summary:         components.NewSummaryModel(cfg.Theme),
		config:          cfg,
		keymap:          keymap,
		width:           cfg.Width,
		height:          cfg.Height,
	}
	m.refresh()
	m.handleResize()

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case components.FilterRequestedMsg:
		m.category = msg.Category
		m.refresh()
		m.handleResize()
		if m.category == "" {
			return m, m.setStatus("Showing all transactions", false)
		}
		return m, m.setStatus(fmt.Sprintf("Filtered by category %q", m.category), false)

	case components.DeleteRequestedMsg:
		return m, m.deleteTransaction(msg.Transaction)

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.transactionList, cmd = m.transactionList.Update(msg)
	return m, cmd
}

// handleGlobalKeys processes keys that work everywhere except inside the filter prompt.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return tea.Quit, true
	}

	if m.transactionList.Mode() == components.ModeFilter {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit, true

	case key.Matches(msg, m.keymap.Help):
		m.showFullHelp = !m.showFullHelp
		m.help.ShowAll = m.showFullHelp
		m.handleResize()
		return nil, true
	}

	return nil, false
}

func (m *Model) deleteTransaction(t model.Transaction) tea.Cmd {
	if !m.ledger.Remove(t) {
		return m.setStatus("Transaction was already removed", true)
	}

	m.removed++
	m.refresh()
	return m.setStatus(fmt.Sprintf("Deleted %s", t.Description()), false)
}

// refresh reloads rows and totals from the ledger.
func (m *Model) refresh() {
	var rows []model.Transaction
	if m.category == "" {
		rows = m.ledger.All()
	} else {
		rows = m.ledger.ByCategory(m.category)
	}

	m.transactionList.SetCategory(m.category)
	m.transactionList.SetTransactions(rows)
	m.summary.SetSummary(m.ledger.Summarize())

	var total float64
	for _, t := range rows {
		total += t.Amount()
	}
	m.summary.SetFilter(m.category, total)
}

func (m *Model) setStatus(status string, isError bool) tea.Cmd {
	m.statusID++
	m.status = status
	m.statusIsError = isError
	return clearStatusAfter(m.statusID)
}

// handleResize lays out the components for the current size.
func (m *Model) handleResize() {
	m.help.Width = m.width
	m.summary.Resize(m.width)

	// Summary (2-3 lines) + status (1) + help (1 or more)
	chrome := 4
	if m.category != "" {
		chrome++
	}
	if m.config.ShowHelp && m.showFullHelp {
		chrome += len(m.keymap.FullHelp()[0])
	}
	m.transactionList.Resize(m.width, max(5, m.height-chrome))
}

// Removed reports how many transactions were deleted while browsing.
func (m Model) Removed() int {
	return m.removed
}

// Category returns the active category filter, empty when showing all.
func (m Model) Category() string {
	return m.category
}

// Visible returns the transactions currently listed.
func (m Model) Visible() []model.Transaction {
	return m.transactionList.Transactions()
}
