// Package components holds the bubbletea building blocks of the terminal browser.
package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/tui/themes"
)

// ListMode represents the current mode of the list.
type ListMode int

// List modes.
const (
	ModeNormal ListMode = iota
	ModeFilter
)

// ListKeys are the bindings the list reacts to besides table navigation.
type ListKeys struct {
	Filter      key.Binding
	ClearFilter key.Binding
	Delete      key.Binding
}

// TransactionListModel manages the transaction table and its category filter.
type TransactionListModel struct {
	theme        themes.Theme
	keys         ListKeys
	category     string
	transactions []model.Transaction
	filterInput  textinput.Model
	table        table.Model
	mode         ListMode
	width        int
	height       int
}

// NewTransactionList creates a new transaction list.
func NewTransactionList(transactions []model.Transaction, theme themes.Theme, keys ListKeys) TransactionListModel {
	t := table.New(
		table.WithColumns(columnsFor(80)),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	filterInput := textinput.New()
	filterInput.Placeholder = "Category (exact match, empty for all)"
	filterInput.CharLimit = 50

	m := TransactionListModel{
		theme:       theme,
		keys:        keys,
		table:       t,
		filterInput: filterInput,
		mode:        ModeNormal,
		width:       80,
		height:      24,
	}
	m.SetTransactions(transactions)

	return m
}

// SetTransactions replaces the rows shown, keeping the cursor in range.
func (m *TransactionListModel) SetTransactions(transactions []model.Transaction) {
	m.transactions = transactions
	m.table.SetRows(m.buildTableRows())

	if cursor := m.table.Cursor(); cursor >= len(transactions) {
		m.table.SetCursor(max(0, len(transactions)-1))
	}
}

// SetCategory records the active filter for display.
func (m *TransactionListModel) SetCategory(category string) {
	m.category = category
}

// Transactions returns the rows currently shown.
func (m TransactionListModel) Transactions() []model.Transaction {
	return m.transactions
}

// Selected returns the highlighted transaction, if any.
func (m TransactionListModel) Selected() (model.Transaction, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.transactions) {
		return model.Transaction{}, false
	}
	return m.transactions[cursor], true
}

// Mode returns the current list mode.
func (m TransactionListModel) Mode() ListMode {
	return m.mode
}

// Update handles messages.
func (m TransactionListModel) Update(msg tea.Msg) (TransactionListModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.mode == ModeFilter {
			return m, m.handleFilterMode(keyMsg)
		}
		if cmd, handled := m.handleNormalMode(keyMsg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleNormalMode handles the list's own keys; everything else goes to the table.
func (m *TransactionListModel) handleNormalMode(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Filter):
		m.mode = ModeFilter
		m.filterInput.SetValue("")
		return m.filterInput.Focus(), true

	case key.Matches(msg, m.keys.ClearFilter):
		if m.category == "" {
			return nil, true
		}
		return func() tea.Msg { return FilterRequestedMsg{} }, true

	case key.Matches(msg, m.keys.Delete):
		txn, ok := m.Selected()
		if !ok {
			return nil, true
		}
		return func() tea.Msg { return DeleteRequestedMsg{Transaction: txn} }, true
	}

	return nil, false
}

// handleFilterMode handles key presses while the category prompt is open.
func (m *TransactionListModel) handleFilterMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		category := strings.TrimSpace(m.filterInput.Value())
		m.mode = ModeNormal
		m.filterInput.Blur()
		return func() tea.Msg { return FilterRequestedMsg{Category: category} }

	case tea.KeyEsc:
		m.mode = ModeNormal
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		return nil

	default:
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		return cmd
	}
}

// View renders the transaction list.
func (m TransactionListModel) View() string {
	if m.mode == ModeFilter {
		return m.renderFilterView()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.table.View(),
	)
}

// renderFilterView renders the category prompt.
func (m TransactionListModel) renderFilterView() string {
	box := m.theme.BorderedBox.
		Width(min(60, max(20, m.width-4))).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.theme.Title.Render("Filter by Category"),
			m.filterInput.View(),
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press Enter to filter, Esc to cancel"),
		))

	return lipgloss.Place(m.width, max(m.height, lipgloss.Height(box)), lipgloss.Center, lipgloss.Center, box)
}

// renderHeader renders the list header.
func (m TransactionListModel) renderHeader() string {
	title := m.theme.Title.Render("Transactions")

	status := fmt.Sprintf("%d transactions", len(m.transactions))
	if m.category != "" {
		status += fmt.Sprintf(" | Category: %q", m.category)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, m.theme.Subtitle.Render(status))
}

// buildTableRows builds rows for the table.
func (m TransactionListModel) buildTableRows() []table.Row {
	rows := make([]table.Row, 0, len(m.transactions))

	for i, txn := range m.transactions {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			txn.Date().Format(model.DateLayout),
			txn.Kind(),
			truncate(txn.Description(), 40),
			"$" + decimal.NewFromFloat(math.Abs(txn.Amount())).StringFixed(2),
			themes.GetCategoryIcon(txn.Category()) + " " + txn.Category(),
		})
	}

	return rows
}

// Resize updates the component size.
func (m *TransactionListModel) Resize(width, height int) {
	m.width = width
	m.height = height

	// Header: title + status + column headers with border = 4
	m.table.SetHeight(max(1, height-4))
	m.table.SetColumns(columnsFor(width))
	m.filterInput.Width = min(50, max(10, width-10))
}

// columnsFor sizes the table columns for the available width.
func columnsFor(width int) []table.Column {
	available := max(60, width-4)

	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Date", Width: 10},
		{Title: "Type", Width: 7},
		{Title: "Description", Width: max(15, int(float64(available)*0.35))},
		{Title: "Amount", Width: 12},
		{Title: "Category", Width: max(12, int(float64(available)*0.2))},
	}
}

// Helper to truncate strings.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
