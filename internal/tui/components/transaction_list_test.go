package components

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/tui/themes"
)

func testKeys() ListKeys {
	return ListKeys{
		Filter:      key.NewBinding(key.WithKeys("/")),
		ClearFilter: key.NewBinding(key.WithKeys("c")),
		Delete:      key.NewBinding(key.WithKeys("x")),
	}
}

func testTransactions() []model.Transaction {
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return []model.Transaction{
		model.NewTransaction(1000, "Paycheck", "Salary", date),
		model.NewTransaction(-50, "Groceries", "Food", date),
		model.NewTransaction(-9.99, "Streaming service with a very long description indeed", "Entertainment", date),
	}
}

func TestNewTransactionList(t *testing.T) {
	m := NewTransactionList(testTransactions(), themes.Default, testKeys())

	assert.Equal(t, ModeNormal, m.Mode())
	assert.Len(t, m.Transactions(), 3)

	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "Paycheck", selected.Description())

	view := m.View()
	assert.Contains(t, view, "3 transactions")
	assert.Contains(t, view, "Description")
	assert.Contains(t, view, "$1000.00")
	assert.Contains(t, view, "$9.99")
}

func TestTransactionList_SetTransactionsClampsCursor(t *testing.T) {
	m := NewTransactionList(testTransactions(), themes.Default, testKeys())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "Entertainment", selected.Category())

	m.SetTransactions(testTransactions()[:1])
	selected, ok = m.Selected()
	require.True(t, ok)
	assert.Equal(t, "Paycheck", selected.Description())

	m.SetTransactions(nil)
	_, ok = m.Selected()
	assert.False(t, ok)
}

func TestTransactionList_FilterPrompt(t *testing.T) {
	m := NewTransactionList(testTransactions(), themes.Default, testKeys())
	m.SetCategory("Food")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	assert.Equal(t, ModeFilter, m.Mode())
	assert.Contains(t, m.View(), "Filter by Category")

	// The prompt opens empty, so Enter alone clears the active filter.
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, FilterRequestedMsg{}, cmd())
	assert.Equal(t, ModeNormal, m.Mode())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Salary")})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, FilterRequestedMsg{Category: "Salary"}, cmd())
}

func TestTransactionList_ClearFilterWithoutFilter(t *testing.T) {
	m := NewTransactionList(testTransactions(), themes.Default, testKeys())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	assert.Nil(t, cmd)
}

func TestTransactionList_Delete(t *testing.T) {
	m := NewTransactionList(testTransactions(), themes.Default, testKeys())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	require.NotNil(t, cmd)

	msg, ok := cmd().(DeleteRequestedMsg)
	require.True(t, ok)
	assert.Equal(t, "Groceries", msg.Transaction.Description())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "café au...", truncate("café au lait au lait", 10))
}
