package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/tui/themes"
)

// SummaryModel renders the ledger totals under the table.
type SummaryModel struct {
	theme       themes.Theme
	summary     ledger.Summary
	progressBar progress.Model
	category    string
	categorySum float64
	width       int
}

// NewSummaryModel creates a new summary footer.
func NewSummaryModel(theme themes.Theme) SummaryModel {
	prog := progress.New(progress.WithDefaultGradient())
	prog.ShowPercentage = false
	prog.Width = 20

	return SummaryModel{
		theme:       theme,
		progressBar: prog,
	}
}

// SetSummary replaces the totals shown.
func (m *SummaryModel) SetSummary(s ledger.Summary) {
	m.summary = s
}

// SetFilter shows the total of the filtered category. An empty category hides it.
func (m *SummaryModel) SetFilter(category string, total float64) {
	m.category = category
	m.categorySum = total
}

// Resize updates the component width.
func (m *SummaryModel) Resize(width int) {
	m.width = width
	m.progressBar.Width = min(max(width/4, 10), 30)
}

// SpentRatio is the share of income consumed by expenses, capped at 1.
func (m SummaryModel) SpentRatio() float64 {
	if m.summary.Income <= 0 {
		if m.summary.Expenses < 0 {
			return 1
		}
		return 0
	}
	return min(1, -m.summary.Expenses/m.summary.Income)
}

// View renders the summary footer.
func (m SummaryModel) View() string {
	balance := m.money(m.summary.Balance)
	if m.summary.Positive() {
		balance = m.theme.Income.Render(balance)
	} else {
		balance = m.theme.Expense.Render(balance)
	}

	parts := []string{
		fmt.Sprintf("Income %s", m.theme.Income.Render(m.money(m.summary.Income))),
		fmt.Sprintf("Expenses %s", m.theme.Expense.Render(m.money(-m.summary.Expenses))),
		fmt.Sprintf("Balance %s", balance),
		fmt.Sprintf("%d total", m.summary.Count),
	}
	line := strings.Join(parts, "  │  ")

	spent := lipgloss.JoinHorizontal(lipgloss.Center,
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Spent "),
		m.progressBar.ViewAs(m.SpentRatio()),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(fmt.Sprintf(" %3.0f%%", m.SpentRatio()*100)),
	)

	rows := []string{line, spent}
	if m.category != "" {
		rows = append(rows, m.theme.Subtitle.Render(
			fmt.Sprintf("%s total: %s", m.category, m.money(m.categorySum))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m SummaryModel) money(amount float64) string {
	return "$" + decimal.NewFromFloat(amount).StringFixed(2)
}
