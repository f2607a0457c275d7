package cli

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
)

// ErrInvalidAmount is returned when an amount cannot be parsed.
var ErrInvalidAmount = errors.New("invalid amount")

// FormatMoney renders an amount with two decimal places and no currency sign.
func FormatMoney(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// ParseAmount parses user input such as "-12.50" or "$1,000" into an amount.
func ParseAmount(input string) (float64, error) {
	cleaned := strings.TrimSpace(input)
	cleaned = strings.Replace(cleaned, "$", "", 1)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("%w: amount is required", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, input)
	}
	return d.InexactFloat64(), nil
}

// FormatTransactionLine renders a numbered transaction the way the console lists it:
//
//	1. [Expense] Groceries - $50.00 (Food) - 2025-03-02
func FormatTransactionLine(index int, t model.Transaction, withCategory bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. [%s] %s - $%s", index, t.Kind(), t.Description(), FormatMoney(math.Abs(t.Amount())))
	if withCategory {
		fmt.Fprintf(&b, " (%s)", t.Category())
	}
	fmt.Fprintf(&b, " - %s", t.Date().Format(model.DateLayout))
	return b.String()
}

// RenderTransactionTable writes transactions as an aligned table with 1-based indexes.
func RenderTransactionTable(w io.Writer, transactions []model.Transaction) error {
	if len(transactions) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No transactions found."))
		return err
	}

	headers := []string{"#", "Type", "Description", "Amount", "Category", "Date"}
	rows := make([][]string, 0, len(transactions))
	for i, t := range transactions {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			t.Kind(),
			t.Description(),
			"$" + FormatMoney(math.Abs(t.Amount())),
			t.Category(),
			t.Date().Format(model.DateLayout),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := lipgloss.Width(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	headerCells := make([]string, len(headers))
	for i, h := range headers {
		headerCells[i] = TableCellStyle.Width(widths[i] + 2).Render(h)
	}
	if _, err := fmt.Fprintln(w, TableHeaderStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, headerCells...))); err != nil {
		return err
	}

	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			style := TableCellStyle.Width(widths[i] + 2)
			if i == 3 {
				cell = StyleAmount(transactions[r].Amount(), cell)
			}
			cells[i] = style.Render(cell)
		}
		if _, err := fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, cells...)); err != nil {
			return err
		}
	}

	return nil
}

// RenderSummary writes the financial summary: totals, balance remark, count and,
// when present, the per-category breakdown.
func RenderSummary(w io.Writer, s ledger.Summary) error {
	remark := SuccessStyle.Render("You're in the positive!")
	if !s.Positive() {
		remark = WarningStyle.Render("You're spending more than you earn.")
	}

	lines := []string{
		fmt.Sprintf("Total Income: $%s", FormatMoney(s.Income)),
		fmt.Sprintf("Total Expenses: $%s", FormatMoney(math.Abs(s.Expenses))),
		fmt.Sprintf("Current Balance: $%s", FormatMoney(s.Balance)),
		remark,
		fmt.Sprintf("Total Transactions: %d", s.Count),
	}

	if len(s.ByCategory) > 0 {
		lines = append(lines, "", BoldStyle.Render("By category:"))
		for _, c := range s.ByCategory {
			lines = append(lines, fmt.Sprintf("  %-20s %s  (%d)",
				c.Category, StyleAmount(c.Total, "$"+FormatMoney(c.Total)), c.Count))
		}
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}
