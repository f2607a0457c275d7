// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette.
var (
	PrimaryColor = lipgloss.Color("#2ECC71")
	IncomeColor  = lipgloss.Color("#4ECDC4")
	ExpenseColor = lipgloss.Color("#FF6B6B")
	WarningColor = lipgloss.Color("#FFE66D")
	InfoColor    = lipgloss.Color("#95E1D3")
	SubtleColor  = lipgloss.Color("#666666")
	RuleColor    = lipgloss.Color("#333")
)

var (
	// TitleStyle is used for command and menu headings.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).MarginBottom(1)

	// SubtitleStyle is used for secondary headings.
	SubtitleStyle = lipgloss.NewStyle().Foreground(SubtleColor).MarginBottom(1)

	// SuccessStyle, WarningStyle and ErrorStyle color outcome messages.
	SuccessStyle = lipgloss.NewStyle().Foreground(IncomeColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ExpenseColor)

	InfoStyle   = lipgloss.NewStyle().Foreground(InfoColor)
	BoldStyle   = lipgloss.NewStyle().Bold(true)
	PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)

	// IncomeStyle and ExpenseStyle color amounts by sign.
	IncomeStyle  = lipgloss.NewStyle().Foreground(IncomeColor)
	ExpenseStyle = lipgloss.NewStyle().Foreground(ExpenseColor)

	// TableHeaderStyle underlines the header row of ledger tables.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(RuleColor)

	// TableCellStyle pads ledger table cells.
	TableCellStyle = lipgloss.NewStyle().PaddingRight(2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	LedgerIcon  = "💰"
	FolderIcon  = "🗄️"
)

func withIcon(style lipgloss.Style, icon, message string) string {
	return style.Render(icon + " " + message)
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return withIcon(SuccessStyle, SuccessIcon, message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return withIcon(ErrorStyle, ErrorIcon, message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return withIcon(WarningStyle, WarningIcon, message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return withIcon(InfoStyle, InfoIcon, message)
}

// FormatTitle formats a heading with the ledger icon.
func FormatTitle(title string) string {
	return withIcon(TitleStyle, LedgerIcon, title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt)
}

// StyleAmount colors text by the sign of amount.
func StyleAmount(amount float64, text string) string {
	if amount < 0 {
		return ExpenseStyle.Render(text)
	}
	return IncomeStyle.Render(text)
}
