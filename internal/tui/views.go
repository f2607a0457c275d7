package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// View renders the browser.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width < 40 || m.height < 10 {
		return "Terminal too small"
	}

	sections := []string{
		m.transactionList.View(),
		m.summary.View(),
		m.renderStatus(),
	}
	if m.config.ShowHelp {
		sections = append(sections, m.help.View(m.keymap))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatus renders the transient status line.
func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusIsError {
		return m.theme.StatusError.Render(m.status)
	}
	return m.theme.StatusSuccess.Render(m.status)
}
