package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusTimeout is how long a status message stays on screen.
const statusTimeout = 3 * time.Second

// clearStatusMsg removes the status line if it still shows message id.
type clearStatusMsg struct {
	id int
}

func clearStatusAfter(id int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}
