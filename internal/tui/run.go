package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/tally/internal/ledger"
)

// Run starts the browser on l and blocks until the user quits or ctx is
// canceled. It returns the number of transactions deleted during the session
// so the caller can decide whether to persist.
func Run(ctx context.Context, l *ledger.Ledger, opts ...Option) (int, error) {
	if l == nil {
		return 0, errors.New("ledger is required")
	}

	before := l.Count()
	m := New(l, opts...)

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if m.config.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	_, err := tea.NewProgram(m, programOpts...).Run()
	removed := before - l.Count()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return removed, ctx.Err()
		}
		return removed, fmt.Errorf("TUI error: %w", err)
	}

	return removed, nil
}
