package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"taskgenie/internal/tasklist"
)

// Run starts the full-screen UI and blocks until the user quits or ctx is
// cancelled. Either way the presenter's store is closed on return so late
// responses are dropped.
func Run(ctx context.Context, p *tasklist.Presenter, notes <-chan tasklist.Notification, opts ...tea.ProgramOption) error {
	defer p.Store().Close()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(ctx, p, notes), opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
