package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"lifetracker/internal/quest"
)

// RunBoard opens the interactive day board.
func RunBoard(ctx context.Context, svc *quest.Service, out io.Writer) error {
	m := newBoardModel(ctx, svc)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
