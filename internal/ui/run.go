package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jaekwang-park/todo-app/internal/store"
)

// Run starts the terminal view and blocks until the user quits or ctx is
// done. Store changes reach the program through a subscription.
func Run(ctx context.Context, s *store.Store, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(NewModel(ctx, s), opts...)

	unsubscribe := s.Subscribe(func(st store.State) {
		p.Send(stateMsg(st))
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
