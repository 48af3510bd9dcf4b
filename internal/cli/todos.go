package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaekwang-park/todo-app/internal/model"
	"github.com/jaekwang-park/todo-app/internal/store"
	"github.com/jaekwang-park/todo-app/internal/ui"
)

func (a *app) lsCommand() *cobra.Command {
	var (
		flagged  bool
		category string
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the todos of a category",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Refresh(cmd.Context()); err != nil {
				return err
			}
			a.store.SetCurrentCategoryID(category)
			a.store.SetFilterFlagged(flagged)

			st := a.store.Snapshot()
			out := cmd.OutOrStdout()
			visible := st.Visible()
			writeLine(out, "%s (%d)", st.CurrentCategory().Name, len(visible))
			if len(visible) == 0 {
				writeLine(out, "  no todos")
				return nil
			}
			for _, t := range visible {
				writeLine(out, "  %s", ui.TodoRow(t))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&flagged, "flagged", false, "show flagged todos only")
	cmd.Flags().StringVar(&category, "category", model.DefaultCategoryID, "category id")
	return cmd
}

func (a *app) addCommand() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "add TITLE...",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.store.SetCurrentCategoryID(category)
			todo, err := a.store.AddTodo(cmd.Context(), joinArgs(args))
			if err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), "%s", ui.Success("added "+todo.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", model.DefaultCategoryID, "category id")
	return cmd
}

type toggleFunc func(s *store.Store, ctx context.Context, id string) (model.Todo, error)

// toggleCommand builds a command that loads the todos and flips one flag of
// the todo named by its argument.
func (a *app) toggleCommand(use, short string, toggle toggleFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.FetchTodos(cmd.Context()); err != nil {
				return err
			}
			todo, err := toggle(a.store, cmd.Context(), args[0])
			if err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), "%s", ui.TodoRow(todo))
			return nil
		},
	}
}

func (a *app) doneCommand() *cobra.Command {
	return a.toggleCommand("done", "Toggle whether a todo is completed", (*store.Store).ToggleCompleted)
}

func (a *app) flagCommand() *cobra.Command {
	return a.toggleCommand("flag", "Toggle whether a todo is flagged", (*store.Store).ToggleFlagged)
}

func (a *app) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit ID TITLE...",
		Short: "Change the title of a todo",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.FetchTodos(cmd.Context()); err != nil {
				return err
			}
			todo, ok := a.store.Snapshot().Todo(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", store.ErrUnknownTodo, args[0])
			}
			todo.Title = joinArgs(args[1:])
			if todo.Title == "" {
				return store.ErrBlankTitle
			}

			updated, err := a.store.UpdateTodo(cmd.Context(), todo)
			if err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), "%s", ui.TodoRow(updated))
			return nil
		},
	}
}

func (a *app) rmCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.DeleteTodo(cmd.Context(), args[0]); err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), "%s", ui.Success("deleted "+args[0]))
			return nil
		},
	}
}
