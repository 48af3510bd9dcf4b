package cli

import (
	"github.com/spf13/cobra"

	"github.com/jaekwang-park/todo-app/internal/ui"
)

func (a *app) categoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with their todo counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Refresh(cmd.Context()); err != nil {
				return err
			}

			st := a.store.Snapshot()
			counts := make(map[string]int)
			for _, t := range st.Todos {
				counts[t.EffectiveCategoryID()]++
			}
			out := cmd.OutOrStdout()
			for _, c := range st.Categories {
				writeLine(out, "%s", ui.CategoryRow(c, counts[c.ID], c.ID == st.CurrentCategoryID))
			}
			return nil
		},
	}
}

func (a *app) categoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add NAME...",
		Short: "Add a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := a.store.AddCategory(cmd.Context(), joinArgs(args))
			if err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), "%s", ui.Success("added "+category.Name+" ("+category.ID+")"))
			return nil
		},
	})
	return cmd
}

func (a *app) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.Run(cmd.Context(), a.store)
		},
	}
}
