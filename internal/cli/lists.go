package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/dori/tackle/internal/app"
	"github.com/dori/tackle/internal/model"
	"github.com/dori/tackle/internal/store"
	"github.com/dori/tackle/internal/views"
)

func newListsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Show lists with their open counts",
		Args:  cobra.NoArgs,
		RunE: a.withApp(func(cmd *cobra.Command, _ []string, ta *app.App) error {
			st := ta.Store.Snapshot()
			counts := views.ListCounts(st)
			bold := color.New(color.Bold)

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(bold.Sprint("ID"), bold.Sprint("LIST"), bold.Sprint("OPEN"), bold.Sprint("DONE"))
			for i := range st.Lists {
				l := &st.Lists[i]
				p := views.ListProgress(l)
				tbl.AddRow(shortID(l.ID), l.Title(), counts[l.ID], fmt.Sprintf("%d/%d (%d%%)", p.Completed, p.Total, p.Percent()))
			}
			tbl.RightAlign(2)

			_, err := fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return err
		}),
	}

	cmd.AddCommand(newListsAddCmd(a))
	cmd.AddCommand(newListsRenameCmd(a))
	cmd.AddCommand(newListsDescribeCmd(a))
	cmd.AddCommand(newListsDeleteCmd(a))
	cmd.AddCommand(newListsReorderCmd(a))
	return cmd
}

func newListsAddCmd(a *App) *cobra.Command {
	var emoji, description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a list",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.withApp(func(cmd *cobra.Command, args []string, ta *app.App) error {
			l, err := ta.Store.AddList(cmd.Context(), store.NewList{
				Name:        strings.Join(args, " "),
				Emoji:       emoji,
				Description: description,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created list %s %s\n", shortID(l.ID), l.Title())
			return err
		}),
	}

	cmd.Flags().StringVar(&emoji, "emoji", "", "Emoji shown before the name")
	cmd.Flags().StringVar(&description, "description", "", "List description")
	return cmd
}

func newListsRenameCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <list> <name>",
		Short: "Rename a list",
		Args:  cobra.MinimumNArgs(2),
		RunE: a.withApp(func(cmd *cobra.Command, args []string, ta *app.App) error {
			l, err := findList(ta.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			name := strings.Join(args[1:], " ")
			return ta.Store.UpdateList(cmd.Context(), l.ID, store.ListPatch{Name: &name})
		}),
	}
}

func newListsDescribeCmd(a *App) *cobra.Command {
	var emoji string

	cmd := &cobra.Command{
		Use:   "describe <list> [description]",
		Short: "Set a list's description and emoji",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.withApp(func(cmd *cobra.Command, args []string, ta *app.App) error {
			l, err := findList(ta.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			var patch store.ListPatch
			if len(args) > 1 {
				d := strings.Join(args[1:], " ")
				patch.Description = &d
			}
			if cmd.Flags().Changed("emoji") {
				patch.Emoji = &emoji
			}
			return ta.Store.UpdateList(cmd.Context(), l.ID, patch)
		}),
	}

	cmd.Flags().StringVar(&emoji, "emoji", "", "Emoji shown before the name (empty to remove)")
	return cmd
}

func newListsDeleteCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <list>",
		Short: "Delete a list and every problem in it",
		Args:  cobra.ExactArgs(1),
		RunE: a.withApp(func(cmd *cobra.Command, args []string, ta *app.App) error {
			l, err := findList(ta.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			title := l.Title()
			if err := ta.Store.DeleteList(cmd.Context(), l.ID); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted list %s\n", title)
			return err
		}),
	}
}

func newListsReorderCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <list>...",
		Short: "Put the lists in the given order (name every list once)",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.withApp(func(cmd *cobra.Command, args []string, ta *app.App) error {
			st := ta.Store.Snapshot()
			ids := make([]string, 0, len(args))
			for _, arg := range args {
				l, err := findList(st, arg)
				if err != nil {
					return err
				}
				ids = append(ids, l.ID)
			}
			return ta.Store.ReorderLists(cmd.Context(), ids)
		}),
	}
}

// listByFlag resolves --list, defaulting to the inbox
func listByFlag(st *model.AppState, arg string) (*model.List, error) {
	if arg == "" {
		arg = model.InboxID
	}
	return findList(st, arg)
}
