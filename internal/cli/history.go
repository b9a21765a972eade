package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/dori/tackle/internal/app"
	"github.com/dori/tackle/internal/db"
	"github.com/dori/tackle/internal/model"
	"github.com/dori/tackle/internal/store"
	"github.com/dori/tackle/internal/views"
)

var errNoHistory = errors.New("history is only kept by the sqlite backend")

func newHistoryCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: fmt.Sprintf("List the last %d saved states", db.HistoryLimit),
		Args:  cobra.NoArgs,
		RunE: a.withApp(func(cmd *cobra.Command, _ []string, ta *app.App) error {
			if ta.DB == nil {
				return errNoHistory
			}
			revs, err := ta.DB.History(cmd.Context(), store.StateKey)
			if err != nil {
				return err
			}
			if len(revs) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No history yet.")
				return err
			}

			bold := color.New(color.Bold)
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(bold.Sprint("REV"), bold.Sprint("REPLACED"), bold.Sprint("SIZE"))
			for _, r := range revs {
				tbl.AddRow(r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), fmt.Sprintf("%d B", r.Size))
			}
			tbl.RightAlign(0)
			tbl.RightAlign(2)

			_, err = fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return err
		}),
	}

	cmd.AddCommand(newHistoryRestoreCmd(a))
	return cmd
}

func newHistoryRestoreCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <rev>",
		Short: "Bring back a saved state; the current one goes to the history",
		Args:  cobra.ExactArgs(1),
		RunE: a.withApp(func(cmd *cobra.Command, args []string, ta *app.App) error {
			if ta.DB == nil {
				return errNoHistory
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid revision %q", args[0])
			}

			data, err := ta.DB.Restore(cmd.Context(), store.StateKey, id)
			if err != nil {
				return err
			}
			st, err := store.Decode(data)
			if err != nil {
				return fmt.Errorf("revision %d is not readable: %w", id, err)
			}

			problems := 0
			for _, l := range st.Lists {
				problems += views.CountMatching(l.Problems, func(*model.Problem) bool { return true })
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Restored revision %d: %d lists, %d problems\n", id, len(st.Lists), problems)
			return err
		}),
	}
}
