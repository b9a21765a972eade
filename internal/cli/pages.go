package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dori/tackle/internal/app"
	"github.com/dori/tackle/internal/model"
	"github.com/dori/tackle/internal/ui/theme"
	"github.com/dori/tackle/internal/views"
)

type page struct {
	use     string
	aliases []string
	short   string
	view    model.View
}

var pages = []page{
	{"inbox", nil, "Open problems in the inbox", model.ViewInbox},
	{"today", nil, "Overdue, due today and marked for today", model.ViewToday},
	{"week", []string{"this-week"}, "Due this week or marked for this week", model.ViewThisWeek},
	{"upcoming", nil, "Everything due after today, by date", model.ViewUpcoming},
	{"next", []string{"next-actions"}, "Open problems with nothing left to break down", model.ViewNextActions},
	{"unfinished", nil, "Open problems", model.ViewUnfinished},
}

func newPageCmd(a *App, p page) *cobra.Command {
	return &cobra.Command{
		Use:     p.use,
		Aliases: p.aliases,
		Short:   p.short,
		Args:    cobra.NoArgs,
		RunE: a.withApp(func(cmd *cobra.Command, _ []string, ta *app.App) error {
			return renderView(cmd.OutOrStdout(), ta.Store.Snapshot(), p.view, a.now())
		}),
	}
}

func newSolvedCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "solved",
		Short: "Problems solved this week, latest first",
		Args:  cobra.NoArgs,
		RunE: a.withApp(func(cmd *cobra.Command, _ []string, ta *app.App) error {
			styles := theme.Current.Styles
			entries := views.At(ta.Store.Snapshot(), a.now()).SolvedThisWeek()

			var b strings.Builder
			b.WriteString(pageHeader("Solved This Week", len(entries)) + "\n\n")
			if len(entries) == 0 {
				b.WriteString(styles.Label.Render(emptyNotice))
			}
			for i, e := range entries {
				if i > 0 {
					b.WriteString("\n")
				}
				b.WriteString(styles.DueDate.Render(e.Problem.CompletedAt.Local().Format("Mon 15:04")) + " " + entryRow(e))
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), b.String())
			return err
		}),
	}
}

func newRemindCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Send a desktop notification listing overdue problems",
		Args:  cobra.NoArgs,
		RunE: a.withApp(func(cmd *cobra.Command, _ []string, ta *app.App) error {
			pass := views.At(ta.Store.Snapshot(), a.now())
			overdue := views.Flatten(pass.State.Lists, pass.Clock.IsOverdue)

			names := make([]string, len(overdue))
			for i, e := range overdue {
				names[i] = e.Problem.Name
			}
			if len(names) > 0 {
				if err := ta.Notifier.SendOverdue(names); err != nil {
					ta.Logger.Printf("overdue notification: %v", err)
				}
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%d overdue\n", len(names))
			return err
		}),
	}
}
