package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dori/tackle/internal/app"
	"github.com/dori/tackle/internal/model"
	"github.com/dori/tackle/internal/store"
	"github.com/dori/tackle/internal/ui/theme"
	"github.com/dori/tackle/internal/views"
)

func newAddCmd(a *App) *cobra.Command {
	var list, notes string
	var estimate int

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Quick-add a problem",
		Long: strings.TrimSpace(`
Quick-add a problem. The text may carry:

  Priority:  !today !week !later !recurring !someday
  Due date:  due:today due:tomorrow due:friday due:nextweek due:2024-01-15
  Parent:    ^<problem-id or prefix>   (adds a subproblem in the parent's list)
`),
		Example: `  tackle add "Buy groceries"
  tackle add "Review PR !today due:tomorrow" --list work
  tackle add "Write the intro ^3f2a"`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.withApp(func(cmd *cobra.Command, args []string, ta *app.App) error {
			st := ta.Store.Snapshot()
			q := parseQuickAdd(strings.Join(args, " "), model.DateOf(a.now()))
			q.Notes = notes
			if cmd.Flags().Changed("estimate") {
				q.EstimatedDuration = &estimate
			}

			var listID, parentID string
			if q.Parent != "" {
				if cmd.Flags().Changed("list") {
					return errors.New("--list and ^parent cannot be combined")
				}
				parent, err := findProblem(st, q.Parent)
				if err != nil {
					return err
				}
				listID, parentID = parent.List.ID, parent.Problem.ID
			} else {
				l, err := listByFlag(st, list)
				if err != nil {
					return err
				}
				listID = l.ID
			}

			p, err := ta.Store.AddProblem(cmd.Context(), listID, parentID, q.NewProblem)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created %s %s\n", shortID(p.ID), p.Name)
			if p.DueDate != nil {
				fmt.Fprintf(out, "Due: %s\n", views.FormatDueDate(*p.DueDate, model.DateOf(a.now())))
			}
			if p.Priority != model.PriorityLater {
				fmt.Fprintf(out, "Priority: %s\n", p.Priority)
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&list, "list", "l", "", "List id or name (default inbox)")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	cmd.Flags().IntVar(&estimate, "estimate", 0, "Estimated minutes")
	return cmd
}

func newShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <list|problem>",
		Short: "Show a whole list, or one problem in detail",
		Args:  cobra.ExactArgs(1),
		RunE: a.withApp(func(cmd *cobra.Command, args []string, ta *app.App) error {
			st := ta.Store.Snapshot()
			today := model.DateOf(a.now())

			if l, err := findList(st, args[0]); err == nil {
				tv := views.Filter([]model.List{*l}, func(*model.Problem) bool { return true })
				sections := treeSections(tv, today)
				if len(sections) == 0 {
					sections = []string{theme.Current.Styles.Header.Render(l.Title())}
				}
				if l.Description != "" {
					sections[0] += "\n" + theme.Current.Styles.Subtitle.Render(l.Description)
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(sections, "\n"))
				return err
			}

			e, err := findProblem(st, args[0])
			if err != nil {
				return err
			}
			return writeProblem(cmd.OutOrStdout(), e, today)
		}),
	}
}

func writeProblem(w io.Writer, e views.Entry, today model.Date) error {
	styles := theme.Current.Styles
	p := e.Problem

	var b strings.Builder
	b.WriteString(styles.Breadcrumb.Render(e.Breadcrumb()) + "\n")
	b.WriteString(styles.Title.Render(p.Name) + "\n\n")

	field := func(label, value string) {
		b.WriteString(styles.Label.Render(fmt.Sprintf("%-10s", label)) + " " + value + "\n")
	}
	field("ID", p.ID)
	field("Status", string(p.Status))
	field("Priority", string(p.Priority))
	if p.DueDate != nil {
		field("Due", p.DueDate.String()+" ("+views.FormatDueDate(*p.DueDate, today)+")")
	}
	if p.EstimatedDuration != nil {
		field("Estimate", fmt.Sprintf("%dm", *p.EstimatedDuration))
	}
	field("Time", fmt.Sprintf("%s in %d sessions", views.FormatDuration(p.TotalTime), len(p.Sessions)))
	if p.CompletedAt != nil {
		field("Solved", p.CompletedAt.Format("2006-01-02 15:04"))
	}
	if p.Notes != "" {
		b.WriteString("\n" + p.Notes + "\n")
	}
	if len(p.Subproblems) > 0 {
		b.WriteString("\n" + styles.Subtitle.Render("Subproblems"))
		writeNodes(&b, allNodes(p.Subproblems), 1, today)
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func allNodes(ps []model.Problem) []views.Node {
	nodes := make([]views.Node, 0, len(ps))
	for i := range ps {
		nodes = append(nodes, views.Node{Problem: &ps[i], Match: true, Children: allNodes(ps[i].Subproblems)})
	}
	return nodes
}

func newEditCmd(a *App) *cobra.Command {
	var (
		name, notes, due, priority, status string
		noDue                              bool
		estimate                           int
	)

	cmd := &cobra.Command{
		Use:   "edit <problem>",
		Short: "Change fields of a problem",
		Args:  cobra.ExactArgs(1),
		RunE: a.withApp(func(cmd *cobra.Command, args []string, ta *app.App) error {
			e, err := findProblem(ta.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}

			var patch store.ProblemPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("notes") {
				patch.Notes = &notes
			}
			if flags.Changed("due") {
				d, ok := parseNaturalDate(due, model.DateOf(a.now()))
				if !ok {
					return fmt.Errorf("cannot parse due date %q", due)
				}
				patch.DueDate = &d
			}
			patch.ClearDueDate = noDue
			if flags.Changed("priority") {
				p := model.Priority(priority)
				if parsed, ok := parsePriority(priority); ok {
					p = parsed
				}
				patch.Priority = &p
			}
			if flags.Changed("status") {
				setStatus(&patch, model.Status(status))
			}
			if flags.Changed("estimate") {
				patch.EstimatedDuration = &estimate
			}

			return ta.Store.UpdateProblem(cmd.Context(), e.List.ID, e.Problem.ID, patch)
		}),
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	cmd.Flags().StringVar(&due, "due", "", "Due date (today, tomorrow, friday, 2024-01-15, ...)")
	cmd.Flags().BoolVar(&noDue, "no-due", false, "Remove the due date")
	cmd.Flags().StringVar(&priority, "priority", "", "today|this_week|later|recurring|someday")
	cmd.Flags().StringVar(&status, "status", "", "to_solve|solving|blocked|ongoing|solved")
	cmd.Flags().IntVar(&estimate, "estimate", 0, "Estimated minutes")
	cmd.MarkFlagsMutuallyExclusive("due", "no-due")
	return cmd
}

// newDoneCmd builds "done" or, with completed false, "undone"
func newDoneCmd(a *App, completed bool) *cobra.Command {
	use, short, verb := "done", "Mark problems solved", "Solved"
	if !completed {
		use, short, verb = "undone", "Mark problems not solved", "Reopened"
	}

	return &cobra.Command{
		Use:   use + " <problem>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: a.withApp(func(cmd *cobra.Command, args []string, ta *app.App) error {
			for _, arg := range args {
				e, err := findProblem(ta.Store.Snapshot(), arg)
				if err != nil {
					return err
				}
				c := completed
				if err := ta.Store.UpdateProblem(cmd.Context(), e.List.ID, e.Problem.ID, store.ProblemPatch{Completed: &c}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, e.Problem.Name)
			}
			return nil
		}),
	}
}

func newStatusCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:       "status <problem> <status>",
		Short:     "Set a problem's status",
		Args:      cobra.ExactArgs(2),
		ValidArgs: statusNames(),
		Long: `Set a problem's status. "solved" also marks the problem done; any other
status on a solved problem reopens it.`,
		RunE: a.withApp(func(cmd *cobra.Command, args []string, ta *app.App) error {
			e, err := findProblem(ta.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			var patch store.ProblemPatch
			setStatus(&patch, model.Status(args[1]))
			return ta.Store.UpdateProblem(cmd.Context(), e.List.ID, e.Problem.ID, patch)
		}),
	}
}

// setStatus keeps completed in step with the solved status
func setStatus(patch *store.ProblemPatch, s model.Status) {
	done := s == model.StatusSolved
	patch.Completed = &done
	patch.Status = &s
}

func statusNames() []string {
	out := make([]string, len(model.Statuses))
	for i, s := range model.Statuses {
		out[i] = string(s)
	}
	return out
}

func newRmCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <problem>",
		Aliases: []string{"delete"},
		Short:   "Delete a problem with all its subproblems",
		Args:    cobra.ExactArgs(1),
		RunE: a.withApp(func(cmd *cobra.Command, args []string, ta *app.App) error {
			e, err := findProblem(ta.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			if err := ta.Store.DeleteProblem(cmd.Context(), e.List.ID, e.Problem.ID); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", e.Problem.Name)
			return err
		}),
	}
}

func newMvCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <problem> <list>",
		Short: "Move a problem, with its subproblems, to the top of another list",
		Args:  cobra.ExactArgs(2),
		RunE: a.withApp(func(cmd *cobra.Command, args []string, ta *app.App) error {
			st := ta.Store.Snapshot()
			e, err := findProblem(st, args[0])
			if err != nil {
				return err
			}
			to, err := findList(st, args[1])
			if err != nil {
				return err
			}
			if err := ta.Store.MoveProblemToList(cmd.Context(), e.Problem.ID, e.List.ID, to.ID); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", e.Problem.Name, to.Title())
			return err
		}),
	}
}

func newReorderCmd(a *App) *cobra.Command {
	var list, parent string

	cmd := &cobra.Command{
		Use:   "reorder <problem>...",
		Short: "Put one level of problems in the given order (name every sibling once)",
		Long: strings.TrimSpace(`
Put one level of problems in the given order. Without --parent the top level
of --list (default inbox) is reordered; with --parent its subproblems are.
`),
		Args: cobra.MinimumNArgs(1),
		RunE: a.withApp(func(cmd *cobra.Command, args []string, ta *app.App) error {
			st := ta.Store.Snapshot()

			var listID, parentID string
			if parent != "" {
				e, err := findProblem(st, parent)
				if err != nil {
					return err
				}
				listID, parentID = e.List.ID, e.Problem.ID
			} else {
				l, err := listByFlag(st, list)
				if err != nil {
					return err
				}
				listID = l.ID
			}

			ids := make([]string, 0, len(args))
			for _, arg := range args {
				e, err := findProblem(st, arg)
				if err != nil {
					return err
				}
				ids = append(ids, e.Problem.ID)
			}
			return ta.Store.ReorderProblems(cmd.Context(), listID, parentID, ids)
		}),
	}

	cmd.Flags().StringVarP(&list, "list", "l", "", "List id or name (default inbox)")
	cmd.Flags().StringVar(&parent, "parent", "", "Reorder the subproblems of this problem")
	cmd.MarkFlagsMutuallyExclusive("list", "parent")
	return cmd
}
