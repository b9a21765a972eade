package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dori/tackle/internal/app"
	"github.com/dori/tackle/internal/focus"
	"github.com/dori/tackle/internal/ui"
	"github.com/dori/tackle/internal/views"
)

func newFocusCmd(a *App) *cobra.Command {
	var mode string
	var plain bool

	cmd := &cobra.Command{
		Use:   "focus <problem>",
		Short: "Work on one problem with a timer; time spent is logged to it",
		Long: `Work on one problem with a timer. Choose five-minute, pomodoro or stopwatch
mode; every running stretch is logged to the problem as a session.

--plain skips the full-screen view: the timer starts right away and prints
one line per second until interrupted with ctrl+c.`,
		Example: `  tackle focus 3f2a
  tackle focus 3f2a --mode pomodoro
  tackle focus 3f2a --mode stopwatch --plain`,
		Args: cobra.ExactArgs(1),
		RunE: a.withApp(func(cmd *cobra.Command, args []string, ta *app.App) error {
			e, err := findProblem(ta.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}

			sess := focus.NewSession(*e.Problem, ta.Store,
				focus.WithNotifier(ta.Notifier),
				focus.WithLogger(ta.Logger),
				focus.WithClock(a.now),
			)
			if mode != "" {
				m, err := focus.ParseMode(mode)
				if err != nil {
					return err
				}
				if err := sess.SelectMode(m); err != nil {
					return err
				}
			}

			if plain {
				return runPlainFocus(cmd, sess, e)
			}
			return ui.RunFocus(cmd.Context(), ta.Store, e, sess)
		}),
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "five-minute|pomodoro|stopwatch")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the timer instead of opening the full-screen view")
	return cmd
}

// runPlainFocus runs the session without a TUI until a signal arrives
func runPlainFocus(cmd *cobra.Command, sess *focus.Session, e views.Entry) error {
	out := cmd.OutOrStdout()
	if sess.Read(sess.Now()).Mode == focus.ModeUnselected {
		if err := sess.SelectMode(focus.ModeStopwatch); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sess.Toggle(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "Focusing on %s (ctrl+c to stop)\n", e.Breadcrumb())

	err := sess.Run(ctx, func(r focus.Reading) {
		line := fmt.Sprintf("%s %s", r.Mode, views.FormatClock(r.Clock))
		if r.Mode == focus.ModePomodoro {
			line += fmt.Sprintf(" %s #%d", r.Phase, r.Cycles)
		}
		fmt.Fprintf(out, "\r%s [%s]   ", line, r.State)

		// Nobody is there to press a key, so phases roll on by themselves
		// and a finished five-minute countdown ends the session.
		switch {
		case r.Mode == focus.ModePomodoro && r.State == focus.Paused:
			if err := sess.Toggle(ctx); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "\n%v\n", err)
			}
		case r.Mode == focus.ModeFiveMinute && r.State == focus.Idle && !r.Closed:
			if err := sess.Exit(ctx); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "\n%v\n", err)
			}
		}
	})

	r := sess.Read(sess.Now())
	fmt.Fprintf(out, "\nLogged %s\n", views.FormatDuration(r.Tracked))
	return err
}
