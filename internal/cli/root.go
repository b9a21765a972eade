// Package cli is tackle's command line: one cobra command per store
// operation and per derived page.
package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dori/tackle/internal/app"
	"github.com/dori/tackle/internal/config"
	"github.com/dori/tackle/internal/ui/theme"
)

// App carries what every command needs: the configuration source and a
// clock. The application itself is opened per command, since it holds the
// data directory lock.
type App struct {
	v   *viper.Viper
	now func() time.Time
}

// NewRootCmd builds the tackle command tree
func NewRootCmd() *cobra.Command {
	a := &App{v: config.New(), now: time.Now}

	cmd := &cobra.Command{
		Use:          "tackle",
		Short:        "Break problems down, see what is due, focus on one",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Show the default page (inbox unless changed with 'tackle settings')
  tackle

  # Capture something
  tackle add "Call the plumber !today due:fri"

  # Break it down
  tackle add "Find the invoice ^3f2a"

  # Work on it
  tackle focus 3f2a --mode pomodoro
`),
		Args: cobra.NoArgs,
		RunE: a.withApp(func(cmd *cobra.Command, _ []string, ta *app.App) error {
			v := ta.Store.Snapshot().Settings.DefaultView
			return renderView(cmd.OutOrStdout(), ta.Store.Snapshot(), v, a.now())
		}),
	}

	cmd.PersistentFlags().String("data-dir", "", "Data directory (default ~/.local/share/tackle)")
	cmd.PersistentFlags().String("backend", "", "Storage backend (sqlite|diskv)")
	cmd.PersistentFlags().String("theme", "", "Color theme (nord|dracula|gruvbox|catppuccin)")
	_ = a.v.BindPFlag("data_dir", cmd.PersistentFlags().Lookup("data-dir"))
	_ = a.v.BindPFlag("backend", cmd.PersistentFlags().Lookup("backend"))
	_ = a.v.BindPFlag("theme", cmd.PersistentFlags().Lookup("theme"))

	cmd.AddCommand(newListsCmd(a))
	cmd.AddCommand(newAddCmd(a))
	cmd.AddCommand(newShowCmd(a))
	cmd.AddCommand(newEditCmd(a))
	cmd.AddCommand(newDoneCmd(a, true))
	cmd.AddCommand(newDoneCmd(a, false))
	cmd.AddCommand(newStatusCmd(a))
	cmd.AddCommand(newRmCmd(a))
	cmd.AddCommand(newMvCmd(a))
	cmd.AddCommand(newReorderCmd(a))
	for _, p := range pages {
		cmd.AddCommand(newPageCmd(a, p))
	}
	cmd.AddCommand(newSolvedCmd(a))
	cmd.AddCommand(newRemindCmd(a))
	cmd.AddCommand(newSettingsCmd(a))
	cmd.AddCommand(newFocusCmd(a))
	cmd.AddCommand(newHistoryCmd(a))
	addVersion(cmd)

	return cmd
}

// open loads the configuration and opens the application
func (a *App) open(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load(a.v)
	if err != nil {
		return nil, err
	}
	if t, ok := theme.ByName(cfg.Theme); ok {
		theme.SetTheme(t)
	} else {
		return nil, fmt.Errorf("unknown theme %q", cfg.Theme)
	}
	return app.New(cmd.Context(), cfg)
}

// withApp opens the application around fn and closes it afterwards
func (a *App) withApp(fn func(cmd *cobra.Command, args []string, ta *app.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		ta, err := a.open(cmd)
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, ta.Close())
		}()
		return fn(cmd, args, ta)
	}
}
