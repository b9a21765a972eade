package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dori/tackle/internal/app"
	"github.com/dori/tackle/internal/model"
	"github.com/dori/tackle/internal/store"
)

func newSettingsCmd(a *App) *cobra.Command {
	var layout, defaultView string

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the layout and default page",
		Example: `  tackle settings
  tackle settings --layout two-columns --default-view today`,
		Args: cobra.NoArgs,
		RunE: a.withApp(func(cmd *cobra.Command, _ []string, ta *app.App) error {
			var patch store.SettingsPatch
			if cmd.Flags().Changed("layout") {
				l := model.Layout(layout)
				patch.Layout = &l
			}
			if cmd.Flags().Changed("default-view") {
				v := model.View(defaultView)
				patch.DefaultView = &v
			}
			if patch.Layout != nil || patch.DefaultView != nil {
				if err := ta.Store.UpdateSettings(cmd.Context(), patch); err != nil {
					return err
				}
			}

			s := ta.Store.Snapshot().Settings
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "layout:       %s\n", s.Layout)
			fmt.Fprintf(out, "default-view: %s\n", s.DefaultView)
			fmt.Fprintf(out, "backend:      %s\n", ta.Config.Backend)
			fmt.Fprintf(out, "data-dir:     %s\n", ta.Config.DataDir)
			if ta.Config.File != "" {
				fmt.Fprintf(out, "config:       %s\n", ta.Config.File)
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&layout, "layout", "", "single-column|two-columns")
	cmd.Flags().StringVar(&defaultView, "default-view", "", "inbox|today|this-week|upcoming|next-actions|unfinished")
	return cmd
}
