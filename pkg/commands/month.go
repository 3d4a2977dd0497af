package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/jotty/pkg/commands/options"
	"tableflip.dev/jotty/pkg/runner/month"
	"tableflip.dev/jotty/pkg/timeutil"
)

func addMonth(topLevel *cobra.Command) {
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Print a calendar with the days that have entries in bold",
		Example: `
jotty month
jotty month --on 2025-12-1
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			today := timeutil.Today()
			day, err := on.GetOn(today)
			if err != nil {
				return err
			}
			s, err := so.Open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			m := month.Month{Journal: s.Journal, On: day, Today: today, Out: cmd.OutOrStdout()}
			return m.Do(context.Background())
		},
	}
	options.AddOnArgs(cmd, on)

	topLevel.AddCommand(cmd)
}
