package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/jotty/pkg/commands/options"
	"tableflip.dev/jotty/pkg/runner/show"
	"tableflip.dev/jotty/pkg/timeutil"
)

func addShow(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	io := &options.IndexOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the events and tasks of a day",
		Example: `
jotty show
jotty show --on yesterday
jotty show --on 2025-10-19 --json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			day, err := on.GetOn(timeutil.Today())
			if err != nil {
				return oo.HandleError(err)
			}
			s, err := so.Open(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			sh := show.Show{
				Journal:   s.Journal,
				On:        day,
				JSON:      oo.JSON,
				ShowIndex: io.ShowIndex,
				Out:       cmd.OutOrStdout(),
			}
			return oo.HandleError(sh.Do(context.Background()))
		},
	}
	options.AddOnArgs(cmd, on)
	options.AddIndexArgs(cmd, io)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
