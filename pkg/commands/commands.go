package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/jotty/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}
	so = &options.StoreOptions{}
)

func New() *cobra.Command {
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "jotty",
		Short: base.Wrap80("A day-by-day journal of events and tasks for the terminal."),
		Long: base.Wrap80("Each day has a list of events and a list of tasks. Run without a " +
			"subcommand to open the journal full screen on today."),
		Example: `
jotty
jotty --ephemeral
jotty -d ~/notes/journal.db show --on yesterday
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, on)
		},
	}
	options.AddOnArgs(cmd, on)
	options.AddStoreArgs(cmd, so)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addShow(topLevel)
	addMonth(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
}
