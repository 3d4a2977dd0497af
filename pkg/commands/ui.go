package commands

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/jotty/pkg/commands/options"
	"tableflip.dev/jotty/pkg/runner/show"
	"tableflip.dev/jotty/pkg/runner/ui"
	"tableflip.dev/jotty/pkg/timeutil"
)

func addUI(topLevel *cobra.Command) {
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the full screen journal",
		Example: `
jotty ui
jotty ui --on 2/28
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, on)
		},
	}
	options.AddOnArgs(cmd, on)

	topLevel.AddCommand(cmd)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runUI(cmd *cobra.Command, on *options.OnOptions) error {
	day, err := on.GetOn(timeutil.Today())
	if err != nil {
		return err
	}
	s, err := so.Open(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
		s.Logger.Warn("not a terminal, printing instead of opening the ui")
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "jotty: not a terminal, printing the day instead")
		sh := show.Show{Journal: s.Journal, On: day, Out: cmd.OutOrStdout()}
		return sh.Do(cmd.Context())
	}

	u := ui.UI{Journal: s.Journal, On: day, Logger: s.Logger}
	return u.Do(cmd.Context())
}
