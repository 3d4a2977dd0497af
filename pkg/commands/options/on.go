package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/jotty/pkg/timeutil"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2020-2-28", --on="2/28", --on=yesterday or --on=+1w.`)
}

// GetOn resolves the flag against today; empty means today.
func (o *OnOptions) GetOn(today timeutil.Day) (timeutil.Day, error) {
	return timeutil.ParseDay(o.OnString, today)
}
