package options

import (
	"github.com/spf13/cobra"
)

// IndexOptions
type IndexOptions struct {
	ShowIndex bool
}

func AddIndexArgs(cmd *cobra.Command, o *IndexOptions) {
	cmd.Flags().BoolVar(&o.ShowIndex, "index", false,
		"Print each item's position in its list.")
}
