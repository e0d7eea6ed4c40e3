package cmd

import (
	"github.com/spf13/cobra"

	"github.com/whit3rabbit/relang/pkg/api"
)

// inspectCmd prints the parsed tree of each pattern without
// enumerating anything: group numbering, quantifiers, charset
// contents and per-node cardinalities.
var inspectCmd = &cobra.Command{
	Use:   "inspect <pattern>...",
	Short: "Print the parsed form of a pattern without generating words.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, pattern := range args {
			g, err := api.New(pattern, api.Options{})
			if err != nil {
				return err
			}
			g.FprintTree(cmd.OutOrStdout())
		}
		return nil
	},
}
