package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the kairu release, overridden at build time with -ldflags.
var Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/kairu"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the kairu version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "kairu v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
