package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rpncalc/pkg/rpncalc"
)

const modulePath = "github.com/mesh-intelligence/rpncalc"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the rpncalc version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "rpncalc v%s\nmodule: %s\ngo: %s\n",
				rpncalc.Version, modulePath, runtime.Version())
			return nil
		},
	}
}
