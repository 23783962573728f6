// Package cli implements the gcbarrier command line tool.
//
// The tool exercises the barrier runtime without writing Go against the
// library: `demo` runs a YAML scenario through the dispatcher, `doctor`
// checks that the host module can build the library at all.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kolkov/gcbarrier/barrier"
)

// NewRootCommand creates the gcbarrier root command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gcbarrier",
		Short: "Pure-Go GC barrier runtime tool",
		Long: `gcbarrier exercises the Pure-Go heap-access barrier runtime.

Scenarios are YAML files declaring a type hierarchy, reference arrays and a
list of decorated copies; demo runs them through the selected barrier
strategy and reports every partial-copy outcome.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		NewDemoCommand(),
		NewDoctorCommand(),
		newVersionCommand(),
	)
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gcbarrier version %s (requires go >= %s)\n",
				barrier.Version, barrier.MinGoVersion)
		},
	}
}
