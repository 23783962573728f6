// Command gcbarrier is the CLI for the Pure-Go GC barrier runtime.
//
// Usage:
//
//	gcbarrier demo scenario.yaml   # Run a copy scenario through the runtime
//	gcbarrier doctor               # Check the host module's go.mod
//	gcbarrier version              # Show version information
package main

import (
	"os"

	"github.com/kolkov/gcbarrier/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
