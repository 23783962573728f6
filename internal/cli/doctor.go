package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/semver"

	"github.com/kolkov/gcbarrier/barrier"
)

// NewDoctorCommand creates the doctor command: verify the host module can
// build against the barrier runtime.
func NewDoctorCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the host module's go.mod against the runtime's requirements",
		Long: `Check the host module's go.mod against the runtime's requirements.

The decorator dispatch is built on generics, so the consuming module's go
directive must be at least ` + barrier.MinGoVersion + `. doctor parses the
go.mod in the target directory and reports a non-zero exit when the module
cannot build the library.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, dir)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "directory containing the host go.mod")
	return cmd
}

func runDoctor(cmd *cobra.Command, dir string) error {
	goModPath := filepath.Join(dir, "go.mod")
	data, err := os.ReadFile(goModPath)
	if err != nil {
		return fmt.Errorf("doctor: %w", err)
	}

	modFile, err := modfile.Parse(goModPath, data, nil)
	if err != nil {
		return fmt.Errorf("doctor: parse %s: %w", goModPath, err)
	}

	if modFile.Go == nil || modFile.Go.Version == "" {
		return fmt.Errorf("doctor: %s has no go directive; need go >= %s", goModPath, barrier.MinGoVersion)
	}

	// The go directive is semver without the "v" ("1.24.0", "1.21").
	have := "v" + modFile.Go.Version
	want := "v" + barrier.MinGoVersion
	if !semver.IsValid(have) {
		return fmt.Errorf("doctor: %s: malformed go directive %q", goModPath, modFile.Go.Version)
	}
	modPath := "(unnamed module)"
	if modFile.Module != nil {
		modPath = modFile.Module.Mod.Path
	}
	if semver.Compare(have, want) < 0 {
		return fmt.Errorf("doctor: module %s declares go %s, need >= %s",
			modPath, modFile.Go.Version, barrier.MinGoVersion)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "module %s: go %s ok (need >= %s)\n",
		modPath, modFile.Go.Version, barrier.MinGoVersion)
	return nil
}
