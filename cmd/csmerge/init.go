package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"csmerge/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Write a csmerge.toml with the default options",
	Long: `Init writes csmerge.toml into the input directory (the current directory
when omitted). Merges of that directory pick the file up automatically.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const projectTemplate = `# csmerge options for this directory.
# Command-line options and flags override the values below.

internalize = false
exclude     = []
excludeNs   = []
comments    = ['..\LICENSE']
nowarn      = ["IDE0130", "IDE0161"]
# nullable  = "enable"
# encoding  = "utf-8"
# symbols   = ["RELEASE"]
incai       = false
incgs       = false
toponly     = false
nosonar     = true
newline     = "auto"
tabs        = false
`

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 && args[0] != "" {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	path := filepath.Join(target, config.ProjectFile)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("already initialized: %s exists", path)
	}
	if err := os.WriteFile(path, []byte(projectTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	return nil
}
