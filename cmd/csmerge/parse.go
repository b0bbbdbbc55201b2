package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"csmerge/internal/config"
	"csmerge/internal/diagfmt"
	"csmerge/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.cs",
	Short: "Parse a C# source file and print its outline",
	Long: `Parse shows how csmerge splits a C# source file: compilation-unit imports,
assembly attributes and the namespaces with their top-level types.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().String("symbols", "", "';'-separated preprocessor symbols considered defined")
	parseCmd.Flags().Bool("internalize", false, "show the outline after making public types internal")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	symbols, err := cmd.Flags().GetString("symbols")
	if err != nil {
		return fmt.Errorf("failed to get symbols flag: %w", err)
	}
	internalize, err := cmd.Flags().GetBool("internalize")
	if err != nil {
		return fmt.Errorf("failed to get internalize flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(filePath, driver.ParseOptions{
		MaxDiagnostics: maxDiagnostics,
		Symbols:        config.SplitList(symbols),
		Internalize:    internalize,
	})
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			Context:   2,
			ShowNotes: true,
		})
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("%s: %d diagnostics", filePath, result.Bag.Len())
	}

	switch format {
	case "pretty":
		return diagfmt.FormatUnitPretty(cmd.OutOrStdout(), result.Unit, result.FileSet)
	case "json":
		return diagfmt.FormatUnitJSON(cmd.OutOrStdout(), result.Unit)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
