package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"csmerge/internal/config"
	"csmerge/internal/diag"
	"csmerge/internal/diagfmt"
	"csmerge/internal/driver"
	"csmerge/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "csmerge <input-directory> <output-file> [options]",
	Short: "Merge a tree of C# sources into a single file",
	Long: `csmerge consolidates every .cs file under a directory into one source file:
imports are reconciled, types are grouped by namespace and the result is
written in the requested encoding.

Options may also be given in the legacy form /name or /name:value, for
example /internalize or /exclude:Generated.cs;obj/**.`,
	Args:               cobra.ArbitraryArgs,
	SilenceErrors:      true,
	SilenceUsage:       true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runMerge(cmd, args)
	},
}

// main registers subcommands and persistent flags and executes the root
// command. Any error is reported as a single line on stderr and the process
// exits with status 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print a summary line for every stage")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("timings-format", "short", "timings output format (short|table|json)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to collect per file")
	rootCmd.PersistentFlags().String("ui", "auto", "progress UI (auto|on|off)")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to this file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|stage|file|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")

	// флаги merge доступны и на корневой команде
	addMergeFlags(rootCmd)

	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		reportError(cmd, os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err as one diagnostic line. Usage errors are followed
// by the command usage, parse errors by the offending source snippet.
func reportError(cmd *cobra.Command, w io.Writer, err error) {
	var perr *driver.ParseError
	if errors.As(err, &perr) {
		fmt.Fprintf(w, "error: %s\n", strings.TrimSpace(err.Error()))
		if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
			first := diag.NewBag(1)
			if d, ok := perr.Bag.FirstError(); ok {
				first.Add(d)
			}
			diagfmt.Pretty(w, first, perr.FileSet, diagfmt.PrettyOpts{
				Color:    useColor(cmd, os.Stderr),
				Context:  1,
				PathMode: diagfmt.PathModeRelative,
			})
		}
		return
	}
	fmt.Fprintf(w, "error: %s\n", err)
	if errors.Is(err, config.ErrUsage) {
		fmt.Fprintln(w)
		fmt.Fprint(w, cmd.UsageString())
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color for output written to f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	return colorEnabled(mode, func() bool { return f != nil && isTerminal(f) })
}

func colorEnabled(mode string, tty func() bool) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on", "always":
		return true
	case "off", "never":
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		return tty()
	}
}

// stdoutFile returns the command output when it is a file, nil otherwise.
func stdoutFile(cmd *cobra.Command) *os.File {
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return f
	}
	return nil
}
