package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"csmerge/internal/config"
	"csmerge/internal/driver"
	"csmerge/internal/observ"
	"csmerge/internal/ui"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <input-directory> <output-file> [options]",
	Short: "Merge the .cs files under a directory into one file",
	Long: `Merge walks <input-directory>, classifies and parses every .cs file and
writes the consolidated source to <output-file>.

Options come from, in ascending precedence: built-in defaults, csmerge.toml
in the input directory (or --config), legacy /name[:value] arguments and
the flags below.`,
	Args: cobra.ArbitraryArgs,
	RunE: runMerge,
}

// mergeFlag binds a command-line flag to a merge option.
type mergeFlag struct {
	flag   string
	option string
	usage  string
	isBool bool
}

var mergeFlags = []mergeFlag{
	{"internalize", config.OptInternalize, "make public types internal", true},
	{"exclude", config.OptExclude, "';'-separated files or globs to skip", false},
	{"exclude-ns", config.OptExcludeNs, "';'-separated namespaces whose imports are dropped", false},
	{"comments", config.OptComments, "';'-separated comment files copied to the header", false},
	{"nullable", config.OptNullable, "#nullable value for the output (enable|disable|...)", false},
	{"encoding", config.OptEncoding, "output encoding by name or code page", false},
	{"symbols", config.OptSymbols, "';'-separated preprocessor symbols considered defined", false},
	{"incai", config.OptIncAI, "merge AssemblyInfo.cs as code", true},
	{"incav", config.OptIncAV, "copy version attributes into the header", true},
	{"incgs", config.OptIncGS, "merge GlobalSuppressions.cs as code", true},
	{"toponly", config.OptTopOnly, "do not descend into subdirectories", true},
	{"nosonar", config.OptNoSonar, "prefix the output with // <auto-generated/>", true},
	{"nowarn", config.OptNoWarn, "';'-separated warning ids disabled in the output", false},
	{"newline", config.OptNewline, "output line ending (auto|lf|crlf)", false},
	{"tabs", config.OptTabs, "indent with tabs", true},
}

func addMergeFlags(cmd *cobra.Command) {
	addOptionFlags(cmd)
	cmd.Flags().String("config", "", "read defaults from this TOML file instead of <input>/csmerge.toml")
	cmd.Flags().Bool("no-config", false, "ignore csmerge.toml in the input directory")
	addCacheFlags(cmd)
}

func addOptionFlags(cmd *cobra.Command) {
	for _, f := range mergeFlags {
		if f.isBool {
			cmd.Flags().Bool(f.flag, false, f.usage)
		} else {
			cmd.Flags().String(f.flag, "", f.usage)
		}
	}
}

func addCacheFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("cache", false, "skip the write when the output is known to be up to date")
	cmd.Flags().String("cache-dir", "", "cache directory (default $XDG_CACHE_HOME/csmerge)")
}

// applyOptionFlags copies the option flags the user actually set into b.
// Flags left at their defaults never override the lower layers.
func applyOptionFlags(cmd *cobra.Command, b *config.Builder) error {
	for _, f := range mergeFlags {
		fl := cmd.Flags().Lookup(f.flag)
		if fl == nil || !fl.Changed {
			continue
		}
		if err := b.Set(f.option, fl.Value.String()); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	addMergeFlags(mergeCmd)
}

// buildMergeConfig layers legacy option tokens and changed flags into a
// Config.
func buildMergeConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	b := config.NewBuilder()
	if err := b.ParseArgs(args); err != nil {
		return config.Config{}, err
	}
	if err := applyOptionFlags(cmd, b); err != nil {
		return config.Config{}, err
	}

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	noConfig, err := cmd.Flags().GetBool("no-config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get no-config flag: %w", err)
	}
	switch {
	case path != "" && noConfig:
		return config.Config{}, fmt.Errorf("%w: --config and --no-config are mutually exclusive", config.ErrUsage)
	case path != "":
		b.SetConfigFile(path)
	case noConfig:
		b.DisableAutoLoad()
	}
	return b.Build()
}

// openCache returns the disk cache when --cache is set, nil otherwise.
func openCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	enabled, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	if !enabled && dir == "" {
		return nil, nil
	}
	if dir != "" {
		return driver.OpenDiskCacheAt(dir)
	}
	return driver.OpenDiskCache("csmerge")
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg, err := buildMergeConfig(cmd, args)
	if err != nil {
		return err
	}

	out, err := readOutputFlags(cmd)
	if err != nil {
		return err
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	cache, err := openCache(cmd)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	stdout := cmd.OutOrStdout()
	if !out.quiet {
		ui.WriteHeader(stdout, cfg)
	}

	timer := observ.NewTimer()
	opts := driver.Options{
		Cache:          cache,
		Timer:          timer,
		MaxDiagnostics: out.maxDiagnostics,
	}

	var res *driver.Result
	switch {
	case out.quiet:
		res, err = driver.Merge(ctx, cfg, opts)
	case out.tui:
		res, err = runMergeWithUI(ctx, "csmerge "+cfg.InputDir, cfg, opts)
	default:
		opts.Sink = ui.NewLogger(stdout, out.color, out.verbose)
		res, err = driver.Merge(ctx, cfg, opts)
	}
	if err != nil {
		return err
	}

	if !out.quiet && res.Diagnostics.Len() > 0 {
		printDiagnostics(cmd, res)
	}
	if out.timings {
		return printTimings(os.Stderr, out.timingsFormat, res.Timings, timer.Report())
	}
	return nil
}

// outputFlags collects the persistent flags that shape console output.
type outputFlags struct {
	quiet          bool
	verbose        bool
	color          bool
	tui            bool
	timings        bool
	timingsFormat  string
	maxDiagnostics int
}

func readOutputFlags(cmd *cobra.Command) (outputFlags, error) {
	pf := cmd.Root().PersistentFlags()
	var out outputFlags
	var err error
	if out.quiet, err = pf.GetBool("quiet"); err != nil {
		return out, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if out.verbose, err = pf.GetBool("verbose"); err != nil {
		return out, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	if out.timings, err = pf.GetBool("timings"); err != nil {
		return out, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if out.timingsFormat, err = pf.GetString("timings-format"); err != nil {
		return out, fmt.Errorf("failed to get timings-format flag: %w", err)
	}
	if out.maxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
		return out, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	uiValue, err := pf.GetString("ui")
	if err != nil {
		return out, fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return out, fmt.Errorf("%w: %w", config.ErrUsage, err)
	}
	out.color = useColor(cmd, os.Stdout)
	out.tui = !out.quiet && shouldUseTUI(mode)
	return out, nil
}
