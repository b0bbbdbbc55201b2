package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"csmerge/internal/buildpipeline"
	"csmerge/internal/config"
	"csmerge/internal/driver"
	"csmerge/internal/observ"
	"csmerge/internal/project"
	"csmerge/internal/ui"
)

var batchCmd = &cobra.Command{
	Use:   "batch [manifest.toml|directory]",
	Short: "Run the merges listed in a batch manifest",
	Long: `Batch reads a manifest of [[merge]] tables and runs the merges
concurrently. Without an argument csmerge.batch.toml is searched for from
the current directory upwards. Option flags apply to every entry and
override the entry options.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	addOptionFlags(batchCmd)
	addCacheFlags(batchCmd)
	batchCmd.Flags().Int("jobs", 0, "max concurrent merges (0 = manifest value, then GOMAXPROCS)")
}

// resolveManifest returns the manifest path named by args or found
// from the working directory upwards.
func resolveManifest(args []string) (string, error) {
	if len(args) == 1 && args[0] != "" {
		path := args[0]
		st, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("%w: %v", config.ErrUsage, err)
		}
		if st.IsDir() {
			path = filepath.Join(path, project.BatchManifest)
		}
		return filepath.Abs(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	path, ok, err := project.FindBatchManifest(wd)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: no %s found in %s or its parents", config.ErrUsage, project.BatchManifest, wd)
	}
	return path, nil
}

// batchJobs builds one driver job per manifest entry.
func batchJobs(cmd *cobra.Command, m *config.Manifest) ([]driver.Job, error) {
	root := filepath.Dir(m.Path)
	jobs := make([]driver.Job, 0, len(m.Entries))
	for _, e := range m.Entries {
		b := e.Builder()
		if err := applyOptionFlags(cmd, b); err != nil {
			return nil, err
		}
		cfg, err := b.Build()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Output, err)
		}
		name, err := filepath.Rel(root, cfg.OutputPath)
		if err != nil {
			name = cfg.OutputPath
		}
		jobs = append(jobs, driver.Job{Name: filepath.ToSlash(name), Config: cfg})
	}
	return jobs, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	path, err := resolveManifest(args)
	if err != nil {
		return err
	}
	manifest, err := config.LoadManifest(path)
	if err != nil {
		return err
	}
	jobs, err := batchJobs(cmd, manifest)
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if limit <= 0 {
		limit = manifest.Jobs
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
		fmt.Fprintf(stdout, "Batch       : %s (%d merges)\n\n", path, len(jobs))
	}

	opts := driver.Options{Cache: cache, MaxDiagnostics: out.maxDiagnostics}
	var results []driver.JobResult
	switch {
	case out.quiet:
		results, err = driver.MergeAll(ctx, jobs, limit, opts)
	case out.tui:
		results, err = runBatchWithUI(ctx, "csmerge batch", filepath.Dir(path), jobs, limit, opts)
	default:
		opts.Sink = ui.NewLogger(stdout, out.color, out.verbose)
		results, err = driver.MergeAll(ctx, jobs, limit, opts)
	}

	if !out.quiet {
		writeBatchSummary(stdout, results)
	}
	if out.timings {
		if terr := printBatchTimings(os.Stderr, out.timingsFormat, results); terr != nil && err == nil {
			err = terr
		}
	}
	return err
}

func writeBatchSummary(w io.Writer, results []driver.JobResult) {
	if len(results) == 0 {
		return
	}
	failed := 0
	fmt.Fprintln(w)
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(w, "  FAIL %s\n", r.Job.Name)
		case r.Result != nil && r.Result.UpToDate:
			fmt.Fprintf(w, "  ok   %s (up to date)\n", r.Job.Name)
		case r.Result != nil:
			fmt.Fprintf(w, "  ok   %s (%d files, %d bytes)\n", r.Job.Name, len(r.Result.Files), r.Result.Bytes)
		}
	}
	fmt.Fprintf(w, "%d merged, %d failed\n", len(results)-failed, failed)
}

func printBatchTimings(w io.Writer, format string, results []driver.JobResult) error {
	reports := make([]observ.Report, 0, len(results))
	for _, r := range results {
		report := r.Timer.Report()
		report.Label = r.Job.Name
		reports = append(reports, report)
	}
	if f := strings.ToLower(strings.TrimSpace(format)); f == "" || f == "short" {
		for _, r := range results {
			if r.Result == nil {
				continue
			}
			fmt.Fprintf(w, "%s:\n", r.Job.Name)
			printStageTimings(w, r.Result.Timings)
		}
		return nil
	}
	return printTimings(w, format, buildpipeline.Timings{}, reports...)
}
