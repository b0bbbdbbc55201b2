package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"csmerge/internal/buildpipeline"
	"csmerge/internal/diagfmt"
	"csmerge/internal/driver"
	"csmerge/internal/observ"
)

// printTimings writes --timings output. short prints one line per group of
// stages, table the per-stage timer summary, json the timer reports.
func printTimings(out io.Writer, format string, timings buildpipeline.Timings, reports ...observ.Report) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "short":
		printStageTimings(out, timings)
		return nil
	case "table":
		for _, r := range reports {
			if r.Label != "" {
				fmt.Fprintf(out, "%s\n", r.Label)
			}
			fmt.Fprint(out, r.Summary())
		}
		return nil
	case "json":
		return observ.WriteJSON(out, reports...)
	default:
		return fmt.Errorf("unknown timings format %q (expected short|table|json)", format)
	}
}

func printStageTimings(out io.Writer, timings buildpipeline.Timings) {
	if out == nil {
		return
	}
	groups := []struct {
		label  string
		stages []buildpipeline.Stage
	}{
		{"read", []buildpipeline.Stage{buildpipeline.StageDiscover, buildpipeline.StageClassify, buildpipeline.StageDecode}},
		{"parsed", []buildpipeline.Stage{buildpipeline.StageParse}},
		{"merged", []buildpipeline.Stage{buildpipeline.StageRewrite, buildpipeline.StageReconcile, buildpipeline.StageRender}},
		{"wrote", []buildpipeline.Stage{buildpipeline.StageWrite}},
	}
	for _, g := range groups {
		if !hasAny(timings, g.stages...) {
			continue
		}
		fmt.Fprintf(out, "%s %.1f ms\n", g.label, toMillis(timings.Sum(g.stages...)))
	}
}

func hasAny(timings buildpipeline.Timings, stages ...buildpipeline.Stage) bool {
	for _, st := range stages {
		if timings.Has(st) {
			return true
		}
	}
	return false
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// printDiagnostics prints the non-fatal diagnostics of a merge to stderr.
func printDiagnostics(cmd *cobra.Command, res *driver.Result) {
	if res == nil || res.Diagnostics == nil || res.FileSet == nil {
		return
	}
	res.Diagnostics.Sort()
	diagfmt.Pretty(cmd.ErrOrStderr(), res.Diagnostics, res.FileSet, diagfmt.PrettyOpts{
		Color:    useColor(cmd, os.Stderr),
		Context:  1,
		PathMode: diagfmt.PathModeRelative,
	})
	fmt.Fprintln(cmd.ErrOrStderr())
}
