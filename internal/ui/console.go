package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"csmerge/internal/buildpipeline"
	"csmerge/internal/config"
)

// Logger prints merge progress as plain log lines:
//
//	Skip <file>
//	Comment <file>
//	<file>, encoding: <name>
//
// It is safe for concurrent use, so batch jobs can share one Logger.
type Logger struct {
	mu      sync.Mutex
	w       io.Writer
	skipC   *color.Color
	nameC   *color.Color
	encC    *color.Color
	okC     *color.Color
	verbose bool
}

// NewLogger creates a Logger writing to w. With verbose every stage
// summary is printed as well.
func NewLogger(w io.Writer, colorize, verbose bool) *Logger {
	l := &Logger{
		w:       w,
		skipC:   color.New(color.FgHiBlack),
		nameC:   color.New(color.FgCyan),
		encC:    color.New(color.FgYellow),
		okC:     color.New(color.FgGreen),
		verbose: verbose,
	}
	for _, c := range []*color.Color{l.skipC, l.nameC, l.encC, l.okC} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return l
}

func (l *Logger) OnEvent(ev buildpipeline.Event) {
	line := l.format(ev)
	if line == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, line)
}

func (l *Logger) format(ev buildpipeline.Event) string {
	if ev.File == "" {
		if l.verbose && ev.Status == buildpipeline.StatusDone && ev.Detail != "" {
			return l.skipC.Sprintf("%-9s %s (%s)", ev.Stage, ev.Detail, ev.Elapsed.Round(time.Microsecond))
		}
		return ""
	}
	switch {
	case ev.Stage == buildpipeline.StageClassify && ev.Status == buildpipeline.StatusSkipped:
		return l.skipC.Sprint("Skip " + ev.File)
	case ev.Stage == buildpipeline.StageClassify && ev.Status == buildpipeline.StatusDone && ev.Detail == "comment":
		return "Comment " + l.nameC.Sprint(ev.File)
	case ev.Stage == buildpipeline.StageDecode && ev.Status == buildpipeline.StatusDone:
		return ev.File + ", encoding: " + l.encC.Sprint(ev.Detail)
	case ev.Stage == buildpipeline.StageWrite && ev.Status == buildpipeline.StatusSkipped:
		return l.okC.Sprint(ev.File + " is up to date")
	case ev.Stage == buildpipeline.StageWrite && ev.Status == buildpipeline.StatusDone:
		return l.okC.Sprint("Wrote " + ev.File)
	}
	return ""
}

// WriteHeader echoes the effective configuration before a merge.
func WriteHeader(w io.Writer, cfg config.Config) {
	fmt.Fprintln(w, "Input       : "+cfg.InputDir)
	fmt.Fprintln(w, "Output      : "+cfg.OutputPath)
	fmt.Fprintf(w, "Internalize : %t\n", cfg.Internalize)
	fmt.Fprintln(w, "Encoding    : "+cfg.Encoding.Name)
	fmt.Fprintln(w, "Excluded    : "+strings.Join(cfg.Exclude, ", "))
	fmt.Fprintln(w, "Comments    : "+strings.Join(cfg.Comments, ", "))
	if cfg.ConfigFile != "" {
		fmt.Fprintln(w, "Config      : "+filepath.Clean(cfg.ConfigFile))
	}
	fmt.Fprintln(w)
}
