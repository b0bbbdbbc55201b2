package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"csmerge/internal/buildpipeline"
	"csmerge/internal/config"
	"csmerge/internal/observ"
	"csmerge/internal/project"
)

func newMergeTestCmd(t *testing.T, flags ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "merge"}
	addMergeFlags(cmd)
	if err := cmd.Flags().Parse(flags); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestBuildMergeConfigLayers(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out.cs")
	if err := os.WriteFile(filepath.Join(dir, config.ProjectFile), []byte("internalize = true\nnullable = \"enable\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		flags []string
		args  []string
		check func(t *testing.T, cfg config.Config)
	}{
		{
			name: "project file",
			args: []string{dir, out},
			check: func(t *testing.T, cfg config.Config) {
				if !cfg.Internalize || cfg.Nullable != "enable" || cfg.ConfigFile == "" {
					t.Errorf("csmerge.toml not applied: %+v", cfg)
				}
			},
		},
		{
			name: "legacy tokens override the file",
			args: []string{dir, "/internalize:false", out, "/toponly", "/exclude:X.cs"},
			check: func(t *testing.T, cfg config.Config) {
				if cfg.Internalize || !cfg.TopOnly || !slices.Equal(cfg.Exclude, []string{"X.cs"}) {
					t.Errorf("legacy layer: %+v", cfg)
				}
			},
		},
		{
			name:  "flags override legacy tokens",
			flags: []string{"--exclude", "A.cs; B.cs", "--newline", "crlf"},
			args:  []string{dir, out, "/exclude:X.cs"},
			check: func(t *testing.T, cfg config.Config) {
				if !slices.Equal(cfg.Exclude, []string{"A.cs", "B.cs"}) || cfg.Newline != "crlf" {
					t.Errorf("flag layer: %+v", cfg)
				}
			},
		},
		{
			name:  "unchanged bool flags keep lower layers",
			flags: []string{"--tabs"},
			args:  []string{dir, out},
			check: func(t *testing.T, cfg config.Config) {
				if !cfg.Internalize || !cfg.Tabs || !cfg.NoSonar {
					t.Errorf("defaults overridden: %+v", cfg)
				}
			},
		},
		{
			name:  "no-config",
			flags: []string{"--no-config"},
			args:  []string{dir, out},
			check: func(t *testing.T, cfg config.Config) {
				if cfg.Internalize || cfg.ConfigFile != "" {
					t.Errorf("csmerge.toml must be ignored: %+v", cfg)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newMergeTestCmd(t, tt.flags...)
			cfg, err := buildMergeConfig(cmd, tt.args)
			if err != nil {
				t.Fatalf("buildMergeConfig: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestBuildMergeConfigErrors(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.cs")
	tests := []struct {
		name  string
		flags []string
		args  []string
	}{
		{"missing output", nil, []string{dir}},
		{"missing input dir", nil, []string{filepath.Join(dir, "nope"), out}},
		{"extra positional", nil, []string{dir, out, "more"}},
		{"config conflict", []string{"--config", "x.toml", "--no-config"}, []string{dir, out}},
		{"bad newline", []string{"--newline", "cr"}, []string{dir, out}},
		{"bad encoding", []string{"--encoding", "klingon"}, []string{dir, out}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newMergeTestCmd(t, tt.flags...)
			if _, err := buildMergeConfig(cmd, tt.args); !errors.Is(err, config.ErrUsage) {
				t.Fatalf("expected ErrUsage, got %v", err)
			}
		})
	}
}

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"AUTO", uiModeAuto, false},
		{" on ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Errorf("explicit modes must win over terminal detection")
	}
}

func TestColorEnabled(t *testing.T) {
	tty := func() bool { return true }
	if !colorEnabled("on", func() bool { return false }) {
		t.Errorf("on must force colour")
	}
	if colorEnabled("off", tty) {
		t.Errorf("off must disable colour")
	}
	t.Setenv("NO_COLOR", "1")
	if colorEnabled("auto", tty) {
		t.Errorf("NO_COLOR must disable auto colour")
	}
}

func TestReportError(t *testing.T) {
	cmd := &cobra.Command{Use: "csmerge <input-directory> <output-file>"}
	var buf bytes.Buffer
	reportError(cmd, &buf, errors.New("boom"))
	if buf.String() != "error: boom\n" {
		t.Errorf("plain error = %q", buf.String())
	}

	buf.Reset()
	reportError(cmd, &buf, config.ErrUsage)
	if !strings.HasPrefix(buf.String(), "error: usage\n") || !strings.Contains(buf.String(), "Usage:") {
		t.Errorf("usage error must print usage:\n%s", buf.String())
	}
}

func TestPrintTimings(t *testing.T) {
	var timings buildpipeline.Timings
	timings.Add(buildpipeline.StageDiscover, 2*time.Millisecond)
	timings.Add(buildpipeline.StageDecode, time.Millisecond)
	timings.Add(buildpipeline.StageWrite, 500*time.Microsecond)

	var buf bytes.Buffer
	if err := printTimings(&buf, "short", timings); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "read 3.0 ms\nwrote 0.5 ms\n"; got != want {
		t.Errorf("short timings = %q, want %q", got, want)
	}

	tm := observ.NewTimer()
	tm.End(tm.Begin("parse"), "2 files")
	buf.Reset()
	if err := printTimings(&buf, "json", timings, tm.Report()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"name": "parse"`) {
		t.Errorf("json timings:\n%s", buf.String())
	}
	if err := printTimings(&buf, "xml", timings); err == nil {
		t.Errorf("unknown format must fail")
	}
}

func TestInitTemplateLoads(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Lib")
	cmd := &cobra.Command{Use: "init"}
	var out bytes.Buffer
	cmd.SetOut(&out)
	if err := runInit(cmd, []string{dir}); err != nil {
		t.Fatalf("runInit: %v", err)
	}
	values, err := config.LoadOptionsFile(filepath.Join(dir, config.ProjectFile))
	if err != nil {
		t.Fatalf("template must be valid: %v", err)
	}
	if values[config.OptComments] != `..\LICENSE` || values[config.OptNoWarn] != "IDE0130;IDE0161" {
		t.Errorf("template values: %v", values)
	}
	if err := runInit(cmd, []string{dir}); err == nil {
		t.Errorf("second init must refuse to overwrite")
	}
}

func TestResolveManifest(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, project.BatchManifest)
	if err := os.WriteFile(path, []byte("[[merge]]\ninput = \"a\"\noutput = \"a.cs\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := resolveManifest([]string{root})
	if err != nil || got != path {
		t.Fatalf("directory argument: %q, %v", got, err)
	}
	got, err = resolveManifest([]string{path})
	if err != nil || got != path {
		t.Fatalf("file argument: %q, %v", got, err)
	}
	if _, err := resolveManifest([]string{filepath.Join(root, "missing.toml")}); !errors.Is(err, config.ErrUsage) {
		t.Fatalf("missing manifest: %v", err)
	}
}
