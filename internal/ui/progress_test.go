package ui

import (
	"strings"
	"testing"

	"csmerge/internal/buildpipeline"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan buildpipeline.Event)
	m, ok := NewProgressModel("merge src", "/in", events).(*progressModel)
	if !ok {
		t.Fatalf("unexpected model type")
	}
	apply := []buildpipeline.Event{
		{Stage: buildpipeline.StageClassify, Status: buildpipeline.StatusWorking},
		{File: "/in/a.txt", Stage: buildpipeline.StageClassify, Status: buildpipeline.StatusSkipped},
		{File: "/in/sub/A.cs", Stage: buildpipeline.StageClassify, Status: buildpipeline.StatusQueued},
		{Stage: buildpipeline.StageClassify, Status: buildpipeline.StatusDone},
		{File: "/in/sub/A.cs", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusDone},
		{File: "/elsewhere/LICENSE", Stage: buildpipeline.StageClassify, Status: buildpipeline.StatusDone},
	}
	for _, ev := range apply {
		m.applyEvent(ev)
	}
	if len(m.items) != 3 {
		t.Fatalf("expected 3 rows, got %+v", m.items)
	}
	if m.items[0].status != "skipped" || m.items[1].status != "parsed" || m.items[2].status != "comment" {
		t.Fatalf("statuses = %+v", m.items)
	}
	if m.items[1].path != "sub/A.cs" || m.items[2].path != "/elsewhere/LICENSE" {
		t.Fatalf("paths = %+v", m.items)
	}
	m.applyEvent(buildpipeline.Event{File: "/in/AssemblyInfo.cs", Stage: buildpipeline.StageClassify, Status: buildpipeline.StatusDone, Detail: "version"})
	if got := m.items[3].status; got != "version" {
		t.Fatalf("version file status = %q", got)
	}
	if len(m.stagesDone) != 1 {
		t.Fatalf("stage progress = %v", m.stagesDone)
	}

	m.done = true
	view := m.View()
	if !strings.Contains(view, "done: merge src") || !strings.Contains(view, "sub/A.cs") {
		t.Fatalf("view:\n%s", view)
	}
}

func TestProgressModelErrorAndOverflow(t *testing.T) {
	m := NewProgressModel("merge", "", nil).(*progressModel)
	for i := range maxRows + 4 {
		m.applyEvent(buildpipeline.Event{
			File:   strings.Repeat("x", i+1),
			Stage:  buildpipeline.StageClassify,
			Status: buildpipeline.StatusQueued,
		})
	}
	m.applyEvent(buildpipeline.Event{Stage: buildpipeline.StageParse, Status: buildpipeline.StatusError})
	m.done = true
	view := m.View()
	if !strings.Contains(view, "failed: merge (error)") {
		t.Fatalf("header must show failure:\n%s", view)
	}
	if !strings.Contains(view, "4 more") {
		t.Fatalf("overflow marker missing:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 6, "abc..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.width); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
