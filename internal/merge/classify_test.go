package merge_test

import (
	"path/filepath"
	"testing"

	"csmerge/internal/merge"
)

func TestClassify(t *testing.T) {
	root := filepath.FromSlash("/work/proj")
	file := func(rel string) merge.DiscoveredFile {
		return merge.NewDiscoveredFile(filepath.Join(root, filepath.FromSlash(rel)))
	}
	defaults := merge.Rules{
		InputDir:        root,
		OutputPath:      filepath.Join(root, "Merged.cs"),
		Comments:        []string{`..\LICENSE`, "NOTICE.txt"},
		Exclude:         []string{"Skip.cs", "gen/**/*.g.cs"},
		IncludeVersions: true,
	}

	cases := []struct {
		name   string
		rules  func(r merge.Rules) merge.Rules
		file   merge.DiscoveredFile
		want   merge.Class
		reason string
	}{
		{name: "plain code", file: file("src/A.cs"), want: merge.ClassCode},
		{name: "upper-case extension", file: file("src/B.CS"), want: merge.ClassCode},
		{name: "comment by name", file: file("docs/notice.TXT"), want: merge.ClassComment},
		{name: "comment by relative path", file: merge.NewDiscoveredFile(filepath.FromSlash("/work/LICENSE")), want: merge.ClassComment},
		{name: "comment wins over extension", rules: func(r merge.Rules) merge.Rules {
			r.Comments = []string{"Header.cs"}
			return r
		}, file: file("Header.cs"), want: merge.ClassComment},
		{name: "other extension", file: file("README.md"), want: merge.ClassIgnored, reason: "not a source file"},
		{name: "generated temp", file: file("obj/.NETFramework,Version=v4.8.TemporaryGeneratedFile_x.cs"), want: merge.ClassIgnored, reason: "generated file"},
		{name: "assembly info as version source", file: file("Properties/AssemblyInfo.cs"), want: merge.ClassVersion},
		{name: "assembly attributes as version source", file: file("obj/net8.0.AssemblyAttributes.cs"), want: merge.ClassVersion},
		{name: "assembly info skipped without incav", rules: func(r merge.Rules) merge.Rules {
			r.IncludeVersions = false
			return r
		}, file: file("Properties/AssemblyInfo.cs"), want: merge.ClassIgnored},
		{name: "assembly info as code with incai", rules: func(r merge.Rules) merge.Rules {
			r.IncludeAssemblyInfo = true
			return r
		}, file: file("Properties/AssemblyInfo.cs"), want: merge.ClassCode},
		{name: "global suppressions skipped", file: file("GlobalSuppressions.cs"), want: merge.ClassIgnored, reason: "global suppressions"},
		{name: "global suppressions with incgs", rules: func(r merge.Rules) merge.Rules {
			r.IncludeSuppressions = true
			return r
		}, file: file("GlobalSuppressions.cs"), want: merge.ClassCode},
		{name: "excluded by name", file: file("deep/skip.cs"), want: merge.ClassIgnored, reason: "excluded"},
		{name: "excluded by full path", rules: func(r merge.Rules) merge.Rules {
			r.Exclude = []string{filepath.Join(root, "src", "C.cs")}
			return r
		}, file: file("SRC/c.cs"), want: merge.ClassIgnored, reason: "excluded"},
		{name: "excluded by glob", file: file("gen/a/b/Model.g.cs"), want: merge.ClassIgnored, reason: "excluded"},
		{name: "glob does not match elsewhere", file: file("src/Model.g.cs"), want: merge.ClassCode},
		{name: "output file", file: file("merged.cs"), want: merge.ClassIgnored, reason: "output file"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rules := defaults
			if tc.rules != nil {
				rules = tc.rules(rules)
			}
			got := merge.NewClassifier(rules).Classify(tc.file)
			if got.Class != tc.want {
				t.Fatalf("Classify(%s) = %s (%s), want %s", tc.file.Path, got.Class, got.Reason, tc.want)
			}
			if tc.reason != "" && got.Reason != tc.reason {
				t.Fatalf("reason = %q, want %q", got.Reason, tc.reason)
			}
		})
	}
}

func TestNormalizeEntry(t *testing.T) {
	if got := merge.NormalizeEntry("  "); got != "" {
		t.Fatalf("blank entry = %q", got)
	}
	want := filepath.FromSlash("../LICENSE")
	if got := merge.NormalizeEntry(`..\LICENSE`); filepath.Separator != '\\' && got != want {
		t.Fatalf("NormalizeEntry = %q, want %q", got, want)
	}
}
