package format

import (
	"strings"
	"testing"

	"csmerge/internal/ast"
	"csmerge/internal/merge"
)

func TestRenderSectionOrder(t *testing.T) {
	doc := Document{
		NoSonar:      true,
		Nullable:     "enable",
		Comments:     []string{"Copyright X\r\nLine */ 2\r\n\r\n"},
		VersionFacts: []string{"AssemblyVersion: 1.0", "AssemblyFileVersion: 1.2.3.4"},
		Imports:      []string{"using A;", "using B;"},
		Attributes:   []ast.Fragment{{Text: "[assembly: X]"}},
		NoWarn:       []string{"IDE0130", "IDE0161"},
		Groups: []*merge.Group{
			{Name: "", Body: ast.Fragment{Text: "class G { }"}},
			{Name: "N", Usings: []string{"using Z;", "using Y;"}, Body: ast.Fragment{Text: "class A\n{\n}"}},
		},
	}
	got := string(RenderBytes(doc, Options{Newline: "\n"}))
	want := `// <auto-generated/>
#nullable enable
/*
Copyright X
Line * / 2
*/
/*
AssemblyVersion: 1.0
AssemblyFileVersion: 1.2.3.4
*/
using A;
using B;

[assembly: X]

#pragma warning disable IDE0130, IDE0161
class G { }

namespace N
{
    using Y;
    using Z;

    class A
    {
    }
}
#pragma warning restore IDE0130, IDE0161
`
	if got != want {
		t.Fatalf("render mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestRenderMinimal(t *testing.T) {
	doc := Document{
		Groups: []*merge.Group{{Name: "N", Body: ast.Fragment{Text: "class A { }"}}},
	}
	got := string(RenderBytes(doc, Options{Newline: "\n"}))
	want := "\nnamespace N\n{\n    class A { }\n}\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderNewlines(t *testing.T) {
	doc := Document{
		NoSonar:  true,
		Comments: []string{"a\nb\r\nc"},
		Imports:  []string{"using A;"},
		Groups:   []*merge.Group{{Name: "N", Body: ast.Fragment{Text: "class A\n{\n}"}}},
	}
	got := string(RenderBytes(doc, Options{Newline: "\r\n"}))
	if strings.Count(got, "\n") != strings.Count(got, "\r\n") {
		t.Fatalf("lone line feeds in %q", got)
	}
	if strings.Contains(got, "\r\r") {
		t.Fatalf("doubled carriage returns in %q", got)
	}
	if !strings.HasSuffix(got, "}\r\n") {
		t.Fatalf("output must end with a newline: %q", got)
	}
}

func TestRenderIndentation(t *testing.T) {
	body := "class A\n{\n    string s = @\"x\n  y\";\n#if DEBUG\n    int d;\n#endif\n}"
	start := strings.Index(body, "@\"")
	end := strings.Index(body, "y\";") + 2
	g := &merge.Group{Name: "N", Body: ast.Fragment{Text: body, Frozen: []ast.Range{{Start: start, End: end}}}}

	got := string(RenderBytes(Document{Groups: []*merge.Group{g}}, Options{Newline: "\n", UseTabs: true}))
	want := "\nnamespace N\n{\n\tclass A\n\t{\n\t    string s = @\"x\n  y\";\n#if DEBUG\n\t    int d;\n#endif\n\t}\n}\n"
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestNewlineFor(t *testing.T) {
	cases := []struct {
		mode    string
		want    string
		wantErr bool
	}{
		{mode: "lf", want: "\n"},
		{mode: "CRLF", want: "\r\n"},
		{mode: "auto", want: platformNewline()},
		{mode: "", want: platformNewline()},
		{mode: "cr", wantErr: true},
	}
	for _, tc := range cases {
		got, err := NewlineFor(tc.mode)
		if (err != nil) != tc.wantErr {
			t.Fatalf("NewlineFor(%q) err = %v", tc.mode, err)
		}
		if got != tc.want {
			t.Fatalf("NewlineFor(%q) = %q, want %q", tc.mode, got, tc.want)
		}
	}
}

func TestWriterBlankLine(t *testing.T) {
	w := NewWriter(Options{Newline: "\n"})
	w.WriteString("a")
	w.BlankLine()
	w.Line("b")
	w.Newline()
	if got := string(w.Bytes()); got != "a\n\nb\n" {
		t.Fatalf("got %q", got)
	}
}
