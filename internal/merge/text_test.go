package merge_test

import (
	"testing"

	"csmerge/internal/ast"
	"csmerge/internal/merge"
)

func TestDedent(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"common indent", "    class A\n    {\n        int x;\n    }", "class A\n{\n    int x;\n}"},
		{"blank lines ignored", "    a\n\n      b", "a\n\n  b"},
		{"directives ignored", "#if DEBUG\n    a\n#endif", "#if DEBUG\na\n#endif"},
		{"tabs", "\t\ta\n\tb", "\ta\nb"},
		{"no indent", "a\n  b", "a\n  b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := merge.Dedent(ast.Fragment{Text: tc.in})
			if got.Text != tc.want {
				t.Fatalf("got %q, want %q", got.Text, tc.want)
			}
		})
	}
}

func TestDedentKeepsFrozenLines(t *testing.T) {
	text := "    class C\n    {\n        string s = @\"x\n  y\n\";\n    }"
	lit := "@\"x\n  y\n\""
	start := indexOf(text, lit)
	f := ast.Fragment{Text: text, Frozen: []ast.Range{{Start: start, End: start + len(lit)}}}

	got := merge.Dedent(f)
	want := "class C\n{\n    string s = @\"x\n  y\n\";\n}"
	if got.Text != want {
		t.Fatalf("got %q, want %q", got.Text, want)
	}
	r := got.Frozen[0]
	if got.Text[r.Start:r.End] != lit {
		t.Fatalf("frozen range drifted: %q", got.Text[r.Start:r.End])
	}
}

func TestTrimBlankLines(t *testing.T) {
	f := merge.TrimBlankLines(ast.Fragment{
		Text:   "\n  \n  a @\"q\n\"\n\n",
		Frozen: []ast.Range{{Start: 8, End: 13}},
	})
	if f.Text != "  a @\"q\n\"" {
		t.Fatalf("text = %q", f.Text)
	}
	if f.Text[f.Frozen[0].Start:f.Frozen[0].End] != "@\"q\n\"" {
		t.Fatalf("frozen = %+v", f.Frozen)
	}
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
