package driver

import (
	"path/filepath"
	"testing"

	"csmerge/internal/token"
)

func TestTokenizeAndParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "A.cs")
	writeFile(t, path, "#if DEBUG\nusing Dbg;\n#endif\nnamespace N { public class A { } }\n")

	tr, err := Tokenize(path, 0, []string{"DEBUG"})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Tokens[len(tr.Tokens)-1].Kind != token.EOF || tr.Bag.HasErrors() {
		t.Fatalf("tokenize: %d tokens, errors=%v", len(tr.Tokens), tr.Bag.HasErrors())
	}

	pr, err := Parse(path, ParseOptions{Symbols: []string{"DEBUG"}, Internalize: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(pr.Unit.Imports) != 1 || pr.Unit.Imports[0].Text != "using Dbg;" {
		t.Fatalf("active #if branch lost: %+v", pr.Unit.Imports)
	}
	if vis := pr.Unit.Namespaces[0].Members[0].Visibility(); vis != "internal" {
		t.Fatalf("visibility = %q", vis)
	}

	pr, err = Parse(path, ParseOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(pr.Unit.Imports) != 0 {
		t.Fatalf("inactive #if branch must be disabled text: %+v", pr.Unit.Imports)
	}
	if _, err := Parse(filepath.Join(t.TempDir(), "missing.cs"), ParseOptions{}); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}
