package merge_test

import (
	"testing"

	"csmerge/internal/ast"
	"csmerge/internal/diag"
	"csmerge/internal/lexer"
	"csmerge/internal/parser"
	"csmerge/internal/source"
)

func parseUnit(t *testing.T, name, input string) *ast.Unit {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(input))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	res := parser.ParseFile(lx, parser.Options{Reporter: rep})
	if bag.HasErrors() {
		t.Fatalf("parse %s: %s", name, diag.FormatShortBag(bag, fs))
	}
	return res.Unit
}
