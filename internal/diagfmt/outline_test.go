package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"csmerge/internal/ast"
	"csmerge/internal/source"
)

func sampleUnit() (*ast.Unit, *source.FileSet) {
	fs := source.NewFileSet()
	text := "using System;\nnamespace Lib {\npublic class A { }\ndelegate void D();\n}\n"
	id := fs.AddVirtual("Lib.cs", []byte(text))
	at := func(s string) source.Span {
		i := uint32(strings.Index(text, s))
		return source.Span{File: id, Start: i, End: i + uint32(len(s))}
	}
	a := ast.NewDecl(ast.DeclClass, "A", at("public class A { }"),
		ast.Fragment{Text: "public class A { }"}, []ast.Modifier{{Text: "public", Off: 0}}, 0)
	d := ast.NewDecl(ast.DeclDelegate, "D", at("delegate void D();"),
		ast.Fragment{Text: "delegate void D();"}, nil, 0)
	unit := &ast.Unit{
		File:       id,
		Path:       "Lib.cs",
		Imports:    []ast.Directive{{Text: "using System;", Span: at("using System;")}},
		Attributes: []ast.Fragment{{Text: "[assembly:  CLSCompliant(true)]"}},
		Namespaces: []*ast.Namespace{
			{Name: "Lib", Header: []string{"#nullable enable"}, Members: []*ast.Decl{a, d}},
		},
	}
	return unit, fs
}

func TestFormatUnitPretty(t *testing.T) {
	unit, fs := sampleUnit()
	var buf bytes.Buffer
	if err := FormatUnitPretty(&buf, unit, fs); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"unit Lib.cs",
		"  import using System;",
		"  attribute [assembly: CLSCompliant(true)]",
		"  namespace Lib",
		"    header #nullable enable",
		"    class     public     A at 3:1",
		"    delegate  -          D at 4:1",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("outline mismatch:\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatUnitJSON(t *testing.T) {
	unit, _ := sampleUnit()
	var buf bytes.Buffer
	if err := FormatUnitJSON(&buf, unit); err != nil {
		t.Fatal(err)
	}
	var out UnitOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out.Namespaces) != 1 || len(out.Namespaces[0].Members) != 2 {
		t.Fatalf("unexpected outline %+v", out)
	}
	m := out.Namespaces[0].Members[0]
	if m.Kind != "class" || m.Visibility != "public" || len(m.Modifiers) != 1 {
		t.Errorf("member = %+v", m)
	}

	buf.Reset()
	if err := FormatUnitJSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"namespaces": []`) {
		t.Errorf("nil unit must encode an empty list: %s", buf.String())
	}
}
