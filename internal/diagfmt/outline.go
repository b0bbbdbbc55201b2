package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"csmerge/internal/ast"
	"csmerge/internal/source"
)

// UnitOutput is the JSON form of a parsed unit.
type UnitOutput struct {
	Path       string            `json:"path"`
	Imports    []string          `json:"imports,omitempty"`
	Attributes []string          `json:"attributes,omitempty"`
	Namespaces []NamespaceOutput `json:"namespaces"`
}

// NamespaceOutput is the JSON form of one namespace; Name is empty for
// top-level types.
type NamespaceOutput struct {
	Name       string       `json:"name"`
	FileScoped bool         `json:"file_scoped,omitempty"`
	Header     []string     `json:"header,omitempty"`
	Usings     []string     `json:"usings,omitempty"`
	Members    []DeclOutput `json:"members"`
}

// DeclOutput is the JSON form of a member declaration.
type DeclOutput struct {
	Kind       string      `json:"kind"`
	Name       string      `json:"name"`
	Visibility string      `json:"visibility,omitempty"`
	Modifiers  []string    `json:"modifiers,omitempty"`
	Span       source.Span `json:"span"`
}

// FormatUnitPretty печатает структуру файла: импорты, атрибуты и
// пространства имён с объявлениями.
func FormatUnitPretty(w io.Writer, unit *ast.Unit, fs *source.FileSet) error {
	if unit == nil {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "unit %s\n", unit.Path)
	for _, d := range unit.Imports {
		fmt.Fprintf(&b, "  import %s\n", d.Text)
	}
	for _, a := range unit.Attributes {
		fmt.Fprintf(&b, "  attribute %s\n", strings.Join(strings.Fields(a.Text), " "))
	}
	for _, ns := range unit.Namespaces {
		name := ns.Name
		if ns.IsGlobal() {
			name = "<global>"
		}
		kind := "namespace"
		if ns.FileScoped {
			kind = "namespace;"
		}
		fmt.Fprintf(&b, "  %s %s\n", kind, name)
		for _, h := range ns.Header {
			fmt.Fprintf(&b, "    header %s\n", h)
		}
		for _, u := range ns.Usings {
			fmt.Fprintf(&b, "    using %s\n", u.Text)
		}
		for _, d := range ns.Members {
			pos := ""
			if fs != nil {
				start, _ := fs.Resolve(d.Span)
				pos = fmt.Sprintf(" at %d:%d", start.Line, start.Col)
			}
			vis := d.Visibility()
			if vis == "" {
				vis = "-"
			}
			fmt.Fprintf(&b, "    %-9s %-10s %s%s\n", d.Kind, vis, d.Name, pos)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatUnitJSON выводит структуру файла в JSON формате
func FormatUnitJSON(w io.Writer, unit *ast.Unit) error {
	out := UnitOutput{Namespaces: []NamespaceOutput{}}
	if unit != nil {
		out.Path = unit.Path
		for _, d := range unit.Imports {
			out.Imports = append(out.Imports, d.Text)
		}
		for _, a := range unit.Attributes {
			out.Attributes = append(out.Attributes, a.Text)
		}
		for _, ns := range unit.Namespaces {
			nsOut := NamespaceOutput{
				Name:       ns.Name,
				FileScoped: ns.FileScoped,
				Header:     ns.Header,
				Members:    []DeclOutput{},
			}
			for _, u := range ns.Usings {
				nsOut.Usings = append(nsOut.Usings, u.Text)
			}
			for _, d := range ns.Members {
				declOut := DeclOutput{
					Kind:       d.Kind.String(),
					Name:       d.Name,
					Visibility: d.Visibility(),
					Span:       d.Span,
				}
				for _, m := range d.Modifiers {
					declOut.Modifiers = append(declOut.Modifiers, m.Text)
				}
				nsOut.Members = append(nsOut.Members, declOut)
			}
			out.Namespaces = append(out.Namespaces, nsOut)
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
