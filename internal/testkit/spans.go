package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"csmerge/internal/ast"
	"csmerge/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed unit:
// 1) every span points into sf and lies within its content
// 2) imports and the members of each namespace are ordered and disjoint
// 3) members of a block namespace lie inside the namespace span
func CheckSpanInvariants(unit *ast.Unit, sf *source.File) error {
	if unit == nil || sf == nil {
		return fmt.Errorf("nil unit or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	inFile := func(what string, sp source.Span) error {
		if sp.File != sf.ID {
			return fmt.Errorf("%s span points to different file id: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.End < sp.Start || sp.End > lenContent {
			return fmt.Errorf("%s span %v is outside content of %d bytes", what, sp, lenContent)
		}
		return nil
	}

	var prev source.Span
	for i, d := range unit.Imports {
		if err := inFile("import "+d.Text, d.Span); err != nil {
			return err
		}
		if i > 0 && d.Span.Start < prev.End {
			return fmt.Errorf("import %q overlaps the previous one", d.Text)
		}
		prev = d.Span
	}

	for _, ns := range unit.Namespaces {
		if err := inFile("namespace "+ns.Name, ns.Span); err != nil {
			return err
		}
		// глобальная и file-scoped группы не охватывают своих членов
		block := !ns.IsGlobal() && !ns.FileScoped
		for i, m := range ns.Members {
			if err := inFile(m.Kind.String()+" "+m.Name, m.Span); err != nil {
				return err
			}
			if m.Span.Empty() {
				return fmt.Errorf("empty span for %s %s", m.Kind, m.Name)
			}
			if i > 0 && m.Span.Start < ns.Members[i-1].Span.End {
				return fmt.Errorf("%s %s overlaps the previous member", m.Kind, m.Name)
			}
			if block && (m.Span.Start < ns.Span.Start || m.Span.End > ns.Span.End) {
				return fmt.Errorf("%s %s span %v is outside namespace %s span %v", m.Kind, m.Name, m.Span, ns.Name, ns.Span)
			}
		}
	}
	return nil
}
