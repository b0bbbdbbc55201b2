package merge

import (
	"slices"
	"strings"

	"csmerge/internal/ast"
)

// Group is the aggregated body of one namespace name.
type Group struct {
	// Name is the exact namespace text; "" is the global group.
	Name string
	// Usings are the namespace-scoped directives of all contributors,
	// de-duplicated by exact text in first-seen order. The renderer
	// sorts them.
	Usings []string
	// Body holds the dedented chunks, one blank line between chunks.
	Body ast.Fragment
	// Chunks is the number of contributed chunks.
	Chunks int

	usingSet map[string]struct{}
}

// IsGlobal reports whether g holds top-level types without a namespace.
func (g *Group) IsGlobal() bool { return g.Name == "" }

func (g *Group) addUsing(text string) {
	if _, ok := g.usingSet[text]; ok {
		return
	}
	g.usingSet[text] = struct{}{}
	g.Usings = append(g.Usings, text)
}

func (g *Group) addChunk(chunk ast.Fragment) {
	if g.Chunks > 0 {
		g.Body = g.Body.AppendText("\n\n")
	}
	g.Body = g.Body.Append(chunk)
	g.Chunks++
}

// Aggregator groups declarations of parsed units by namespace name. Units
// must be added in discovery order.
type Aggregator struct {
	groups  map[string]*Group
	attrs   []ast.Fragment
	exclude NamespaceFilter
}

func NewAggregator() *Aggregator {
	return &Aggregator{groups: make(map[string]*Group)}
}

// ExcludeNamespaces drops namespace-scoped using directives of the given
// namespaces, matched like compilation-unit imports in Reconcile.
func (a *Aggregator) ExcludeNamespaces(excludeNs []string) {
	a.exclude = NewNamespaceFilter(excludeNs)
}

// Add contributes one chunk per namespace of u. Global attribute lists
// are collected separately.
func (a *Aggregator) Add(u *ast.Unit) {
	for _, attr := range u.Attributes {
		a.attrs = append(a.attrs, TrimBlankLines(attr))
	}
	for _, ns := range u.Namespaces {
		chunk := Chunk(ns)
		usings := make([]string, 0, len(ns.Usings))
		for _, d := range ns.Usings {
			if !a.exclude.Excludes(d.Text) {
				usings = append(usings, d.Text)
			}
		}
		if strings.TrimSpace(chunk.Text) == "" && len(usings) == 0 {
			continue
		}
		g := a.group(ns.Name)
		for _, text := range usings {
			g.addUsing(text)
		}
		if chunk.Text != "" {
			g.addChunk(chunk)
		}
	}
}

func (a *Aggregator) group(name string) *Group {
	g, ok := a.groups[name]
	if !ok {
		g = &Group{Name: name, usingSet: make(map[string]struct{})}
		a.groups[name] = g
	}
	return g
}

// Attributes returns global attribute lists in discovery order.
func (a *Aggregator) Attributes() []ast.Fragment {
	return slices.Clone(a.attrs)
}

// Groups returns the groups sorted by name (ordinal).
func (a *Aggregator) Groups() []*Group {
	out := make([]*Group, 0, len(a.groups))
	for _, g := range a.groups {
		out = append(out, g)
	}
	slices.SortFunc(out, func(x, y *Group) int { return strings.Compare(x.Name, y.Name) })
	return out
}

// Chunk re-serializes the members of ns: carried header directives, each
// declaration with its leading trivia and the trailing trivia, dedented
// to column 0.
func Chunk(ns *ast.Namespace) ast.Fragment {
	var f ast.Fragment
	for _, h := range ns.Header {
		f = f.AppendText(h + "\n")
	}
	for i, d := range ns.Members {
		frag := d.Fragment()
		if i == 0 && len(ns.Header) > 0 {
			frag = TrimBlankLines(frag)
		}
		f = f.Append(frag)
	}
	f = f.AppendText(ns.Tail)
	return Dedent(TrimBlankLines(f))
}
