package merge

import (
	"slices"
	"strings"
)

const (
	usingKeyword  = "using "
	globalPrefix  = "global "
	globalQualify = "global::"
)

// ImportSet is an exact-text set of import directives that remembers
// insertion order.
type ImportSet struct {
	seen  map[string]struct{}
	order []string
}

func NewImportSet() *ImportSet {
	return &ImportSet{seen: make(map[string]struct{})}
}

// Add inserts text and reports whether it was new.
func (s *ImportSet) Add(text string) bool {
	if _, ok := s.seen[text]; ok {
		return false
	}
	s.seen[text] = struct{}{}
	s.order = append(s.order, text)
	return true
}

func (s *ImportSet) Contains(text string) bool {
	_, ok := s.seen[text]
	return ok
}

func (s *ImportSet) Len() int { return len(s.order) }

// Items returns the directives in insertion order.
func (s *ImportSet) Items() []string {
	return slices.Clone(s.order)
}

// importTarget возвращает имя пространства имён директивы без
// квалификатора global:: и завершающего ';'. ok=false для директив
// без ключевого слова using (extern alias).
func importTarget(text string) (ns string, global, ok bool) {
	global = strings.HasPrefix(text, globalPrefix)
	_, rest, found := strings.Cut(text, usingKeyword)
	if !found {
		return "", false, false
	}
	rest = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), ";"))
	rest = strings.ReplaceAll(rest, globalQualify, "")
	return rest, global, true
}

// NamespaceFilter is the case-insensitive set of excluded namespaces.
type NamespaceFilter map[string]struct{}

func NewNamespaceFilter(excludeNs []string) NamespaceFilter {
	f := make(NamespaceFilter, len(excludeNs))
	for _, ns := range excludeNs {
		if ns = strings.TrimSpace(ns); ns != "" {
			f[strings.ToLower(ns)] = struct{}{}
		}
	}
	return f
}

// Excludes reports whether the using directive text imports an excluded
// namespace. extern alias is never excluded.
func (f NamespaceFilter) Excludes(text string) bool {
	if len(f) == 0 {
		return false
	}
	ns, _, ok := importTarget(text)
	if !ok {
		return false
	}
	_, drop := f[strings.ToLower(ns)]
	return drop
}

// Reconcile applies namespace exclusion and the global-supersedes-local
// rule to set and returns the survivors in ordinal order.
func Reconcile(set *ImportSet, excludeNs []string) []string {
	excluded := NewNamespaceFilter(excludeNs)

	globals := make(map[string]struct{})
	for _, text := range set.order {
		if ns, global, ok := importTarget(text); ok && global {
			globals[ns] = struct{}{}
		}
	}

	out := make([]string, 0, len(set.order))
	for _, text := range set.order {
		ns, global, ok := importTarget(text)
		if !ok {
			out = append(out, text)
			continue
		}
		if excluded.Excludes(text) {
			continue
		}
		if !global {
			if _, shadowed := globals[ns]; shadowed {
				continue
			}
		}
		out = append(out, text)
	}
	slices.Sort(out)
	return out
}
