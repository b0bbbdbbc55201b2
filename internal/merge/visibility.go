package merge

import "csmerge/internal/ast"

const (
	publicKeyword   = "public"
	internalKeyword = "internal"
)

// Internalize returns a unit in which every declaration directly owned by a
// named namespace and marked public is marked internal instead. Nested
// declarations and top-level types outside a namespace are left untouched.
// The input unit is not modified; untouched namespaces are shared.
func Internalize(u *ast.Unit) *ast.Unit {
	changed := false
	nss := make([]*ast.Namespace, len(u.Namespaces))
	for i, ns := range u.Namespaces {
		nss[i] = ns
		if ns.IsGlobal() {
			continue
		}
		var members []*ast.Decl
		for j, d := range ns.Members {
			if d.Visibility() != publicKeyword {
				continue
			}
			if members == nil {
				members = append([]*ast.Decl(nil), ns.Members...)
			}
			members[j] = d.WithVisibility(internalKeyword)
		}
		if members != nil {
			nss[i] = ns.WithMembers(members)
			changed = true
		}
	}
	if !changed {
		return u
	}
	return u.WithNamespaces(nss)
}
