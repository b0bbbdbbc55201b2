package ast

import (
	"strings"

	"csmerge/internal/source"
)

// Unit is the parsed form of one code file.
type Unit struct {
	File source.FileID
	Path string
	// Imports are compilation-unit extern alias / using / global using
	// directives in source order, in canonical text form.
	Imports []Directive
	// Attributes are [assembly: ...] and [module: ...] lists, verbatim.
	Attributes []Fragment
	Namespaces []*Namespace
}

// Directive is one import directive in canonical text form:
// "using System;", "global using global::System.Linq;", "extern alias X;".
type Directive struct {
	Text string
	Span source.Span
}

// IsGlobal reports whether the directive is a global using.
func (d Directive) IsGlobal() bool {
	return strings.HasPrefix(d.Text, "global ")
}

// Namespace is one namespace declaration of a unit. The synthetic global
// namespace (top-level types) has an empty Name.
type Namespace struct {
	// Name is the exact source text of the namespace name.
	Name       string
	FileScoped bool
	Span       source.Span
	// Usings are directives scoped to this namespace, canonical text.
	Usings []Directive
	// Header carries #nullable / #pragma lines that preceded the declaration.
	Header  []string
	Members []*Decl
	// Tail is the trivia before the closing brace (or end of file).
	Tail string
}

// IsGlobal reports whether ns is the synthetic global namespace.
func (ns *Namespace) IsGlobal() bool {
	return ns.Name == ""
}

// WithMembers returns a copy of ns with the given members.
func (ns *Namespace) WithMembers(members []*Decl) *Namespace {
	cp := *ns
	cp.Members = members
	return &cp
}

// WithNamespaces returns a shallow copy of u with the given namespaces.
func (u *Unit) WithNamespaces(nss []*Namespace) *Unit {
	cp := *u
	cp.Namespaces = nss
	return &cp
}
