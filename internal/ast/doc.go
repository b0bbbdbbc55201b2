// Package ast holds the structural view of one C# compilation unit that the
// merger needs: compilation-unit directives, global attribute lists and a
// forest of namespaces whose members are opaque declarations.
//
// Declarations keep their exact source text. The only structural edit the
// merger performs, replacing the leading visibility modifier, goes through
// Decl.WithVisibility, which returns a new node and never mutates the
// receiver. A Unit is owned by the pipeline stage that produced it; rewrites
// produce a new Unit sharing untouched nodes.
package ast
