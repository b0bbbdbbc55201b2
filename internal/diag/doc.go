// Package diag defines the diagnostic model shared by the lexer, the parser
// and the merge driver.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string form (LEX1xxx lexical, SYN2xxx syntax, IO4xxx input/output), a
// Message, the Primary span and optional Notes.
//
// Phases emit through a Reporter so that storage stays decoupled from the
// producer. BagReporter collects diagnostics into a Bag, which supports
// sorting and deduplication. Rendering lives in internal/diagfmt; FormatShort
// provides the single-line form used in error values.
package diag
