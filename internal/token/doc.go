// Package token defines lexical token kinds and trivia for the C# subset
// understood by the merger.
// Invariants:
//   - Token.Text is the exact source text covered by Token.Span.
//   - Only reserved keywords get Kw* kinds; contextual keywords (record,
//     partial, global, file, required, async ...) are identifiers.
//   - Comments, whitespace, preprocessor lines and text disabled by #if are
//     leading Trivia and never appear in the main token stream.
//   - Leading trivia that precedes the end of input is attached to EOF.
package token
