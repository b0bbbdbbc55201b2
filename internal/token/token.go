package token

import (
	"csmerge/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, character or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, CharLit, StringLit, VerbatimStringLit, InterpolatedStringLit, RawStringLit:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= LBrace && t.Kind <= Operator
}

// IsKeyword reports whether the token is a reserved keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsWord reports whether the token is an identifier or a keyword.
func (t Token) IsWord() bool { return t.Kind == Ident || t.Kind.IsKeyword() }

// IsContextual reports whether the token is the identifier word, which is
// how contextual keywords such as "record" or "global" are lexed.
func (t Token) IsContextual(word string) bool {
	return t.Kind == Ident && t.Text == word
}
