package parser

import (
	"strings"

	"csmerge/internal/ast"
	"csmerge/internal/diag"
	"csmerge/internal/token"
)

// atDirective: using ..., global using ..., extern alias ...
func (p *Parser) atDirective() bool {
	tok := p.peek()
	switch {
	case tok.Kind == token.KwUsing:
		// "using (" и "using var" - операторы, а не директивы
		next := p.peekN(1)
		return next.Kind != token.LParen && !next.IsContextual("var")
	case tok.IsContextual("global"):
		return p.peekN(1).Kind == token.KwUsing
	case tok.Kind == token.KwExtern:
		return p.peekN(1).IsContextual("alias")
	}
	return false
}

// parseDirective читает директиву до ';' и строит каноническую форму.
func (p *Parser) parseDirective() (ast.Directive, bool) {
	first := p.peek()
	var parts []token.Token
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.Semicolon:
			p.advance()
			parts = append(parts, tok)
			return ast.Directive{
				Text: canonicalText(parts),
				Span: first.Span.Cover(tok.Span),
			}, true
		case token.EOF, token.LBrace, token.RBrace:
			p.err(diag.SynExpectSemicolon, p.prev().Span, "expected ';' after using directive")
			return ast.Directive{}, false
		}
		parts = append(parts, p.advance())
	}
}

// canonicalText склеивает токены с канонической расстановкой пробелов:
// пробел между словами/литералами, вокруг '=' и после ','.
func canonicalText(toks []token.Token) string {
	var sb strings.Builder
	for i, tok := range toks {
		if i > 0 && needsSpace(toks[i-1], tok) {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

func needsSpace(a, b token.Token) bool {
	word := func(t token.Token) bool { return t.IsWord() || t.IsLiteral() }
	switch {
	case word(a) && word(b):
		return true
	case a.Kind == token.Assign || b.Kind == token.Assign:
		return true
	case a.Kind == token.Comma:
		return true
	}
	return false
}

// atGlobalAttribute: "[assembly:" или "[module:"
func (p *Parser) atGlobalAttribute() bool {
	if !p.at(token.LBracket) {
		return false
	}
	target := p.peekN(1)
	return (target.IsContextual("assembly") || target.IsContextual("module")) && p.peekN(2).Kind == token.Colon
}

// parseAttributeList возвращает список атрибутов дословно, от '[' до ']'.
func (p *Parser) parseAttributeList() (ast.Fragment, bool) {
	open, first := p.peek(), p.pos
	if !p.skipBalanced(token.LBracket, token.RBracket) {
		p.err(diag.SynUnclosedBracket, open.Span, "unclosed '[' in attribute list")
		return ast.Fragment{}, false
	}
	return p.fragment(open.Span.Start, first, p.pos), true
}
