package parser

import (
	"csmerge/internal/ast"
	"csmerge/internal/diag"
	"csmerge/internal/token"
)

// parseNamespace разбирает
//
//	namespace A.B { usings members }
//	namespace A.B; usings members EOF
func (p *Parser) parseNamespace() (*ast.Namespace, bool) {
	kw := p.advance() // 'namespace'
	ns := &ast.Namespace{Header: p.takeHeader()}

	nameStart := p.peek()
	if !nameStart.IsWord() {
		p.err(diag.SynExpectIdentifier, nameStart.Span, "expected namespace name")
		return nil, false
	}
	for !p.atOr(token.LBrace, token.Semicolon, token.EOF) {
		tok := p.peek()
		if !tok.IsWord() && tok.Kind != token.Dot && tok.Kind != token.ColonColon {
			p.err(diag.SynUnexpectedToken, tok.Span, "unexpected "+quote(tok.Text)+" in namespace name")
			return nil, false
		}
		p.advance()
	}
	ns.Name = p.text(nameStart.Span.Start, p.prev().Span.End)

	p.scope = ns
	defer func() { p.scope = nil }()

	switch {
	case p.at(token.Semicolon):
		p.advance()
		ns.FileScoped = true
		if p.members {
			p.err(diag.SynFileScopedMixed, kw.Span, "file-scoped namespace must precede all other members")
			return nil, false
		}
		p.parseNamespaceBody(ns, token.EOF)
		ns.Tail = p.tailText(p.pos)
		p.endScope(ns)
		ns.Span = kw.Span.Cover(p.prev().Span)
		return ns, true

	case p.at(token.LBrace):
		p.advance()
		if !p.parseNamespaceBody(ns, token.RBrace) {
			p.err(diag.SynUnclosedBrace, kw.Span, "namespace "+ns.Name+" is missing its closing '}'")
			return nil, false
		}
		ns.Tail = p.tailText(p.pos)
		p.endScope(ns)
		closer := p.advance() // '}'
		p.eatOptional(token.Semicolon)
		ns.Span = kw.Span.Cover(closer.Span)
		return ns, true
	}

	p.err(diag.SynUnexpectedToken, p.peek().Span, "expected '{' or ';' after namespace name")
	return nil, false
}

// parseNamespaceBody читает using-директивы и объявления до end.
// Возвращает false, если вместо end встретился EOF.
func (p *Parser) parseNamespaceBody(ns *ast.Namespace, end token.Kind) bool {
	seenMember := false
	for !p.at(end) {
		if p.at(token.EOF) {
			return false
		}
		switch {
		case p.atDirective():
			d, ok := p.parseDirective()
			if !ok {
				p.resyncTop()
				continue
			}
			if seenMember {
				p.err(diag.SynMisplacedUsing, d.Span, "using directives must precede namespace members")
				continue
			}
			if d.IsGlobal() {
				p.err(diag.SynMisplacedUsing, d.Span, "global using directives must be at the top of the file")
				continue
			}
			ns.Usings = append(ns.Usings, d)

		case p.at(token.RBrace):
			tok := p.advance()
			p.err(diag.SynUnexpectedCloser, tok.Span, "unexpected '}'")

		default:
			decl, ok := p.parseMember(false)
			if !ok {
				p.resyncTop()
				continue
			}
			seenMember = true
			ns.Members = append(ns.Members, decl)
		}
	}
	return true
}
