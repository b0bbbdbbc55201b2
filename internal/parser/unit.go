package parser

import (
	"csmerge/internal/ast"
	"csmerge/internal/diag"
	"csmerge/internal/token"
)

// parseCompilationUnit - основной цикл верхнего уровня.
func (p *Parser) parseCompilationUnit() {
	for !p.at(token.EOF) {
		tok := p.peek()
		switch {
		case p.atDirective():
			p.collectHeader(tok)
			d, ok := p.parseDirective()
			if !ok {
				p.resyncTop()
				continue
			}
			if p.members {
				p.err(diag.SynMisplacedUsing, d.Span, "using directives must precede all other elements")
				continue
			}
			p.unit.Imports = append(p.unit.Imports, d)

		case p.atGlobalAttribute():
			p.collectHeader(tok)
			frag, ok := p.parseAttributeList()
			if !ok {
				p.resyncTop()
				continue
			}
			p.unit.Attributes = append(p.unit.Attributes, frag)

		case tok.Kind == token.KwNamespace:
			p.collectHeader(tok)
			ns, ok := p.parseNamespace()
			if !ok {
				p.resyncTop()
				continue
			}
			p.members = true
			p.unit.Namespaces = append(p.unit.Namespaces, ns)
			if ns.FileScoped {
				return
			}

		case tok.Kind == token.RBrace:
			p.advance()
			p.err(diag.SynUnexpectedCloser, tok.Span, "unexpected '}'")

		default:
			decl, ok := p.parseMember(true)
			if !ok {
				p.resyncTop()
				continue
			}
			p.members = true
			p.globalNamespace().Members = append(p.globalNamespace().Members, decl)
		}
	}
	if p.global != nil {
		p.global.Tail = p.tailText(p.pos)
		p.endScope(nil)
	}
}

func (p *Parser) globalNamespace() *ast.Namespace {
	if p.global == nil {
		p.global = &ast.Namespace{Span: p.peek().Span, Header: p.takeHeader()}
		p.unit.Namespaces = append(p.unit.Namespaces, p.global)
	}
	return p.global
}

// resyncTop - восстановление после ошибки на верхнем уровне:
// прокручиваем до ';' или '}' на нулевой глубине, либо до EOF.
func (p *Parser) resyncTop() {
	depth := 0
	for !p.at(token.EOF) {
		tok := p.advance()
		switch tok.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth <= 0 {
				p.eatOptional(token.Semicolon)
				return
			}
		case token.Semicolon:
			if depth == 0 {
				return
			}
		}
	}
}

func (p *Parser) eatOptional(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}
