package parser

import (
	"strings"

	"csmerge/internal/ast"
	"csmerge/internal/token"
)

// skipBalanced съедает группу open ... close с учётом вложенности.
// Ожидает, что текущий токен - open. false, если дошли до EOF.
func (p *Parser) skipBalanced(open, closeKind token.Kind) bool {
	depth := 0
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.EOF:
			return false
		case open:
			depth++
		case closeKind:
			depth--
		}
		p.advance()
		if depth == 0 {
			return true
		}
	}
}

// fragment вырезает текст [start, end последнего токена) и отмечает
// многострочные литералы токенов toks[from:to] как замороженные.
func (p *Parser) fragment(start uint32, from, to int) ast.Fragment {
	end := p.toks[to-1].Span.End
	frag := ast.Fragment{Text: p.text(start, end)}
	for _, tok := range p.toks[from:to] {
		if !isMultilineLiteral(tok) {
			continue
		}
		frag.Frozen = append(frag.Frozen, ast.Range{
			Start: int(tok.Span.Start - start),
			End:   int(tok.Span.End - start),
		})
	}
	return frag
}

func isMultilineLiteral(tok token.Token) bool {
	switch tok.Kind {
	case token.VerbatimStringLit, token.RawStringLit, token.InterpolatedStringLit:
		return strings.Contains(tok.Text, "\n")
	}
	return false
}
