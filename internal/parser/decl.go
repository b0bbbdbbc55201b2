package parser

import (
	"strings"

	"csmerge/internal/ast"
	"csmerge/internal/diag"
	"csmerge/internal/token"
)

// isModifierKeyword - модификаторы, допустимые перед объявлением типа.
func isModifierKeyword(k token.Kind) bool {
	switch k {
	case token.KwPublic, token.KwPrivate, token.KwProtected, token.KwInternal,
		token.KwStatic, token.KwAbstract, token.KwSealed, token.KwReadonly,
		token.KwUnsafe, token.KwNew, token.KwRef, token.KwExtern,
		token.KwVirtual, token.KwOverride, token.KwVolatile, token.KwConst:
		return true
	}
	return false
}

var contextualModifiers = map[string]bool{
	"partial":  true,
	"file":     true,
	"required": true,
	"async":    true,
	"scoped":   true,
}

// parseMember разбирает одно объявление типа (или вложенный namespace):
//
//	[attrs]* modifiers* (class|struct|interface|enum|record|delegate) Name ... { ... } ;?
//
// topLevel включает диагностику для операторов верхнего уровня.
func (p *Parser) parseMember(topLevel bool) (*ast.Decl, bool) {
	first := p.pos
	firstTok := p.peek()
	base := leadingStart(firstTok)
	if cut := p.trackTrivia(p.pos, true); cut > base {
		base = cut
	}
	base, inline := p.skipInlineSpace(base, firstTok)
	p.keep = true
	defer func() { p.keep = false }()

	// атрибуты
	for p.at(token.LBracket) {
		open := p.peek()
		if !p.skipBalanced(token.LBracket, token.RBracket) {
			p.err(diag.SynUnclosedBracket, open.Span, "unclosed '[' in attribute list")
			return nil, false
		}
	}

	// модификаторы
	var mods []ast.Modifier
	keywordOff := int(p.peek().Span.Start - base)
	for {
		tok := p.peek()
		isMod := isModifierKeyword(tok.Kind) ||
			(tok.Kind == token.Ident && contextualModifiers[tok.Text] && p.peekN(1).IsWord())
		if !isMod {
			break
		}
		mods = append(mods, ast.Modifier{Text: tok.Text, Off: int(tok.Span.Start - base)})
		p.advance()
	}

	kindTok := p.peek()
	kind, ok := p.declKind()
	if !ok {
		if topLevel {
			p.err(diag.SynTopLevelStatement, kindTok.Span,
				"top-level statements are not supported; expected a type or namespace declaration, got "+quote(kindTok.Text))
		} else {
			p.err(diag.SynUnexpectedToken, kindTok.Span, "expected type declaration, got "+quote(kindTok.Text))
		}
		return nil, false
	}
	if kind == ast.DeclNamespace && topLevel {
		// сюда попадаем только при модификаторах/атрибутах перед namespace
		p.err(diag.SynUnexpectedToken, kindTok.Span, "namespace declarations cannot have modifiers")
		return nil, false
	}
	p.advance()
	// record struct / record class
	if kind == ast.DeclRecord && p.atOr(token.KwStruct, token.KwClass) {
		p.advance()
	}

	name := p.declName(kind)

	// тело: до '{' ... '}' или до ';' на нулевой глубине скобок
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.LBrace:
			if !p.skipBalanced(token.LBrace, token.RBrace) {
				p.err(diag.SynUnclosedBrace, tok.Span, "unclosed '{' in declaration of "+name)
				return nil, false
			}
			p.eatOptional(token.Semicolon)
			return p.finishDecl(kind, name, first, base, inline, mods, keywordOff), true
		case token.Semicolon:
			p.advance()
			return p.finishDecl(kind, name, first, base, inline, mods, keywordOff), true
		case token.LParen:
			if !p.skipBalanced(token.LParen, token.RParen) {
				p.err(diag.SynUnclosedParen, tok.Span, "unclosed '(' in declaration of "+name)
				return nil, false
			}
		case token.LBracket:
			if !p.skipBalanced(token.LBracket, token.RBracket) {
				p.err(diag.SynUnclosedBracket, tok.Span, "unclosed '[' in declaration of "+name)
				return nil, false
			}
		case token.RBrace, token.RParen, token.RBracket:
			p.err(diag.SynUnexpectedCloser, tok.Span, "unexpected "+quote(tok.Text)+" in declaration of "+name)
			return nil, false
		case token.EOF:
			p.err(diag.SynExpectSemicolon, p.prev().Span, "unexpected end of file in declaration of "+name)
			return nil, false
		default:
			p.advance()
		}
	}
}

func (p *Parser) declKind() (ast.DeclKind, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.KwClass:
		return ast.DeclClass, true
	case token.KwStruct:
		return ast.DeclStruct, true
	case token.KwInterface:
		return ast.DeclInterface, true
	case token.KwEnum:
		return ast.DeclEnum, true
	case token.KwDelegate:
		return ast.DeclDelegate, true
	case token.KwNamespace:
		return ast.DeclNamespace, true
	}
	if tok.IsContextual("record") {
		next := p.peekN(1)
		if next.Kind == token.Ident || next.Kind == token.KwStruct || next.Kind == token.KwClass {
			return ast.DeclRecord, true
		}
	}
	return 0, false
}

// declName - имя объявления. Для delegate это последний идентификатор
// перед '(' или '<' (после возвращаемого типа); для namespace - полное имя.
func (p *Parser) declName(kind ast.DeclKind) string {
	switch kind {
	case ast.DeclDelegate:
		name, angle := "", 0
		for i := 0; ; i++ {
			tok := p.peekN(i)
			switch tok.Kind {
			case token.EOF, token.Semicolon:
				return name
			case token.LParen:
				if angle == 0 {
					return name
				}
			case token.Lt:
				angle++
			case token.Gt:
				angle--
			case token.Ident:
				if angle == 0 {
					name = tok.Text
				}
			}
		}
	case ast.DeclNamespace:
		var parts []string
		for i := 0; ; i++ {
			tok := p.peekN(i)
			if !tok.IsWord() && tok.Kind != token.Dot {
				return strings.Join(parts, "")
			}
			parts = append(parts, tok.Text)
		}
	}
	if tok := p.peek(); tok.Kind == token.Ident {
		return tok.Text
	}
	return ""
}

func (p *Parser) finishDecl(kind ast.DeclKind, name string, first int, base uint32, inline bool, mods []ast.Modifier, keywordOff int) *ast.Decl {
	last := p.prev()
	sp := p.toks[first].Span.Cover(last.Span)
	frag := p.fragment(base, first, p.pos)
	if inline {
		// объявление начиналось в середине строки: переносим его на свою
		// строку с отступом остальных строк, иначе Dedent видит отступ 0
		prefix := "\n" + p.inlineIndent(base, frag.Text)
		frag = ast.Fragment{Text: prefix}.Append(frag)
		for i := range mods {
			mods[i].Off += len(prefix)
		}
		keywordOff += len(prefix)
	}
	return ast.NewDecl(kind, name, sp, frag, mods, keywordOff)
}

// skipInlineSpace: если объявление начинается на той же строке, что и
// предыдущий токен, пропускает пробелы перед ним.
func (p *Parser) skipInlineSpace(base uint32, firstTok token.Token) (uint32, bool) {
	content := p.file.Content
	if base == 0 || content[base-1] == '\n' {
		return base, false
	}
	q := base
	for q < firstTok.Span.Start && (content[q] == ' ' || content[q] == '\t') {
		q++
	}
	if content[q] == '\n' {
		return base, false
	}
	return q, true
}

// inlineIndent подбирает отступ для первой строки объявления, начатого
// в середине строки: наименьший отступ его остальных строк, а для
// однострочного - отступ исходной строки.
func (p *Parser) inlineIndent(base uint32, text string) string {
	indent, found := "", false
	if _, rest, ok := strings.Cut(text, "\n"); ok {
		for _, ln := range strings.Split(rest, "\n") {
			body := strings.TrimLeft(ln, " \t")
			if body == "" || body[0] == '#' {
				continue
			}
			if ws := ln[:len(ln)-len(body)]; !found || len(ws) < len(indent) {
				indent, found = ws, true
			}
		}
	}
	if found {
		return indent
	}
	start := base
	for start > 0 && p.file.Content[start-1] != '\n' {
		start--
	}
	line := string(p.file.Content[start:base])
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func quote(s string) string {
	if s == "" {
		return "end of file"
	}
	return "'" + s + "'"
}
