package lexer

import (
	"csmerge/internal/diag"
	"csmerge/internal/token"
)

// scanStringOrOperator разбирает литералы, начинающиеся с ", ', $ или @:
// "..."  '.'  @"..."  $"..."  $@"..."  @$"..."  """..."""  $$"""...""".
// Если после префикса нет кавычки - откатываемся к идентификатору/оператору.
func (lx *Lexer) scanStringOrOperator() token.Token {
	start := lx.cursor.Mark()

	verbatim := lx.cursor.Eat('@')
	dollars := 0
	for lx.cursor.Eat('$') {
		dollars++
	}
	if !verbatim && lx.cursor.Eat('@') {
		verbatim = true
	}

	if lx.cursor.Peek() == '\'' && !verbatim && dollars == 0 {
		return lx.scanChar(start)
	}
	if lx.cursor.Peek() != '"' {
		lx.cursor.Reset(start)
		if lx.cursor.Peek() == '@' {
			return lx.scanIdentOrKeyword()
		}
		return lx.scanOperatorOrPunct()
	}

	if quotes := lx.countQuotes(); !verbatim && quotes >= 3 {
		return lx.scanRaw(start, quotes)
	}

	lx.cursor.Bump() // opening '"'
	kind := token.StringLit
	switch {
	case dollars > 0:
		kind = token.InterpolatedStringLit
	case verbatim:
		kind = token.VerbatimStringLit
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '"':
			if verbatim && lx.cursor.PeekAt(1) == '"' {
				lx.cursor.Off += 2
				continue
			}
			lx.cursor.Bump()
			return lx.emit(kind, start)
		case b == '\\' && !verbatim:
			// escape не валидируем, только пропускаем
			lx.cursor.Bump()
			if lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case b == '\n' && !verbatim:
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		case b == '{' && dollars > 0:
			if lx.cursor.PeekAt(1) == '{' {
				lx.cursor.Off += 2
				continue
			}
			lx.scanHole()
		case b == '}' && dollars > 0 && lx.cursor.PeekAt(1) == '}':
			lx.cursor.Off += 2
		default:
			lx.bumpRune()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) countQuotes() int {
	n := 0
	for lx.cursor.PeekAt(uint32(n)) == '"' {
		n++
	}
	return n
}

// scanRaw: литерал закрывается первой серией из не менее чем quotes кавычек.
func (lx *Lexer) scanRaw(start Mark, quotes int) token.Token {
	lx.cursor.Off += uint32(quotes)
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() != '"' {
			lx.bumpRune()
			continue
		}
		run := lx.countQuotes()
		lx.cursor.Off += uint32(run)
		if run >= quotes {
			return lx.emit(token.RawStringLit, start)
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated raw string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanHole пропускает интерполяционную дыру {expr[,align][:format]} с
// учётом вложенных скобок, строк и комментариев.
func (lx *Lexer) scanHole() {
	lx.cursor.Bump() // '{'
	depth := 1
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '{':
			depth++
			lx.cursor.Bump()
		case '}':
			depth--
			lx.cursor.Bump()
			if depth == 0 {
				return
			}
		case '"', '\'', '$', '@':
			before := lx.cursor.Off
			lx.scanStringOrOperator()
			if lx.cursor.Off == before {
				lx.cursor.Bump()
			}
		case '/':
			switch lx.cursor.PeekAt(1) {
			case '/':
				lx.cursor.SkipLine()
			case '*':
				lx.cursor.Off += 2
				for !lx.cursor.EOF() && !lx.try2('*', '/') {
					lx.cursor.Bump()
				}
			default:
				lx.cursor.Bump()
			}
		default:
			lx.bumpRune()
		}
	}
}

func (lx *Lexer) scanChar(start Mark) token.Token {
	lx.cursor.Bump() // opening '\''
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '\'':
			lx.cursor.Bump()
			return lx.emit(token.CharLit, start)
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.Peek() != '\n' {
				lx.bumpRune()
			}
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedChar, sp, "newline in character literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		default:
			lx.bumpRune()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
