package lexer

import (
	"csmerge/internal/diag"
	"csmerge/internal/token"
)

// scanIdentOrKeyword сканирует [@]Ident и проверяет через LookupKeyword.
// "@class" всегда идентификатор. Token.Text - ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	verbatim := lx.cursor.Eat('@')

	r, sz := lx.peekRune()
	if sz == 0 || !(isIdentStartRune(r) || (r < utf8RuneSelf && isIdentStartByte(byte(r)))) {
		if verbatim {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnknownChar, sp, "expected identifier after '@'")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		return lx.scanOperatorOrPunct()
	}

	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if lx.cursor.EOF() || !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	tok := lx.emit(token.Ident, start)
	if verbatim {
		return tok
	}
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}
