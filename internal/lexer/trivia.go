package lexer

import (
	"csmerge/internal/diag"
	"csmerge/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - пробелы и табы коалесцируются в один TriviaSpace
// - последовательные '\n' коалесцируются в один TriviaNewline
// - //... -> TriviaLineComment, ///... -> TriviaDocLine
// - /* ... */ -> TriviaBlockComment, /** ... */ -> TriviaDocBlock
// - #... в начале строки -> TriviaDirective
// - текст неактивной ветки #if -> TriviaDisabledText
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if !lx.pp.active() && !isSpaceByte(b) && b != '\n' {
			if lx.scanDisabledText() {
				continue
			}
		}

		switch {
		case isSpaceByte(b):
			for isSpaceByte(lx.cursor.Peek()) && !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue

		case b == '\n':
			for lx.cursor.Peek() == '\n' && !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue

		case b == '/':
			if lx.scanCommentIntoHold() {
				continue
			}

		case b == '#' && lx.cursor.AtLineStart():
			lx.scanDirective()
			continue

		case b >= utf8RuneSelf:
			// неразрывные и прочие Unicode-пробелы
			if r, _ := lx.peekRune(); isUnicodeSpace(r) {
				for {
					r2, sz := lx.peekRune()
					if sz == 0 || !isUnicodeSpace(r2) {
						break
					}
					lx.bumpRune()
				}
				lx.pushTrivia(token.TriviaSpace, start)
				continue
			}
		}

		// нет больше trivia
		break
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

// //... , ///... , /*...*/ , /**...*/
func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' {
		return false
	}
	switch b1 {
	case '/':
		kind := token.TriviaLineComment
		if lx.cursor.PeekAt(2) == '/' && lx.cursor.PeekAt(3) != '/' {
			kind = token.TriviaDocLine
		}
		lx.cursor.SkipLine()
		lx.pushTrivia(kind, start)
		return true

	case '*':
		kind := token.TriviaBlockComment
		if lx.cursor.PeekAt(2) == '*' && lx.cursor.PeekAt(3) != '/' {
			kind = token.TriviaDocBlock
		}
		lx.cursor.Off += 2
		closed := false
		for !lx.cursor.EOF() {
			if lx.try2('*', '/') {
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		if !closed {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		}
		lx.pushTrivia(kind, start)
		return true
	}
	return false
}

func isUnicodeSpace(r rune) bool {
	switch r {
	case 0x00A0, 0x1680, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}
