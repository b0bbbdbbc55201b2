package lexer

import (
	"csmerge/internal/token"
)

// scanNumber сканирует числовой литерал целиком: 0x1F, 0b1010_0101, 1_000,
// 3.14, .5e-3, 10UL, 2.5m. Значение не вычисляется, важен только срез.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	digits := func() {
		for {
			b := lx.cursor.Peek()
			if !isIdentContinueByte(b) || lx.cursor.EOF() {
				return
			}
			// экспонента со знаком: 1e+5, 2E-3
			if (b == 'e' || b == 'E') && !lx.isHexLiteral(start) {
				lx.cursor.Bump()
				if s := lx.cursor.Peek(); (s == '+' || s == '-') && isDec(lx.cursor.PeekAt(1)) {
					lx.cursor.Bump()
				}
				continue
			}
			lx.cursor.Bump()
		}
	}

	digits()
	// дробная часть: "1.5", но не "1..2" и не "x.ToString()"
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		digits()
	}
	return lx.emit(token.IntLit, start)
}

func (lx *Lexer) isHexLiteral(start Mark) bool {
	c := lx.file.Content
	s := int(start)
	return s+1 < len(c) && c[s] == '0' && (c[s+1] == 'x' || c[s+1] == 'X')
}
