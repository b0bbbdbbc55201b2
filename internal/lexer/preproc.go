package lexer

import (
	"strings"

	"csmerge/internal/diag"
	"csmerge/internal/source"
	"csmerge/internal/token"
)

// frame - одна открытая группа #if ... #endif.
type frame struct {
	parentActive bool
	active       bool // текущая ветка активна
	taken        bool // какая-то ветка уже была выбрана
	elseSeen     bool
	open         source.Span // директива #if, открывшая группу
}

type preprocessor struct {
	symbols map[string]bool
	stack   []frame
}

func newPreprocessor(symbols []string) preprocessor {
	pp := preprocessor{symbols: make(map[string]bool, len(symbols))}
	for _, s := range symbols {
		if s = strings.TrimSpace(s); s != "" {
			pp.symbols[s] = true
		}
	}
	return pp
}

func (pp *preprocessor) active() bool {
	if len(pp.stack) == 0 {
		return true
	}
	return pp.stack[len(pp.stack)-1].active
}

// finish сообщает о незакрытых #if в конце файла.
func (pp *preprocessor) finish(lx *Lexer) {
	for i := len(pp.stack) - 1; i >= 0; i-- {
		lx.errLex(diag.LexUnterminatedConditional, pp.stack[i].open, "#if without matching #endif")
	}
	pp.stack = nil
}

func isConditional(name string) bool {
	switch name {
	case "if", "elif", "else", "endif":
		return true
	}
	return false
}

// directiveName читает имя директивы в строке, начинающейся с позиции off
// (после необязательных пробелов и '#').
func directiveName(line []byte) (name, payload string) {
	s := strings.TrimLeft(string(line), " \t\f\v")
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimLeft(s, " \t")
	i := 0
	for i < len(s) && (s[i] >= 'a' && s[i] <= 'z') {
		i++
	}
	return s[:i], strings.TrimSpace(s[i:])
}

// scanDirective читает строку директивы (без '\n') и применяет её.
func (lx *Lexer) scanDirective() {
	start := lx.cursor.Mark()
	lx.cursor.SkipLine()
	sp := lx.cursor.SpanFrom(start)
	name, payload := directiveName(lx.file.Content[sp.Start:sp.End])

	lx.hold = append(lx.hold, token.Trivia{
		Kind:      token.TriviaDirective,
		Span:      sp,
		Text:      lx.text(sp),
		Directive: &token.Directive{Name: name, Payload: payload},
	})

	if name == "" {
		lx.errLex(diag.LexBadDirective, sp, "expected preprocessor directive name")
		return
	}
	lx.applyDirective(name, stripDirectiveComment(payload), sp)
}

func stripDirectiveComment(s string) string {
	if i := strings.Index(s, "//"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func (lx *Lexer) applyDirective(name, expr string, sp source.Span) {
	pp := &lx.pp
	switch name {
	case "if":
		parent := pp.active()
		val := parent && lx.evalCondition(expr, sp)
		pp.stack = append(pp.stack, frame{parentActive: parent, active: val, taken: val, open: sp})

	case "elif", "else":
		if len(pp.stack) == 0 {
			lx.errLex(diag.LexUnexpectedDirective, sp, "#"+name+" without #if")
			return
		}
		top := &pp.stack[len(pp.stack)-1]
		if top.elseSeen {
			lx.errLex(diag.LexUnexpectedDirective, sp, "#"+name+" after #else")
			return
		}
		if name == "else" {
			top.elseSeen = true
			top.active = top.parentActive && !top.taken
			top.taken = true
			return
		}
		val := false
		if top.parentActive && !top.taken {
			val = lx.evalCondition(expr, sp)
		}
		top.active = val
		top.taken = top.taken || val

	case "endif":
		if len(pp.stack) == 0 {
			lx.errLex(diag.LexUnexpectedDirective, sp, "#endif without #if")
			return
		}
		pp.stack = pp.stack[:len(pp.stack)-1]

	case "define", "undef":
		if !pp.active() {
			return
		}
		sym := expr
		if sym == "" {
			lx.errLex(diag.LexBadDirective, sp, "#"+name+" requires a symbol")
			return
		}
		pp.symbols[sym] = name == "define"
	}
}

// scanDisabledText поглощает строки неактивной ветки до следующей
// условной директивы (#if/#elif/#else/#endif) или EOF.
func (lx *Lexer) scanDisabledText() bool {
	if lx.atConditionalDirective() {
		return false
	}
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		lx.cursor.SkipLine()
		lx.cursor.Eat('\n')
		if lx.atConditionalDirective() {
			break
		}
	}
	if lx.cursor.Off == uint32(start) {
		return false
	}
	lx.pushTrivia(token.TriviaDisabledText, start)
	return true
}

// atConditionalDirective: с текущей позиции (начало строки, возможно с
// отступом) начинается #if/#elif/#else/#endif.
func (lx *Lexer) atConditionalDirective() bool {
	c := lx.file.Content[lx.cursor.Off:lx.cursor.Limit]
	end := 0
	for end < len(c) && c[end] != '\n' {
		end++
	}
	line := c[:end]
	trimmed := strings.TrimLeft(string(line), " \t\f\v")
	if !strings.HasPrefix(trimmed, "#") || !lx.cursor.AtLineStart() {
		return false
	}
	name, _ := directiveName(line)
	return isConditional(name)
}
