package lexer

import (
	"csmerge/internal/diag"
	"csmerge/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil - тогда ошибки игнорируем (но продолжаем лексить)
	// Symbols are the conditional compilation symbols defined before the
	// first line (the "symbols" merge option).
	Symbols []string
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
}
