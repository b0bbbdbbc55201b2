package parser

import (
	"slices"

	"csmerge/internal/ast"
	"csmerge/internal/diag"
	"csmerge/internal/lexer"
	"csmerge/internal/source"
	"csmerge/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Unit *ast.Unit
	// Errors is the number of error diagnostics reported while parsing.
	Errors uint
}

// Parser - состояние парсера на один файл
type Parser struct {
	file    *source.File
	toks    []token.Token // весь поток токенов, последний - EOF
	pos     int
	opts    Options
	unit    *ast.Unit
	global  *ast.Namespace // синтетический namespace для типов верхнего уровня
	header  []string       // #nullable/#pragma, ожидающие следующий namespace
	members bool           // на верхнем уровне уже были объявления

	// учёт #if/#region на границах вырезаемого текста, см. trackTrivia
	conds      []condGroup
	triviaSeen int
	scope      *ast.Namespace // namespace, чьи члены сейчас разбираются
	keep       bool           // trivia текущих токенов попадает в вывод
}

// ParseFile - входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File). Лексические
// ошибки идут в тот же Reporter, что задан в lexer.Options.
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	file := lx.File()
	p := Parser{
		file: file,
		toks: lx.All(),
		opts: opts,
		unit: &ast.Unit{File: file.ID, Path: file.Path},
	}
	p.parseCompilationUnit()
	return Result{Unit: p.unit, Errors: p.opts.CurrentErrors}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN смотрит на n токенов вперёд, не выходя за EOF.
func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance - съедает следующий токен; EOF не потребляется.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.trackTrivia(p.pos, p.keep)
		p.pos++
	}
	return tok
}

// prev возвращает последний съеденный токен.
func (p *Parser) prev() token.Token {
	if p.pos == 0 {
		return p.toks[0]
	}
	return p.toks[p.pos-1]
}

func (p *Parser) err(code diag.Code, sp source.Span, msg string) {
	p.report(code, diag.SevError, sp, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if sev == diag.SevError {
		if p.opts.Enough() {
			return // достигли максимального количества ошибок
		}
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter != nil {
		diag.NewReportBuilder(p.opts.Reporter, sev, code, sp, msg).Emit()
	}
}

func (p *Parser) text(start, end uint32) string {
	return string(p.file.Content[start:end])
}

// leadingStart - начало leading trivia токена (или сам токен).
func leadingStart(tok token.Token) uint32 {
	if len(tok.Leading) > 0 {
		return tok.Leading[0].Span.Start
	}
	return tok.Span.Start
}

// collectHeader запоминает #nullable/#pragma из trivia конструкции
// верхнего уровня, чтобы перенести их в ближайший namespace.
func (p *Parser) collectHeader(tok token.Token) {
	for _, tr := range tok.Leading {
		if tr.Kind != token.TriviaDirective || tr.Directive == nil {
			continue
		}
		switch tr.Directive.Name {
		case "nullable", "pragma":
			p.header = append(p.header, tr.Text)
		}
	}
}

func (p *Parser) takeHeader() []string {
	h := p.header
	p.header = nil
	return h
}
