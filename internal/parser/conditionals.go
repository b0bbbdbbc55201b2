package parser

import (
	"strings"

	"csmerge/internal/ast"
	"csmerge/internal/token"
)

// condGroup - открытая группа #if или #region. kept: строка-открытие
// попала в текст объявления или хвост namespace; иначе она ушла вместе
// с using-директивой, атрибутом или ключевым словом namespace.
type condGroup struct {
	region bool
	kept   bool
	ns     *ast.Namespace // nil - глобальный namespace
}

// trackTrivia учитывает директивы из leading trivia токена idx, один раз
// на токен. kept - попадает ли эта trivia в вывод.
//
// Возвращает смещение, до которого начало trivia надо отрезать: закрытия
// групп с выброшенным открытием (вместе с их #else-ветками). 0 - резать
// нечего.
func (p *Parser) trackTrivia(idx int, kept bool) uint32 {
	if idx < p.triviaSeen {
		return 0
	}
	p.triviaSeen = idx + 1

	lead := p.toks[idx].Leading
	var cut uint32
	dropping := false
	for i, tr := range lead {
		if dropping {
			cut = tr.Span.End
		}
		if tr.Kind != token.TriviaDirective || tr.Directive == nil {
			continue
		}
		switch name := tr.Directive.Name; name {
		case "if", "region":
			p.conds = append(p.conds, condGroup{region: name == "region", kept: kept, ns: p.scope})

		case "elif", "else":
			if g, ok := p.topCond(false); ok && kept && !g.kept {
				dropping = true
				cut = tr.Span.End
			}

		case "endif", "endregion":
			g, ok := p.popCond(name == "endregion")
			if !ok {
				continue
			}
			switch {
			case kept && !g.kept:
				dropping = false
				cut = lineEnd(lead, i)
			case !kept && g.kept:
				p.closeLost(g)
			}
		}
	}
	return cut
}

// lineEnd - конец строки директивы lead[i] вместе с переводом строки.
func lineEnd(lead []token.Trivia, i int) uint32 {
	if i+1 < len(lead) && lead[i+1].Kind == token.TriviaNewline {
		return lead[i+1].Span.End
	}
	return lead[i].Span.End
}

func (p *Parser) topCond(region bool) (condGroup, bool) {
	for i := len(p.conds) - 1; i >= 0; i-- {
		if p.conds[i].region == region {
			return p.conds[i], true
		}
	}
	return condGroup{}, false
}

func (p *Parser) popCond(region bool) (condGroup, bool) {
	for i := len(p.conds) - 1; i >= 0; i-- {
		if p.conds[i].region == region {
			g := p.conds[i]
			p.conds = append(p.conds[:i], p.conds[i+1:]...)
			return g, true
		}
	}
	return condGroup{}, false
}

// closeLost дописывает закрывающую строку группы, открытие которой
// попало в вывод, а закрытие нет.
func (p *Parser) closeLost(g condGroup) {
	line := "#endif"
	if g.region {
		line = "#endregion"
	}
	ns := g.ns
	if ns == nil {
		ns = p.global
	}
	if ns == nil {
		return
	}
	if n := len(ns.Members); n > 0 {
		ns.Members[n-1].AppendLine(line)
		return
	}
	if !strings.HasSuffix(ns.Tail, "\n") {
		ns.Tail += "\n"
	}
	ns.Tail += line
}

// endScope закрывает группы, открытые в выводе namespace ns и не
// закрытые до его конца. Их настоящие закрытия дальше будут выброшены.
func (p *Parser) endScope(ns *ast.Namespace) {
	for i := len(p.conds) - 1; i >= 0; i-- {
		if g := &p.conds[i]; g.kept && g.ns == ns {
			p.closeLost(*g)
			g.kept = false
		}
	}
}

// tailText - хвостовая trivia перед токеном idx (закрывающая '}' или EOF).
func (p *Parser) tailText(idx int) string {
	tok := p.toks[idx]
	start := leadingStart(tok)
	if cut := p.trackTrivia(idx, true); cut > start {
		start = cut
	}
	return p.text(start, tok.Span.Start)
}
