package lexer

import (
	"csmerge/internal/diag"
	"csmerge/internal/source"
)

// condParser вычисляет выражение #if/#elif:
//
//	or    := and ( "||" and )*
//	and   := eq ( "&&" eq )*
//	eq    := unary ( ("==" | "!=") unary )*
//	unary := "!" unary | primary
//	primary := "true" | "false" | SYMBOL | "(" or ")"
type condParser struct {
	src     string
	pos     int
	symbols map[string]bool
	failed  bool
}

// evalCondition returns false and reports LexBadConditionExpr on malformed input.
func (lx *Lexer) evalCondition(expr string, sp source.Span) bool {
	p := condParser{src: expr, symbols: lx.pp.symbols}
	val := p.or()
	p.skipSpace()
	if p.failed || p.pos != len(p.src) || expr == "" {
		lx.errLex(diag.LexBadConditionExpr, sp, "malformed preprocessor expression "+quoteText(expr))
		return false
	}
	return val
}

func (p *condParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *condParser) eat(op string) bool {
	p.skipSpace()
	if len(p.src)-p.pos >= len(op) && p.src[p.pos:p.pos+len(op)] == op {
		p.pos += len(op)
		return true
	}
	return false
}

func (p *condParser) or() bool {
	v := p.and()
	for p.eat("||") {
		rhs := p.and()
		v = v || rhs
	}
	return v
}

func (p *condParser) and() bool {
	v := p.eq()
	for p.eat("&&") {
		rhs := p.eq()
		v = v && rhs
	}
	return v
}

func (p *condParser) eq() bool {
	v := p.unary()
	for {
		switch {
		case p.eat("=="):
			v = v == p.unary()
		case p.eat("!="):
			v = v != p.unary()
		default:
			return v
		}
	}
}

func (p *condParser) unary() bool {
	p.skipSpace()
	// "!=" здесь не может встретиться: унарный '!' идёт перед операндом
	if p.pos < len(p.src) && p.src[p.pos] == '!' {
		p.pos++
		return !p.unary()
	}
	return p.primary()
}

func (p *condParser) primary() bool {
	if p.eat("(") {
		v := p.or()
		if !p.eat(")") {
			p.failed = true
		}
		return v
	}
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isIdentContinueByte(p.src[p.pos]) {
		p.pos++
	}
	word := p.src[start:p.pos]
	switch {
	case word == "":
		p.failed = true
		return false
	case word == "true":
		return true
	case word == "false":
		return false
	default:
		return p.symbols[word]
	}
}
