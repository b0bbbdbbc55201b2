package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexUnterminatedChar         Code = 1004
	LexBadDirective             Code = 1005
	LexUnterminatedConditional  Code = 1006
	LexUnexpectedDirective      Code = 1007
	LexBadConditionExpr         Code = 1008

	// Синтаксические
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedBrace      Code = 2002
	SynUnclosedParen      Code = 2003
	SynUnclosedBracket    Code = 2004
	SynExpectSemicolon    Code = 2005
	SynExpectIdentifier   Code = 2006
	SynUnexpectedTopLevel Code = 2007
	SynTopLevelStatement  Code = 2008
	SynMisplacedUsing     Code = 2009
	SynFileScopedMixed    Code = 2010
	SynUnexpectedCloser   Code = 2011

	// Ошибки I/O
	IOLoadFileError Code = 4001
	IOEncodingError Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexUnterminatedChar:         "Unterminated character literal",
	LexBadDirective:             "Malformed preprocessor directive",
	LexUnterminatedConditional:  "Unterminated #if",
	LexUnexpectedDirective:      "Unexpected conditional directive",
	LexBadConditionExpr:         "Malformed conditional expression",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBracket:          "Unclosed bracket",
	SynExpectSemicolon:          "Expect semicolon",
	SynExpectIdentifier:         "Expect identifier",
	SynUnexpectedTopLevel:       "Unexpected top level",
	SynTopLevelStatement:        "Top-level statements are not supported",
	SynMisplacedUsing:           "Using directive after declarations",
	SynFileScopedMixed:          "File-scoped namespace mixed with other declarations",
	SynUnexpectedCloser:         "Unexpected closing delimiter",
	IOLoadFileError:             "Failed to load file",
	IOEncodingError:             "Failed to decode file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
