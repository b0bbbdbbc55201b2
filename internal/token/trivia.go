package token

import "csmerge/internal/source"

// Directive is a parsed preprocessor line: "#pragma warning disable CS1591"
// becomes Name "pragma", Payload "warning disable CS1591".
type Directive struct {
	Name    string
	Payload string
}

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocLine
	TriviaDocBlock
	TriviaDirective
	// TriviaDisabledText is source skipped by an inactive #if branch.
	TriviaDisabledText
)

var triviaNames = [...]string{
	TriviaSpace:        "Space",
	TriviaNewline:      "Newline",
	TriviaLineComment:  "LineComment",
	TriviaBlockComment: "BlockComment",
	TriviaDocLine:      "DocLine",
	TriviaDocBlock:     "DocBlock",
	TriviaDirective:    "Directive",
	TriviaDisabledText: "DisabledText",
}

func (k TriviaKind) String() string {
	if int(k) < len(triviaNames) {
		return triviaNames[k]
	}
	return "Trivia(?)"
}

type Trivia struct {
	Kind      TriviaKind
	Span      source.Span
	Text      string
	Directive *Directive // только если Kind == TriviaDirective
}

// IsComment reports whether the trivia is any kind of comment.
func (t Trivia) IsComment() bool {
	switch t.Kind {
	case TriviaLineComment, TriviaBlockComment, TriviaDocLine, TriviaDocBlock:
		return true
	}
	return false
}
