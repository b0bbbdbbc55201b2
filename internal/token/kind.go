package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token, including @verbatim identifiers
	// and contextual words such as record, partial, global or file.
	Ident

	// Reserved keywords.
	KwAbstract   // abstract
	KwAs         // as
	KwBase       // base
	KwBool       // bool
	KwBreak      // break
	KwByte       // byte
	KwCase       // case
	KwCatch      // catch
	KwChar       // char
	KwChecked    // checked
	KwClass      // class
	KwConst      // const
	KwContinue   // continue
	KwDecimal    // decimal
	KwDefault    // default
	KwDelegate   // delegate
	KwDo         // do
	KwDouble     // double
	KwElse       // else
	KwEnum       // enum
	KwEvent      // event
	KwExplicit   // explicit
	KwExtern     // extern
	KwFalse      // false
	KwFinally    // finally
	KwFixed      // fixed
	KwFloat      // float
	KwFor        // for
	KwForeach    // foreach
	KwGoto       // goto
	KwIf         // if
	KwImplicit   // implicit
	KwIn         // in
	KwInt        // int
	KwInterface  // interface
	KwInternal   // internal
	KwIs         // is
	KwLock       // lock
	KwLong       // long
	KwNamespace  // namespace
	KwNew        // new
	KwNull       // null
	KwObject     // object
	KwOperator   // operator
	KwOut        // out
	KwOverride   // override
	KwParams     // params
	KwPrivate    // private
	KwProtected  // protected
	KwPublic     // public
	KwReadonly   // readonly
	KwRef        // ref
	KwReturn     // return
	KwSbyte      // sbyte
	KwSealed     // sealed
	KwShort      // short
	KwSizeof     // sizeof
	KwStackalloc // stackalloc
	KwStatic     // static
	KwString     // string
	KwStruct     // struct
	KwSwitch     // switch
	KwThis       // this
	KwThrow      // throw
	KwTrue       // true
	KwTry        // try
	KwTypeof     // typeof
	KwUint       // uint
	KwUlong      // ulong
	KwUnchecked  // unchecked
	KwUnsafe     // unsafe
	KwUshort     // ushort
	KwUsing      // using
	KwVirtual    // virtual
	KwVoid       // void
	KwVolatile   // volatile
	KwWhile      // while

	// IntLit represents any numeric literal (integer or real, with suffix).
	IntLit
	// CharLit represents a character literal: 'x'.
	CharLit
	// StringLit represents a regular string literal: "...".
	StringLit
	// VerbatimStringLit represents a verbatim string literal: @"...".
	VerbatimStringLit
	// InterpolatedStringLit represents $"..." and $@"..." literals.
	InterpolatedStringLit
	// RawStringLit represents raw literals: """...""" and $"""...""".
	RawStringLit

	LBrace     // {
	RBrace     // }
	LParen     // (
	RParen     // )
	LBracket   // [
	RBracket   // ]
	Semicolon  // ;
	Comma      // ,
	Dot        // .
	ColonColon // ::
	Colon      // :
	Assign     // =
	Lt         // <
	Gt         // >
	Question   // ?
	// Operator covers every other operator (+, ==, =>, ??, ++, <<= ...).
	Operator
)

const (
	kwFirst = KwAbstract
	kwLast  = KwWhile
)

var kindNames = map[Kind]string{
	Invalid:               "Invalid",
	EOF:                   "EOF",
	Ident:                 "Ident",
	IntLit:                "IntLit",
	CharLit:               "CharLit",
	StringLit:             "StringLit",
	VerbatimStringLit:     "VerbatimStringLit",
	InterpolatedStringLit: "InterpolatedStringLit",
	RawStringLit:          "RawStringLit",
	LBrace:                "LBrace",
	RBrace:                "RBrace",
	LParen:                "LParen",
	RParen:                "RParen",
	LBracket:              "LBracket",
	RBracket:              "RBracket",
	Semicolon:             "Semicolon",
	Comma:                 "Comma",
	Dot:                   "Dot",
	ColonColon:            "ColonColon",
	Colon:                 "Colon",
	Assign:                "Assign",
	Lt:                    "Lt",
	Gt:                    "Gt",
	Question:              "Question",
	Operator:              "Operator",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	if k.IsKeyword() {
		return "Kw(" + keywordText[k] + ")"
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is a reserved keyword.
func (k Kind) IsKeyword() bool {
	return k >= kwFirst && k <= kwLast
}
