// Package token defines Fern's lexical tokens and source positions,
// mirroring the teacher's runtime/lexer token model (types.Token,
// types.TokenType) but with the indentation and string-interpolation
// tokens spec.md §3/§4.2 require.
package token

import "fmt"

// Kind enumerates lexical token kinds.
type Kind int

const (
	EOF Kind = iota
	ERROR

	NEWLINE
	INDENT
	DEDENT

	// Literals
	INT
	FLOAT
	STRING
	TRUE
	FALSE
	IDENT

	// String interpolation fragments
	STRING_BEGIN
	STRING_MID
	STRING_END

	// Reserved words
	LET
	FN
	RETURN
	IF
	ELSE
	MATCH
	WITH
	DO
	DEFER
	PUB
	IMPORT
	TYPE
	TRAIT
	IMPL
	AND
	OR
	NOT
	AS
	MODULE
	FOR
	WHILE
	LOOP
	BREAK
	CONTINUE
	IN
	SPAWN
	SEND
	RECEIVE
	AFTER
	DERIVE
	WHERE
	NEWTYPE

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	STARSTAR
	EQ_EQ
	NOT_EQ
	LT
	LT_EQ
	GT
	GT_EQ
	EQUALS
	BIND // <-
	PIPE // |>
	BAR  // |
	ARROW
	FAT_ARROW
	QUESTION

	// Range forms
	RANGE_EXCL // ..
	RANGE_INCL // ..=
	RANGE_FULL // ...

	// Delimiters
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	DOT
	COLON
	PERCENT_BRACE // %{  (map literal opener)

	// Comments (never produced by the lexer, which always skips comments
	// per §4.2)
	LINE_COMMENT
	BLOCK_COMMENT
)

var names = map[Kind]string{
	EOF: "EOF", ERROR: "ERROR", NEWLINE: "NEWLINE", INDENT: "INDENT", DEDENT: "DEDENT",
	INT: "INT", FLOAT: "FLOAT", STRING: "STRING", TRUE: "TRUE", FALSE: "FALSE", IDENT: "IDENT",
	STRING_BEGIN: "STRING_BEGIN", STRING_MID: "STRING_MID", STRING_END: "STRING_END",
	LET: "LET", FN: "FN", RETURN: "RETURN", IF: "IF", ELSE: "ELSE", MATCH: "MATCH",
	WITH: "WITH", DO: "DO", DEFER: "DEFER", PUB: "PUB", IMPORT: "IMPORT", TYPE: "TYPE",
	TRAIT: "TRAIT", IMPL: "IMPL", AND: "AND", OR: "OR", NOT: "NOT", AS: "AS", MODULE: "MODULE",
	FOR: "FOR", WHILE: "WHILE", LOOP: "LOOP", BREAK: "BREAK", CONTINUE: "CONTINUE", IN: "IN",
	SPAWN: "SPAWN", SEND: "SEND", RECEIVE: "RECEIVE", AFTER: "AFTER", DERIVE: "DERIVE",
	WHERE: "WHERE", NEWTYPE: "NEWTYPE",
	PLUS: "PLUS", MINUS: "MINUS", STAR: "STAR", SLASH: "SLASH", PERCENT: "PERCENT",
	STARSTAR: "STARSTAR", EQ_EQ: "EQ_EQ", NOT_EQ: "NOT_EQ", LT: "LT", LT_EQ: "LT_EQ",
	GT: "GT", GT_EQ: "GT_EQ", EQUALS: "EQUALS", BIND: "BIND", PIPE: "PIPE", BAR: "BAR",
	ARROW: "ARROW", FAT_ARROW: "FAT_ARROW", QUESTION: "QUESTION",
	RANGE_EXCL: "RANGE_EXCL", RANGE_INCL: "RANGE_INCL", RANGE_FULL: "RANGE_FULL",
	LPAREN: "LPAREN", RPAREN: "RPAREN", LBRACE: "LBRACE", RBRACE: "RBRACE",
	LBRACKET: "LBRACKET", RBRACKET: "RBRACKET", COMMA: "COMMA", DOT: "DOT", COLON: "COLON",
	PERCENT_BRACE: "PERCENT_BRACE", LINE_COMMENT: "LINE_COMMENT", BLOCK_COMMENT: "BLOCK_COMMENT",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Keywords maps reserved-word text to its Kind.
var Keywords = map[string]Kind{
	"let": LET, "fn": FN, "return": RETURN, "if": IF, "else": ELSE, "match": MATCH,
	"with": WITH, "do": DO, "defer": DEFER, "pub": PUB, "import": IMPORT, "type": TYPE,
	"trait": TRAIT, "impl": IMPL, "and": AND, "or": OR, "not": NOT, "as": AS,
	"module": MODULE, "for": FOR, "while": WHILE, "loop": LOOP, "break": BREAK,
	"continue": CONTINUE, "in": IN, "spawn": SPAWN, "send": SEND, "receive": RECEIVE,
	"after": AFTER, "derive": DERIVE, "where": WHERE, "newtype": NEWTYPE,
	"true": TRUE, "false": FALSE,
}

// Position is a 1-based line/column location within a named source file.
type Position struct {
	Filename string
	Line     uint32
	Column   uint32
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Token is a single lexical unit with its source text and location.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Text, t.Pos)
}

// IsLayout reports whether the token is a pure layout marker (NEWLINE,
// INDENT, DEDENT) that the lexer round-trip property (§8) excludes from
// "non-layout tokens".
func (t Token) IsLayout() bool {
	switch t.Kind {
	case NEWLINE, INDENT, DEDENT:
		return true
	default:
		return false
	}
}
