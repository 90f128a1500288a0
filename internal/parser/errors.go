package parser

import (
	"fmt"

	"github.com/fern-lang/fern/internal/token"
)

// Error is a parse-time diagnostic (spec.md §7 "Parse error"). The parser
// is expected to emit multiple per run, following the teacher's
// runtime/parser/errors.go ParseError shape but trimmed to what this
// front-end's panic-mode recovery actually needs.
type Error struct {
	Message string
	Token   token.Token
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (near %q)", e.Token.Pos, e.Message, e.Token.Text)
}
