package types

import (
	"fmt"

	"github.com/fern-lang/fern/internal/token"
)

// Error is one accumulated type-checking diagnostic (§4.5 "Errors are
// produced... and recorded in the checker; they propagate upward but do
// not halt the walk").
type Error struct {
	Message string
	Pos     token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}
