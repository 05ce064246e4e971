package lexer

import (
	"fmt"

	"github.com/sqlc-dev/obsql/token"
)

// Error is returned when no token rule matches the input.
type Error struct {
	Pos  token.Position
	Char rune
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
	}
	return fmt.Sprintf("line %d, column %d: unexpected character %q", e.Pos.Line, e.Pos.Column, e.Char)
}
