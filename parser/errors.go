package parser

import (
	"fmt"
	"strings"

	"github.com/sqlc-dev/obsql/lexer"
	"github.com/sqlc-dev/obsql/token"
)

// SyntaxError reports the first token the grammar could not continue with.
type SyntaxError struct {
	Pos      token.Position
	Expected []string
	Found    string
}

func (e *SyntaxError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("line %d, column %d: syntax error: unexpected %s", e.Pos.Line, e.Pos.Column, e.Found)
	}
	return fmt.Sprintf("line %d, column %d: syntax error: expected %s, found %s",
		e.Pos.Line, e.Pos.Column, strings.Join(e.Expected, " or "), e.Found)
}

func describe(it lexer.Item) string {
	switch {
	case it.Token == token.EOF:
		return "end of input"
	case it.Token == token.HINT:
		return "hint comment"
	case it.Token == token.IDENT, it.Token == token.QUOTED_IDENT:
		return fmt.Sprintf("identifier %s", it.Raw)
	case it.Token.IsKeyword():
		return strings.ToUpper(it.Value)
	}
	return fmt.Sprintf("%q", it.Raw)
}
