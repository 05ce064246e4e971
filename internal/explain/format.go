package explain

import (
	"strconv"
	"strings"

	"github.com/sqlc-dev/obsql/ast"
)

// FormatLiteral returns the text shown for a literal: strings are quoted,
// hex and bit values get their X'' and B'' form, others are shown as
// written.
func FormatLiteral(lit *ast.Literal) string {
	switch lit.Kind {
	case ast.LiteralString:
		return strconv.Quote(lit.Value)
	case ast.LiteralHex:
		return "X'" + lit.Value + "'"
	case ast.LiteralBit:
		return "B'" + lit.Value + "'"
	}
	return lit.Value
}

func formatLimit(l *ast.Limit) string {
	var parts []string
	if l.Offset != nil {
		parts = append(parts, "offset "+l.Offset.String())
	}
	if l.Count != nil {
		parts = append(parts, "count "+l.Count.String())
	}
	return strings.Join(parts, " ")
}

func formatLock(l *ast.LockClause) string {
	switch {
	case l.ForUpdate && l.WaitSeconds != nil:
		return "FOR UPDATE WAIT " + strconv.FormatInt(*l.WaitSeconds, 10)
	case l.ForUpdate && l.NowaitOrWait:
		return "FOR UPDATE NOWAIT"
	case l.ForUpdate:
		return "FOR UPDATE"
	case l.InShareMode:
		return "LOCK IN SHARE MODE"
	}
	return ""
}

// not prefixes op with NOT when negated is set.
func not(negated bool, op string) string {
	if negated {
		return "NOT " + op
	}
	return op
}
