package parser

import (
	"github.com/sqlc-dev/obsql/ast"
	"github.com/sqlc-dev/obsql/internal/format"
)

// Format returns canonical SQL text for a statement. Parsing the result
// with the same dialect yields an equal tree.
func Format(stmt ast.Statement) string {
	return format.Format(stmt)
}
