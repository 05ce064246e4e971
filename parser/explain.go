package parser

import (
	"github.com/sqlc-dev/obsql/ast"
	"github.com/sqlc-dev/obsql/internal/explain"
)

// Explain returns an indented tree dump of a statement, one node per line.
func Explain(stmt ast.Statement) string {
	return explain.Explain(stmt)
}
