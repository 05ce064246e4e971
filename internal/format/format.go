// Package format regenerates SQL text from the AST.
//
// The output is canonical rather than a copy of the input: keywords are
// upper-cased, whitespace is normalized and names are backquoted only when
// they need it. Parsing the output yields an equal tree.
package format

import (
	"strings"
	"unicode"

	"github.com/sqlc-dev/obsql/ast"
	"github.com/sqlc-dev/obsql/token"
)

// Format returns the SQL text of a statement.
func Format(stmt ast.Statement) string {
	var sb strings.Builder
	Statement(&sb, stmt)
	return sb.String()
}

// Statement formats a single statement.
func Statement(sb *strings.Builder, stmt ast.Statement) {
	if stmt == nil {
		return
	}

	switch s := stmt.(type) {
	case *ast.SelectStatement:
		QueryBody(sb, s.QueryBody)
	case *ast.InsertStatement:
		formatInsert(sb, s)
	case *ast.UpdateStatement:
		formatUpdate(sb, s)
	}
}

// formatHints writes hint comments followed by a space.
func formatHints(sb *strings.Builder, hints []*ast.Hint) {
	for _, h := range hints {
		sb.WriteString("/*+ ")
		sb.WriteString(h.Text)
		sb.WriteString(" */ ")
	}
}

// Name writes an identifier, backquoting it when it is a keyword in any
// dialect or would not scan as a single identifier.
func Name(sb *strings.Builder, name string) {
	if !needsQuote(name) {
		sb.WriteString(name)
		return
	}
	sb.WriteByte('`')
	sb.WriteString(strings.ReplaceAll(name, "`", "``"))
	sb.WriteByte('`')
}

func needsQuote(name string) bool {
	if name == "" {
		return true
	}
	if _, ok := token.Keyword(strings.ToUpper(name)); ok {
		return true
	}
	for i, r := range name {
		if i == 0 && unicode.IsDigit(r) {
			return true
		}
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$') {
			return true
		}
	}
	return false
}

func formatNames(sb *strings.Builder, names []string, sep string) {
	for i, n := range names {
		if i > 0 {
			sb.WriteString(sep)
		}
		Name(sb, n)
	}
}
