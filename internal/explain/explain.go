// Package explain renders an AST as an indented tree, one node per line.
//
// Each line is the node name, an optional detail and, for nodes with
// children, a "(children N)" suffix. Children follow one space deeper.
package explain

import (
	"fmt"
	"strings"

	"github.com/sqlc-dev/obsql/ast"
)

// Explain returns the tree for a statement.
func Explain(stmt ast.Statement) string {
	var sb strings.Builder
	Node(&sb, stmt, 0)
	return sb.String()
}

// Node writes the tree for an AST node.
func Node(sb *strings.Builder, node ast.Node, depth int) {
	indent := strings.Repeat(" ", depth)

	switch n := node.(type) {
	// Statements
	case *ast.SelectStatement:
		fmt.Fprintf(sb, "%sSelectStatement (children 1)\n", indent)
		Node(sb, n.QueryBody, depth+1)
	case *ast.InsertStatement:
		explainInsert(sb, n, indent, depth)
	case *ast.UpdateStatement:
		explainUpdate(sb, n, indent, depth)

	// Query bodies and clauses
	case *ast.SimpleQuery:
		explainSimpleQuery(sb, n, indent, depth)
	case *ast.Union:
		explainUnion(sb, n, indent, depth)
	case *ast.SelectItem:
		explainSelectItem(sb, n, indent, depth)
	case *ast.OrderByItem:
		explainOrderByItem(sb, n, indent, depth)
	case *ast.Limit:
		fmt.Fprintf(sb, "%sLimit %s\n", indent, formatLimit(n))
	case *ast.LockClause:
		fmt.Fprintf(sb, "%sLock %s\n", indent, formatLock(n))
	case *ast.Assignment:
		fmt.Fprintf(sb, "%sAssignment %s (children 1)\n", indent, strings.Join(n.Column.Parts, "."))
		Node(sb, n.Value, depth+1)
	case *ast.Hint:
		fmt.Fprintf(sb, "%sHint %q\n", indent, n.Text)

	// Tables
	case *ast.TableName:
		explainTableName(sb, n, indent, depth)
	case *ast.Join:
		explainJoin(sb, n, indent, depth)
	case *ast.DerivedTable:
		header(sb, indent, "DerivedTable "+n.Alias, 1+count(len(n.Hints) > 0))
		list(sb, "Hints", n.Hints, depth+1)
		Node(sb, n.Subquery, depth+1)

	// Expressions
	default:
		if expr, ok := node.(ast.Expression); ok {
			explainExpression(sb, expr, indent, depth)
			return
		}
		fmt.Fprintf(sb, "%s%T\n", indent, node)
	}
}

// list writes a named group node followed by its members.
func list[T ast.Node](sb *strings.Builder, name string, nodes []T, depth int) {
	if len(nodes) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s%s (children %d)\n", strings.Repeat(" ", depth), name, len(nodes))
	for _, n := range nodes {
		Node(sb, n, depth+1)
	}
}

// wrap writes a named group node holding a single child. A nil child is
// skipped.
func wrap(sb *strings.Builder, name string, node ast.Node, depth int) {
	if node == nil {
		return
	}
	fmt.Fprintf(sb, "%s%s (children 1)\n", strings.Repeat(" ", depth), name)
	Node(sb, node, depth+1)
}

// count returns the number of present children among nodes.
func count(nodes ...bool) int {
	n := 0
	for _, ok := range nodes {
		if ok {
			n++
		}
	}
	return n
}

func header(sb *strings.Builder, indent, name string, children int) {
	if children == 0 {
		fmt.Fprintf(sb, "%s%s\n", indent, name)
		return
	}
	fmt.Fprintf(sb, "%s%s (children %d)\n", indent, name, children)
}
