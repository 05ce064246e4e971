package explain

import (
	"fmt"
	"strings"

	"github.com/sqlc-dev/obsql/ast"
)

func explainSimpleQuery(sb *strings.Builder, n *ast.SimpleQuery, indent string, depth int) {
	name := "SimpleQuery"
	var flags []string
	if n.Distinct {
		flags = append(flags, "DISTINCT")
	}
	flags = append(flags, n.Options...)
	if n.Parens {
		flags = append(flags, "parens")
	}
	if len(flags) > 0 {
		name += " " + strings.Join(flags, " ")
	}

	children := count(
		len(n.Hints) > 0,
		len(n.SelectList) > 0,
		len(n.From) > 0,
		n.Where != nil,
		len(n.GroupBy) > 0,
		n.Having != nil,
		len(n.OrderBy) > 0,
		n.Limit != nil,
		n.Lock != nil,
	)
	header(sb, indent, name, children)

	list(sb, "Hints", n.Hints, depth+1)
	list(sb, "SelectList", n.SelectList, depth+1)
	list(sb, "From", n.From, depth+1)
	wrap(sb, "Where", n.Where, depth+1)
	groupBy := "GroupBy"
	if n.WithRollup {
		groupBy += " WITH ROLLUP"
	}
	list(sb, groupBy, n.GroupBy, depth+1)
	wrap(sb, "Having", n.Having, depth+1)
	explainTail(sb, n.OrderBy, n.Limit, depth+1)
	if n.Lock != nil {
		Node(sb, n.Lock, depth+1)
	}
}

func explainUnion(sb *strings.Builder, n *ast.Union, indent string, depth int) {
	name := "Union"
	if n.All {
		name += " ALL"
	}
	if n.Parens {
		name += " parens"
	}
	header(sb, indent, name, 2+count(len(n.OrderBy) > 0, n.Limit != nil))
	Node(sb, n.Left, depth+1)
	Node(sb, n.Right, depth+1)
	explainTail(sb, n.OrderBy, n.Limit, depth+1)
}

func explainTail(sb *strings.Builder, orderBy []*ast.OrderByItem, limit *ast.Limit, depth int) {
	list(sb, "OrderBy", orderBy, depth)
	if limit != nil {
		Node(sb, limit, depth)
	}
}

func explainSelectItem(sb *strings.Builder, n *ast.SelectItem, indent string, depth int) {
	if n.Alias == "" {
		Node(sb, n.Expr, depth)
		return
	}
	fmt.Fprintf(sb, "%sAlias %s (children 1)\n", indent, n.Alias)
	Node(sb, n.Expr, depth+1)
}

func explainOrderByItem(sb *strings.Builder, n *ast.OrderByItem, indent string, depth int) {
	name := "OrderByItem"
	if n.Direction != ast.OrderDefault {
		name += " " + string(n.Direction)
	}
	header(sb, indent, name, 1)
	Node(sb, n.Expr, depth+1)
}

func explainInsert(sb *strings.Builder, n *ast.InsertStatement, indent string, depth int) {
	name := "InsertStatement"
	if n.Replace {
		name = "ReplaceStatement"
	}
	if n.Priority != "" {
		name += " " + n.Priority
	}
	if n.Ignore {
		name += " IGNORE"
	}

	children := 1 + count(
		len(n.Hints) > 0,
		len(n.Columns) > 0,
		n.Values != nil,
		n.Select != nil,
		n.SetList != nil,
		len(n.OnDuplicate) > 0,
	)
	header(sb, indent, name, children)

	list(sb, "Hints", n.Hints, depth+1)
	Node(sb, n.Table, depth+1)
	list(sb, "Columns", n.Columns, depth+1)
	if n.Values != nil {
		child := strings.Repeat(" ", depth+1)
		fmt.Fprintf(sb, "%sValues (children %d)\n", child, len(n.Values))
		for _, row := range n.Values {
			header(sb, child+" ", "Row", len(row))
			for _, v := range row {
				Node(sb, v, depth+3)
			}
		}
	}
	if n.Select != nil {
		Node(sb, n.Select, depth+1)
	}
	list(sb, "SetList", n.SetList, depth+1)
	list(sb, "OnDuplicateKeyUpdate", n.OnDuplicate, depth+1)
}

func explainUpdate(sb *strings.Builder, n *ast.UpdateStatement, indent string, depth int) {
	name := "UpdateStatement"
	if n.LowPriority {
		name += " LOW_PRIORITY"
	}
	if n.Ignore {
		name += " IGNORE"
	}

	children := count(
		len(n.Hints) > 0,
		len(n.Table) > 0,
		len(n.SetList) > 0,
		n.Where != nil,
		len(n.OrderBy) > 0,
		n.Limit != nil,
	)
	header(sb, indent, name, children)

	list(sb, "Hints", n.Hints, depth+1)
	list(sb, "Tables", n.Table, depth+1)
	list(sb, "SetList", n.SetList, depth+1)
	wrap(sb, "Where", n.Where, depth+1)
	explainTail(sb, n.OrderBy, n.Limit, depth+1)
}
