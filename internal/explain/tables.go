package explain

import (
	"fmt"
	"strings"

	"github.com/sqlc-dev/obsql/ast"
)

func explainTableName(sb *strings.Builder, n *ast.TableName, indent string, depth int) {
	name := n.Name
	if n.Schema != "" {
		name = n.Schema + "." + n.Name
	}
	detail := "TableName " + name
	if n.Alias != "" {
		detail += " (alias " + n.Alias + ")"
	}
	if len(n.ForceIndex) > 0 {
		detail += " FORCE INDEX (" + strings.Join(n.ForceIndex, ", ") + ")"
	}
	header(sb, indent, detail, count(len(n.Hints) > 0))
	list(sb, "Hints", n.Hints, depth+1)
}

func explainJoin(sb *strings.Builder, n *ast.Join, indent string, depth int) {
	name := "Join " + string(n.Kind)
	if n.Natural {
		name = "Join NATURAL " + string(n.Kind)
	}
	header(sb, indent, name, 2+count(n.On != nil, len(n.Using) > 0))
	Node(sb, n.Left, depth+1)
	Node(sb, n.Right, depth+1)
	wrap(sb, "On", n.On, depth+1)
	if len(n.Using) > 0 {
		fmt.Fprintf(sb, "%s Using %s\n", indent, strings.Join(n.Using, ", "))
	}
}
